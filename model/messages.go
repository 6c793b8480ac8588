package model

import "tutortui/api"

// Async results carry the session epoch captured at dispatch time.
// Apply methods discard messages whose epoch no longer matches, so a
// reply that lands after a logout or conversation switch never acts on
// the wrong state.

type IdentityResolvedMsg struct {
	User  *api.User
	Err   error
	Epoch int
}

type ConversationsListMsg struct {
	Conversations []api.ConversationSummary
	Err           error
	Epoch         int
}

type ConversationCreatedMsg struct {
	ID    string
	Err   error
	Epoch int
}

type ChatReplyMsg struct {
	Reply          string
	ConversationID string
	Err            error
	Epoch          int
}

type LegacyReplyMsg struct {
	Reply string
	Err   error
	Epoch int
}

type AnalysisResultMsg struct {
	Results       []api.ExprResult
	PlaceholderID string
	Err           error
	Epoch         int
}

type LoginResultMsg struct {
	Token string
	Err   error
}

type RegisterResultMsg struct {
	Err error
}

type HistorySavedMsg struct {
	Err error
}

type MarkdownRenderedMsg struct {
	MessageID string
	Rendered  string
}

// NoticeExpiredMsg fades the status notice it was armed for. A notice
// set after the timer started is left alone.
type NoticeExpiredMsg struct {
	Notice string
}
