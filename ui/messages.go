package ui

import (
	"tutortui/model"
)

// Message type alias so rendering code reads naturally
type Message = model.Message

// Controller message aliases - defined in the model package
type identityResolvedMsg = model.IdentityResolvedMsg
type conversationsListMsg = model.ConversationsListMsg
type conversationCreatedMsg = model.ConversationCreatedMsg
type chatReplyMsg = model.ChatReplyMsg
type legacyReplyMsg = model.LegacyReplyMsg
type analysisResultMsg = model.AnalysisResultMsg
type loginResultMsg = model.LoginResultMsg
type registerResultMsg = model.RegisterResultMsg
type historySavedMsg = model.HistorySavedMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
type noticeExpiredMsg = model.NoticeExpiredMsg
