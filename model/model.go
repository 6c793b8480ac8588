package model

import (
	"tutortui/api"
	"tutortui/config"
	"tutortui/mcp"
	"tutortui/storage"
)

// Model is the session and conversation controller. It owns the
// authentication state, the active conversation log, the local history
// of saved chats and drawings, and the transient panel flags. All
// mutation happens through its methods; the ui package only renders.
type Model struct {
	// Core dependencies
	Config  *config.Config
	API     *api.Client
	Tools   *mcp.Client
	Tokens  *config.TokenStore
	History *storage.HistoryStore

	// Session state
	User *api.User

	// Conversation state
	Messages              []Message
	Conversations         []api.ConversationSummary
	CurrentConversationID string

	// Local history
	Drawings   []storage.Drawing
	SavedChats []storage.SavedChat

	// Runtime state
	Thinking     bool // at most one exchange in flight
	WelcomeShown bool
	Epoch        int // bumped on login, logout and conversation switch

	// Panel flags
	SidebarOpen    bool
	ShowWhiteboard bool
	ShowHistory    bool

	// Transient status line
	Notice string

	Quitting bool
	Version  string
}

// NewModel creates the controller. history may be nil (no local
// persistence, e.g. in tests); persisted records are loaded when
// present.
func NewModel(cfg *config.Config, apiClient *api.Client, tools *mcp.Client, tokens *config.TokenStore, history *storage.HistoryStore, version string) *Model {
	m := &Model{
		Config:  cfg,
		API:     apiClient,
		Tools:   tools,
		Tokens:  tokens,
		History: history,
		Version: version,
	}

	m.reloadHistory()

	return m
}

// reloadHistory pulls persisted records back into memory. Called at
// construction and on re-authentication, since logout clears the
// in-memory lists but not the database.
func (m *Model) reloadHistory() {
	if m.History == nil {
		return
	}
	if chats, err := m.History.ListChats(); err == nil {
		m.SavedChats = chats
	} else if config.DebugLog != nil {
		config.DebugLog.Printf("[Model] failed to load saved chats: %v", err)
	}
	if drawings, err := m.History.ListDrawings(); err == nil {
		m.Drawings = drawings
	} else if config.DebugLog != nil {
		config.DebugLog.Printf("[Model] failed to load drawings: %v", err)
	}
}

// Authenticated reports whether a resolved user identity is held.
func (m *Model) Authenticated() bool {
	return m.User != nil
}

// LegacyMode reports whether chat goes through the local classifier and
// the JSON-RPC math tools instead of the authenticated backend.
func (m *Model) LegacyMode() bool {
	return m.Config != nil && m.Config.LegacyMCP
}

// RemoveMessage deletes a message from the visible log by id.
func (m *Model) RemoveMessage(id string) {
	for i, msg := range m.Messages {
		if msg.ID == id {
			m.Messages = append(m.Messages[:i], m.Messages[i+1:]...)
			return
		}
	}
}

// LastAssistantText returns the text of the most recent non-transient
// assistant message, or "".
func (m *Model) LastAssistantText() string {
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].Sender == SenderAssistant && !m.Messages[i].Transient {
			return m.Messages[i].Text
		}
	}
	return ""
}
