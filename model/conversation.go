package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tutortui/config"
	"tutortui/storage"
)

const newChatGreeting = "New chat started. What would you like to work on?"

// FetchConversations requests the saved conversation list. Idempotent;
// a failure keeps whatever list was shown before.
func (m *Model) FetchConversations() tea.Cmd {
	if !m.API.HasToken() {
		return nil
	}
	apiClient := m.API
	epoch := m.Epoch
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		list, err := apiClient.Conversations(ctx)
		return ConversationsListMsg{Conversations: list, Err: err, Epoch: epoch}
	}
}

// ApplyConversationsList replaces the list on success. Failure is
// non-fatal: the previous list is retained and a warning surfaces.
func (m *Model) ApplyConversationsList(msg ConversationsListMsg) {
	if msg.Epoch != m.Epoch {
		return
	}
	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] conversation list refresh failed: %v", msg.Err)
		}
		m.Notice = "Couldn't refresh your conversations."
		return
	}
	m.Conversations = msg.Conversations
}

// StartNewConversation archives the current log, resets it to a single
// greeting and asks the backend for a fresh thread id. Requires a
// credential; without one nothing is mutated. In legacy mode the reset
// is purely local and the archive is the only record of the old chat.
func (m *Model) StartNewConversation() tea.Cmd {
	if m.LegacyMode() {
		// No backend threads in legacy mode; the archive is the only record.
		archiveCmd := m.archiveCurrentLog()
		m.Epoch++
		m.Messages = []Message{NewMessage(SenderAssistant, newChatGreeting)}
		m.ShowWhiteboard = false
		return archiveCmd
	}

	if !m.Authenticated() {
		m.Notice = "Sign in to start a new chat."
		return nil
	}

	archiveCmd := m.archiveCurrentLog()

	m.Epoch++
	m.Messages = []Message{NewMessage(SenderAssistant, newChatGreeting)}
	m.CurrentConversationID = ""
	m.ShowWhiteboard = false

	apiClient := m.API
	epoch := m.Epoch
	createCmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		id, err := apiClient.NewConversation(ctx)
		return ConversationCreatedMsg{ID: id, Err: err, Epoch: epoch}
	}

	return tea.Batch(archiveCmd, createCmd)
}

// archiveCurrentLog snapshots a non-empty log as an immutable saved
// chat. The snapshot is a deep copy so later appends to the live log
// cannot leak into it.
func (m *Model) archiveCurrentLog() tea.Cmd {
	if len(m.Messages) == 0 {
		return nil
	}

	snapshot := make([]storage.ArchivedMessage, 0, len(m.Messages))
	for _, msg := range m.Messages {
		if msg.Transient {
			continue
		}
		snapshot = append(snapshot, storage.ArchivedMessage{
			Sender:    msg.Sender,
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
		})
	}
	if len(snapshot) == 0 {
		return nil
	}

	chat := storage.SavedChat{Messages: snapshot}
	m.SavedChats = append([]storage.SavedChat{chat}, m.SavedChats...)

	if m.History == nil {
		return nil
	}
	history := m.History
	return func() tea.Msg {
		err := history.SaveChat(&chat)
		return HistorySavedMsg{Err: err}
	}
}

// ApplyConversationCreated adopts the backend-assigned thread id when
// none is active and refreshes the list.
func (m *Model) ApplyConversationCreated(msg ConversationCreatedMsg) tea.Cmd {
	if msg.Epoch != m.Epoch {
		return nil
	}
	if msg.Err != nil {
		if sessionRejected(msg.Err) {
			m.forceLogout()
			return nil
		}
		m.Notice = userFacingError(msg.Err)
		return nil
	}
	if m.CurrentConversationID == "" {
		m.CurrentConversationID = msg.ID
	}
	return m.FetchConversations()
}

// SelectConversation switches the active thread. The visible log is
// fully replaced; message retrieval belongs to the backend and arrives
// as a fresh ordered sequence.
func (m *Model) SelectConversation(id string) {
	if !m.Authenticated() {
		m.Notice = "Sign in to open a conversation."
		return
	}

	m.Epoch++
	m.Thinking = false
	m.CurrentConversationID = id
	m.Messages = []Message{NewTransient("Loading conversation…")}
}

// ClearHistory wipes the visible log and the drawing list and closes
// the history overlay. Archived snapshots are not touched.
func (m *Model) ClearHistory() {
	m.Messages = nil
	m.Drawings = nil
	m.ShowHistory = false
}
