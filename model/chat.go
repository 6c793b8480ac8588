package model

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tutortui/api"
	"tutortui/mcp"
)

const unrecognizedReply = "I can help you solve operations and equations. Send me a math expression, like 2+2 or 2x+1=5."

// SendMessage runs one chat exchange. Blank input and overlapping
// sends are silently dropped; a missing credential surfaces a notice
// without touching the log. The user message is appended optimistically
// before the request goes out.
func (m *Model) SendMessage(text string) tea.Cmd {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || m.Thinking {
		return nil
	}

	if m.LegacyMode() {
		return m.sendLegacy(trimmed)
	}

	if !m.Authenticated() {
		m.Notice = "Sign in to chat with the tutor."
		return nil
	}

	// History is the log as it stood before this message, sender and
	// text only, placeholders stripped.
	history := m.outgoingHistory()

	m.Messages = append(m.Messages, NewMessage(SenderUser, trimmed))
	m.Thinking = true

	apiClient := m.API
	epoch := m.Epoch
	conversationID := m.CurrentConversationID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := apiClient.Chat(ctx, trimmed, history, conversationID)
		if err != nil {
			return ChatReplyMsg{Err: err, Epoch: epoch}
		}
		return ChatReplyMsg{Reply: resp.Response, ConversationID: resp.ConversationID, Epoch: epoch}
	}
}

func (m *Model) outgoingHistory() []api.ChatTurn {
	history := make([]api.ChatTurn, 0, len(m.Messages))
	for _, msg := range m.Messages {
		if msg.Transient {
			continue
		}
		history = append(history, api.ChatTurn{Sender: msg.Sender, Text: msg.Text})
	}
	return history
}

// ApplyChatReply appends the tutor's answer, or a synthesized assistant
// message carrying the failure detail. The in-flight guard clears in
// every outcome.
func (m *Model) ApplyChatReply(msg ChatReplyMsg) tea.Cmd {
	if msg.Epoch != m.Epoch {
		return nil
	}
	m.Thinking = false

	if msg.Err != nil {
		if sessionRejected(msg.Err) {
			m.forceLogout()
			return nil
		}
		m.Messages = append(m.Messages, NewMessage(SenderAssistant, userFacingError(msg.Err)))
		m.Notice = "Message failed to send."
		return nil
	}

	m.Messages = append(m.Messages, NewMessage(SenderAssistant, msg.Reply))

	// First message of a fresh thread: adopt the assigned id
	if msg.ConversationID != "" && m.CurrentConversationID == "" {
		m.CurrentConversationID = msg.ConversationID
		return m.FetchConversations()
	}
	return nil
}

// sendLegacy classifies the text locally and dispatches a JSON-RPC
// tool call. Unrecognized input degrades to a canned assistant reply
// without a network round trip.
func (m *Model) sendLegacy(text string) tea.Cmd {
	m.Messages = append(m.Messages, NewMessage(SenderUser, text))

	cls := mcp.Classify(text)
	if cls.Kind == mcp.KindUnrecognized {
		m.Messages = append(m.Messages, NewMessage(SenderAssistant, unrecognizedReply))
		return nil
	}

	m.Thinking = true

	tools := m.Tools
	epoch := m.Epoch
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		reply, err := tools.CallTool(ctx, cls.Tool, cls.Arguments)
		return LegacyReplyMsg{Reply: reply, Err: err, Epoch: epoch}
	}
}

// ApplyLegacyReply appends the tool result, or the JSON-RPC error
// message when the tool rejected the call.
func (m *Model) ApplyLegacyReply(msg LegacyReplyMsg) {
	if msg.Epoch != m.Epoch {
		return
	}
	m.Thinking = false

	if msg.Err != nil {
		var toolErr *mcp.ToolError
		if errors.As(msg.Err, &toolErr) {
			m.Messages = append(m.Messages, NewMessage(SenderAssistant, toolErr.Message))
			return
		}
		m.Messages = append(m.Messages, NewMessage(SenderAssistant, "I couldn't reach the math tools server."))
		m.Notice = "Message failed to send."
		return
	}

	m.Messages = append(m.Messages, NewMessage(SenderAssistant, msg.Reply))
}
