package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tutortui/api"
	"tutortui/config"
)

const requestTimeout = 120 * time.Second

// ResolveIdentity exchanges the held credential for a user identity.
// Dispatched at startup when a persisted token exists, and after login.
func (m *Model) ResolveIdentity() tea.Cmd {
	if !m.API.HasToken() {
		return nil
	}
	apiClient := m.API
	epoch := m.Epoch
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := apiClient.Me(ctx)
		return IdentityResolvedMsg{User: user, Err: err, Epoch: epoch}
	}
}

// ApplyIdentity finishes the Authenticating transition. On failure the
// credential is discarded and the session stays unauthenticated. On
// success the welcome message is seeded once and the conversation list
// is requested.
func (m *Model) ApplyIdentity(msg IdentityResolvedMsg) tea.Cmd {
	if msg.Epoch != m.Epoch {
		return nil
	}

	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] identity resolution failed: %v", msg.Err)
		}
		m.discardCredential()
		m.User = nil
		m.Notice = "Your session could not be restored. Please sign in."
		return nil
	}

	m.User = msg.User
	m.seedWelcome()
	m.reloadHistory()
	return m.FetchConversations()
}

// seedWelcome appends the personalized greeting exactly once per
// session. Guarded by an explicit flag, not by log length, so
// re-renders never re-trigger it.
func (m *Model) seedWelcome() {
	if m.WelcomeShown || m.User == nil {
		return
	}
	m.WelcomeShown = true
	greeting := fmt.Sprintf("Hello %s! I'm your math tutor. Ask me anything, or open the whiteboard to draw an expression.", m.User.Name)
	m.Messages = append(m.Messages, NewMessage(SenderAssistant, greeting))
}

// Logout tears the session down unconditionally and synchronously: no
// network call is involved, and it always succeeds.
func (m *Model) Logout() {
	m.Epoch++
	m.discardCredential()
	m.User = nil
	m.Messages = nil
	m.Drawings = nil
	m.Conversations = nil
	m.SavedChats = nil
	m.CurrentConversationID = ""
	m.Thinking = false
	m.WelcomeShown = false
	m.SidebarOpen = false
	m.ShowWhiteboard = false
	m.ShowHistory = false
	m.Notice = ""
}

// forceLogout is the SessionInvalid path: the backend rejected the
// credential mid-session.
func (m *Model) forceLogout() {
	m.Logout()
	m.Notice = "Your session expired. Please sign in again."
}

func (m *Model) discardCredential() {
	m.API.ClearToken()
	if m.Tokens != nil {
		if err := m.Tokens.Clear(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[Model] failed to clear token: %v", err)
		}
	}
}

// LoginCmd exchanges credentials for a token.
func (m *Model) LoginCmd(username, password string) tea.Cmd {
	apiClient := m.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		token, err := apiClient.Login(ctx, username, password)
		return LoginResultMsg{Token: token, Err: err}
	}
}

// ApplyLogin stores the fresh credential and starts identity
// resolution. Login failures leave state untouched; the form shows the
// error.
func (m *Model) ApplyLogin(msg LoginResultMsg) tea.Cmd {
	if msg.Err != nil {
		return nil
	}

	m.Epoch++
	m.API.SetToken(msg.Token)
	if m.Tokens != nil {
		if err := m.Tokens.Save(msg.Token); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[Model] failed to persist token: %v", err)
		}
	}
	return m.ResolveIdentity()
}

// RegisterCmd creates an account.
func (m *Model) RegisterCmd(name, email, password string) tea.Cmd {
	apiClient := m.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := apiClient.Register(ctx, name, email, password)
		return RegisterResultMsg{Err: err}
	}
}

// userFacingError turns a failure into the string shown inside a
// synthesized assistant message.
func userFacingError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "I couldn't reach the tutor service. Please try again."
}

// sessionRejected reports whether the failure means the credential is
// no longer valid.
func sessionRejected(err error) bool {
	var apiErr *api.Error
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}
