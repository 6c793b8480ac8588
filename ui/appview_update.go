package ui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"tutortui/config"
)

const noticeTTL = 4 * time.Second

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Spinner animates while an exchange is in flight
	if a.dataModel.Thinking {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		return a.handleKey(msg, cmds)

	case identityResolvedMsg:
		cmd = a.dataModel.ApplyIdentity(msg)
		a.updateViewportContent(true)
		return a, tea.Batch(append(cmds, cmd, a.renderNewestMarkdown(), a.noticeTimer())...)

	case loginResultMsg:
		if msg.Err != nil {
			a.login.fail(msg.Err)
			return a, tea.Batch(cmds...)
		}
		a.login = newLoginForm()
		cmd = a.dataModel.ApplyLogin(msg)
		return a, tea.Batch(append(cmds, cmd)...)

	case registerResultMsg:
		a.login.finishRegister(msg.Err)
		return a, tea.Batch(cmds...)

	case conversationsListMsg:
		a.dataModel.ApplyConversationsList(msg)
		if a.sidebarCursor >= len(a.dataModel.Conversations) {
			a.sidebarCursor = 0
		}
		return a, tea.Batch(append(cmds, a.noticeTimer())...)

	case conversationCreatedMsg:
		cmd = a.dataModel.ApplyConversationCreated(msg)
		return a, tea.Batch(append(cmds, cmd, a.noticeTimer())...)

	case chatReplyMsg:
		cmd = a.dataModel.ApplyChatReply(msg)
		a.updateViewportContent(true)
		return a, tea.Batch(append(cmds, cmd, a.renderNewestMarkdown(), a.noticeTimer())...)

	case legacyReplyMsg:
		a.dataModel.ApplyLegacyReply(msg)
		a.updateViewportContent(true)
		return a, tea.Batch(append(cmds, a.renderNewestMarkdown(), a.noticeTimer())...)

	case analysisResultMsg:
		cmd = a.dataModel.ApplyAnalysisResult(msg)
		a.updateViewportContent(true)
		return a, tea.Batch(append(cmds, cmd, a.renderNewestMarkdown(), a.noticeTimer())...)

	case historySavedMsg:
		if msg.Err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[UI] history persistence failed: %v", msg.Err)
		}
		return a, tea.Batch(cmds...)

	case markdownRenderedMsg:
		for i := range a.dataModel.Messages {
			if a.dataModel.Messages[i].ID == msg.MessageID {
				a.dataModel.Messages[i].Rendered = msg.Rendered
				break
			}
		}
		a.updateViewportContent(false)
		return a, tea.Batch(cmds...)

	case noticeExpiredMsg:
		if msg.Notice == a.dataModel.Notice {
			a.dataModel.Notice = ""
		}
		return a, tea.Batch(cmds...)
	}

	// Forward everything else to the focused input
	if a.showLogin() {
		cmd = a.login.update(msg)
		return a, tea.Batch(append(cmds, cmd)...)
	}
	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		a.dataModel.Quitting = true
		return a, tea.Quit
	}

	if a.showLogin() {
		cmd = a.handleLoginKey(msg)
		return a, tea.Batch(append(cmds, cmd)...)
	}

	if a.dataModel.ShowHistory {
		a.handleHistoryKey(msg)
		return a, tea.Batch(cmds...)
	}

	if a.dataModel.SidebarOpen {
		cmd = a.handleSidebarKey(msg)
		a.updateViewportContent(true)
		return a, tea.Batch(append(cmds, cmd)...)
	}

	switch msg.String() {
	case "ctrl+n":
		cmd = a.dataModel.StartNewConversation()
		a.whiteboardStatus = ""
		a.resize()
		return a, tea.Batch(append(cmds, cmd, a.noticeTimer())...)

	case "ctrl+b":
		a.dataModel.SidebarOpen = true
		a.sidebarCursor = 0
		a.textarea.Blur()
		a.resize()
		return a, tea.Batch(cmds...)

	case "ctrl+w":
		a.dataModel.ShowWhiteboard = !a.dataModel.ShowWhiteboard
		if a.dataModel.ShowWhiteboard {
			a.textarea.Blur()
			a.whiteboardInput.Focus()
		} else {
			a.whiteboardInput.Blur()
			a.textarea.Focus()
		}
		a.resize()
		return a, tea.Batch(cmds...)

	case "ctrl+e":
		a.dataModel.ShowHistory = true
		return a, tea.Batch(cmds...)

	case "ctrl+l":
		a.dataModel.Logout()
		a.login = newLoginForm()
		a.textarea.Reset()
		a.resize()
		return a, tea.Batch(cmds...)

	case "ctrl+y":
		if text := a.dataModel.LastAssistantText(); text != "" {
			_ = clipboard.WriteAll(text)
		}
		return a, tea.Batch(cmds...)

	case "enter":
		wasThinking := a.dataModel.Thinking
		if a.dataModel.ShowWhiteboard && a.whiteboardInput.Focused() {
			cmd = a.submitWhiteboard()
			a.updateViewportContent(true)
			return a, tea.Batch(append(cmds, cmd, a.spinnerStart(wasThinking), a.noticeTimer())...)
		}
		text := a.textarea.Value()
		logLen := len(a.dataModel.Messages)
		cmd = a.dataModel.SendMessage(text)
		// Keep the draft when the send was dropped (guard, no credential)
		if cmd != nil || len(a.dataModel.Messages) > logLen || strings.TrimSpace(text) == "" {
			a.textarea.Reset()
		}
		a.updateViewportContent(true)
		return a, tea.Batch(append(cmds, cmd, a.spinnerStart(wasThinking), a.noticeTimer())...)

	case "ctrl+j":
		a.textarea.InsertString("\n")
		return a, tea.Batch(cmds...)

	case "tab":
		if a.dataModel.ShowWhiteboard {
			if a.whiteboardInput.Focused() {
				a.whiteboardInput.Blur()
				a.textarea.Focus()
			} else {
				a.textarea.Blur()
				a.whiteboardInput.Focus()
			}
			return a, tea.Batch(cmds...)
		}

	case "?":
		if a.textarea.Value() == "" && !a.whiteboardInput.Focused() {
			a.showHelp = !a.showHelp
			return a, tea.Batch(cmds...)
		}
	}

	if a.dataModel.ShowWhiteboard && a.whiteboardInput.Focused() {
		a.whiteboardInput, cmd = a.whiteboardInput.Update(msg)
		return a, tea.Batch(append(cmds, cmd)...)
	}

	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

func (a *AppView) handleLoginKey(msg tea.KeyMsg) tea.Cmd {
	action, cmd := a.login.handleKey(msg)
	switch action {
	case loginSubmit:
		return a.dataModel.LoginCmd(a.login.username(), a.login.password())
	case registerSubmit:
		return a.dataModel.RegisterCmd(a.login.name(), a.login.email(), a.login.password())
	}
	return cmd
}

// spinnerStart kicks the spinner's tick loop when an exchange just
// went in flight. wasThinking keeps a second chain from starting while
// one is already running.
func (a AppView) spinnerStart(wasThinking bool) tea.Cmd {
	if wasThinking || !a.dataModel.Thinking {
		return nil
	}
	return a.loadingSpinner.Tick
}

// noticeTimer schedules the status notice to fade. The timer carries
// the notice it was armed for, so an old timer cannot wipe a newer one.
func (a AppView) noticeTimer() tea.Cmd {
	notice := a.dataModel.Notice
	if notice == "" {
		return nil
	}
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{Notice: notice}
	})
}
