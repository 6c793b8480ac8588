package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tutortui/api"
	"tutortui/config"
	appmodel "tutortui/model"
)

func newTestView() AppView {
	cfg := &config.Config{BackendURL: "http://127.0.0.1:1"}
	m := appmodel.NewModel(cfg, api.NewClient(cfg.BackendURL), nil, nil, nil, "test")
	m.API.SetToken("tok")
	m.User = &api.User{ID: "u1", Name: "Ada"}
	m.WelcomeShown = true

	a := NewAppView(m)
	a.ready = true
	a.width = 80
	a.height = 24
	return a
}

func pressEnter(a AppView) (AppView, tea.Cmd) {
	updated, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(AppView), cmd
}

// containsSpinnerTick walks a command tree looking for the spinner's
// tick message. Leaf commands are executed, so keep them cheap.
func containsSpinnerTick(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case spinner.TickMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if containsSpinnerTick(c) {
				return true
			}
		}
	}
	return false
}

func TestEnterStartsSpinnerTickLoop(t *testing.T) {
	a := newTestView()
	a.textarea.SetValue("what is 2+2?")

	updated, cmd := pressEnter(a)
	if !updated.dataModel.Thinking {
		t.Fatal("expected exchange in flight")
	}
	if !containsSpinnerTick(cmd) {
		t.Error("expected the spinner tick loop to start with the exchange")
	}
	if updated.textarea.Value() != "" {
		t.Error("expected textarea cleared after dispatch")
	}

	// A second enter while the exchange is in flight must not start
	// another tick chain.
	updated.textarea.SetValue("another question")
	_, cmd = pressEnter(updated)
	if containsSpinnerTick(cmd) {
		t.Error("a running spinner must not be restarted")
	}
}

func TestEnterKeepsDraftWhileThinking(t *testing.T) {
	a := newTestView()
	a.dataModel.Thinking = true
	a.textarea.SetValue("draft in progress")

	updated, _ := pressEnter(a)
	if got := updated.textarea.Value(); got != "draft in progress" {
		t.Errorf("draft = %q, want it preserved while an exchange is in flight", got)
	}
}

func TestStaleNoticeTimerIgnored(t *testing.T) {
	a := newTestView()
	a.dataModel.Notice = "fresh warning"

	updated, _ := a.Update(noticeExpiredMsg{Notice: "older notice"})
	view := updated.(AppView)
	if view.dataModel.Notice != "fresh warning" {
		t.Errorf("Notice = %q, an old timer must not clear a newer notice", view.dataModel.Notice)
	}

	updated, _ = view.Update(noticeExpiredMsg{Notice: "fresh warning"})
	view = updated.(AppView)
	if view.dataModel.Notice != "" {
		t.Errorf("Notice = %q, want cleared by its own timer", view.dataModel.Notice)
	}
}
