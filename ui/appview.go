package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmodel "tutortui/model"
)

const (
	sidebarWidth = 28
	chromeHeight = 6 // title, separator, textarea, status bar
)

type AppView struct {
	// Reference to the controller
	dataModel *appmodel.Model

	// UI components
	viewport       viewport.Model
	textarea       textarea.Model
	loadingSpinner spinner.Model

	// Window state
	width  int
	height int
	ready  bool

	// Login / registration form (shown while unauthenticated)
	login loginForm

	// Sidebar state
	sidebarCursor    int
	sidebarFiltering bool
	sidebarFilter    textinput.Model

	// Whiteboard panel state
	whiteboardInput  textinput.Model
	whiteboardStatus string

	showHelp bool
}

func NewAppView(dataModel *appmodel.Model) AppView {
	ta := textarea.New()
	ta.Placeholder = "Ask the tutor…"
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	filter := textinput.New()
	filter.Placeholder = "Filter conversations"

	wb := textinput.New()
	wb.Placeholder = "Path to drawing image (png/jpeg)"

	return AppView{
		dataModel:       dataModel,
		textarea:        ta,
		loadingSpinner:  sp,
		sidebarFilter:   filter,
		whiteboardInput: wb,
		login:           newLoginForm(),
	}
}

func (a AppView) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}

	// A persisted credential starts the Authenticating transition
	if cmd := a.dataModel.ResolveIdentity(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// showLogin reports whether the login form owns the screen.
func (a AppView) showLogin() bool {
	return !a.dataModel.Authenticated() && !a.dataModel.LegacyMode()
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading…"
	}
	if a.dataModel.Quitting {
		return ""
	}

	if a.showLogin() {
		return a.login.view(a.width, a.height, a.dataModel.Notice)
	}

	if a.dataModel.ShowHistory {
		return a.historyView()
	}

	var b strings.Builder
	b.WriteString(a.titleBar())
	b.WriteString("\n")
	b.WriteString(BorderStyle.Render(strings.Repeat("─", a.width)))
	b.WriteString("\n")

	main := a.viewport.View()
	if a.dataModel.ShowWhiteboard {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, a.whiteboardView())
	}
	if a.dataModel.SidebarOpen {
		main = lipgloss.JoinHorizontal(lipgloss.Top, a.sidebarView(), main)
	}
	b.WriteString(main)
	b.WriteString("\n")
	b.WriteString(a.textarea.View())
	b.WriteString("\n")
	b.WriteString(a.statusBar())

	return b.String()
}

func (a AppView) titleBar() string {
	title := TitleStyle.Render("TutorTUI " + a.dataModel.Version)

	var right string
	switch {
	case a.dataModel.LegacyMode():
		right = DimStyle.Render("legacy math tools")
	case a.dataModel.User != nil:
		right = DimStyle.Render(a.dataModel.User.Name + " <" + a.dataModel.User.Email + ">")
	}

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

func (a AppView) statusBar() string {
	if a.dataModel.Notice != "" {
		return NoticeStyle.Render(a.dataModel.Notice)
	}
	if a.dataModel.Thinking {
		return a.loadingSpinner.View() + StatusStyle.Render(" tutor is thinking…")
	}
	if a.showHelp {
		return HelpStyle.Render(FormatFooter(
			"enter", "Send", "ctrl+n", "New chat", "ctrl+b", "Sidebar",
			"ctrl+w", "Whiteboard", "ctrl+e", "History", "ctrl+y", "Copy reply",
			"ctrl+l", "Log out", "ctrl+c", "Quit",
		))
	}

	conv := "no conversation"
	if id := a.dataModel.CurrentConversationID; id != "" {
		conv = fmt.Sprintf("conversation %s", id)
	}
	return StatusStyle.Render(conv + "  •  ? for keys")
}

// chatWidth is the viewport width given the open panels.
func (a AppView) chatWidth() int {
	w := a.width
	if a.dataModel.SidebarOpen {
		w -= sidebarWidth
	}
	if a.dataModel.ShowWhiteboard {
		w /= 2
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (a *AppView) resize() {
	a.viewport.Width = a.chatWidth()
	a.viewport.Height = a.height - chromeHeight
	a.textarea.SetWidth(a.width)
	a.updateViewportContent(true)
}
