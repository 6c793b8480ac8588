package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"tutortui/api"
)

// visibleConversations applies the fuzzy filter to the conversation
// list, preserving backend order when no filter is active.
func (a *AppView) visibleConversations() []api.ConversationSummary {
	list := a.dataModel.Conversations
	filter := strings.TrimSpace(a.sidebarFilter.Value())
	if filter == "" {
		return list
	}

	targets := make([]string, len(list))
	for i, conv := range list {
		targets[i] = conv.Title
	}

	matches := fuzzy.Find(filter, targets)
	filtered := make([]api.ConversationSummary, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, list[match.Index])
	}
	return filtered
}

func (a *AppView) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	if a.sidebarFiltering {
		switch msg.String() {
		case "enter", "esc":
			a.sidebarFiltering = false
			a.sidebarFilter.Blur()
			a.sidebarCursor = 0
			return nil
		default:
			var cmd tea.Cmd
			a.sidebarFilter, cmd = a.sidebarFilter.Update(msg)
			return cmd
		}
	}

	visible := a.visibleConversations()

	switch msg.String() {
	case "esc", "ctrl+b", "q":
		a.dataModel.SidebarOpen = false
		a.sidebarFilter.Reset()
		a.textarea.Focus()
		a.resize()

	case "j", "down":
		if a.sidebarCursor < len(visible)-1 {
			a.sidebarCursor++
		}

	case "k", "up":
		if a.sidebarCursor > 0 {
			a.sidebarCursor--
		}

	case "/":
		a.sidebarFiltering = true
		a.sidebarFilter.Reset()
		return a.sidebarFilter.Focus()

	case "n":
		a.dataModel.SidebarOpen = false
		a.textarea.Focus()
		a.resize()
		return a.dataModel.StartNewConversation()

	case "x":
		a.dataModel.Logout()
		a.login = newLoginForm()

	case "enter":
		if a.sidebarCursor < len(visible) {
			a.dataModel.SelectConversation(visible[a.sidebarCursor].ID)
			a.dataModel.SidebarOpen = false
			a.sidebarFilter.Reset()
			a.textarea.Focus()
			a.resize()
		}
	}
	return nil
}

func (a AppView) sidebarView() string {
	height := a.height - chromeHeight
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Conversations"))
	b.WriteString("\n")

	if a.sidebarFiltering {
		b.WriteString(a.sidebarFilter.View())
	} else {
		b.WriteString(HelpStyle.Render("j/k select  / filter  n new  x logout"))
	}
	b.WriteString("\n\n")

	visible := a.visibleConversations()
	if len(visible) == 0 {
		b.WriteString(DimStyle.Render("No saved conversations"))
	}
	for i, conv := range visible {
		title := conv.Title
		if title == "" {
			title = conv.ID
		}
		title = runewidth.Truncate(title, sidebarWidth-4, "…")

		line := "  " + title
		if conv.ID == a.dataModel.CurrentConversationID {
			line = "* " + title
		}
		if i == a.sidebarCursor {
			line = SelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	panel := b.String()
	lines := strings.Split(panel, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if pad := sidebarWidth - 1 - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines[i] = line + BorderStyle.Render("│")
	}
	return strings.Join(lines, "\n")
}
