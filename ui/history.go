package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	appmodel "tutortui/model"
)

func (a *AppView) handleHistoryKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "q", "ctrl+e":
		a.dataModel.ShowHistory = false
	case "c":
		a.dataModel.ClearHistory()
		a.updateViewportContent(true)
	}
}

// historyView is the read-only history overlay: the current log, the
// archived chat snapshots and the drawing records.
func (a AppView) historyView() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("History"))
	b.WriteString("\n")
	b.WriteString(BorderStyle.Render(strings.Repeat("─", a.width)))
	b.WriteString("\n\n")

	b.WriteString(HighlightStyle.Render("Current chat"))
	b.WriteString("\n")
	if len(a.dataModel.Messages) == 0 {
		b.WriteString(DimStyle.Render("  (empty)"))
		b.WriteString("\n")
	}
	for _, msg := range a.dataModel.Messages {
		if msg.Transient {
			continue
		}
		b.WriteString(historyLine(msg.Sender, msg.Text, a.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HighlightStyle.Render(fmt.Sprintf("Saved chats (%d)", len(a.dataModel.SavedChats))))
	b.WriteString("\n")
	for _, chat := range a.dataModel.SavedChats {
		first := ""
		if len(chat.Messages) > 0 {
			first = chat.Messages[0].Text
		}
		entry := fmt.Sprintf("  %s  %s",
			chat.ArchivedAt.Format("Jan 2 15:04"),
			runewidth.Truncate(first, a.width-24, "…"))
		b.WriteString(DimStyle.Render(entry))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HighlightStyle.Render(fmt.Sprintf("Drawings (%d)", len(a.dataModel.Drawings))))
	b.WriteString("\n")
	for _, d := range a.dataModel.Drawings {
		entry := fmt.Sprintf("  %s  %d bytes", d.CreatedAt.Format("Jan 2 15:04"), len(d.Image))
		b.WriteString(DimStyle.Render(entry))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(FormatFooter("c", "Clear history", "esc", "Close")))

	return b.String()
}

func historyLine(sender, text string, width int) string {
	label := "Tutor"
	style := TutorStyle
	if sender == appmodel.SenderUser {
		label = "You"
		style = UserStyle
	}
	text = strings.ReplaceAll(text, "\n", " ")
	return "  " + style.Render(label+":") + " " + runewidth.Truncate(text, width-12, "…")
}
