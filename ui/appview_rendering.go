package ui

import (
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	appmodel "tutortui/model"
)

// updateViewportContent rebuilds the chat transcript. goToBottom keeps
// the view pinned to the newest message after appends.
func (a *AppView) updateViewportContent(goToBottom bool) {
	if !a.ready {
		return
	}

	var b strings.Builder
	for i, msg := range a.dataModel.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(a.renderMessage(msg))
		b.WriteString("\n")
	}

	a.viewport.SetContent(b.String())
	if goToBottom {
		a.viewport.GotoBottom()
	}
}

func (a *AppView) renderMessage(msg Message) string {
	stamp := DimStyle.Render(msg.Timestamp.Format("3:04:05 PM"))

	switch {
	case msg.Transient:
		return a.loadingSpinner.View() + " " + DimStyle.Render(msg.Text)
	case msg.Sender == appmodel.SenderUser:
		return UserStyle.Render("You ") + stamp + "\n" + msg.Text
	default:
		body := msg.Text
		if msg.Rendered != "" {
			body = msg.Rendered
		}
		return TutorStyle.Render("Tutor ") + stamp + "\n" + body
	}
}

// renderNewestMarkdown kicks off an async markdown render for the
// latest assistant message, if it hasn't been rendered yet.
func (a *AppView) renderNewestMarkdown() tea.Cmd {
	msgs := a.dataModel.Messages
	for i := len(msgs) - 1; i >= 0; i-- {
		msg := msgs[i]
		if msg.Transient || msg.Sender != appmodel.SenderAssistant {
			continue
		}
		if msg.Rendered != "" {
			return nil
		}
		return a.renderMarkdownAsync(msg.ID, msg.Text)
	}
	return nil
}

// renderMarkdownAsync renders assistant markdown off the update loop.
// Tutor replies carry fractions, powers and step lists that read much
// better through the terminal markdown renderer.
func (a *AppView) renderMarkdownAsync(messageID, content string) tea.Cmd {
	width := a.chatWidth() - 4
	if width < 20 {
		width = 20
	}
	return func() tea.Msg {
		p := parser.NewWithExtensions(markdown.Extensions())
		r := markdown.NewRenderer(width, 0)
		doc := p.Parse([]byte(content))
		rendered := gomarkdown.Render(doc, r)

		return markdownRenderedMsg{
			MessageID: messageID,
			Rendered:  strings.TrimRight(string(rendered), "\n"),
		}
	}
}
