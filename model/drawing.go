package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"tutortui/api"
	"tutortui/storage"
)

// SubmitDrawing sends a data-URL-encoded drawing for analysis. The
// drawing joins the local history immediately, independent of whether
// the analysis succeeds; a transient placeholder marks the pending
// exchange.
func (m *Model) SubmitDrawing(image string) tea.Cmd {
	if m.Thinking {
		return nil
	}
	if !m.Authenticated() {
		m.Notice = "Sign in to analyze drawings."
		return nil
	}

	drawing := storage.Drawing{
		ID:        uuid.NewString(),
		Image:     image,
		CreatedAt: time.Now(),
	}
	m.Drawings = append(m.Drawings, drawing)

	placeholder := NewTransient("Analyzing your drawing…")
	m.Messages = append(m.Messages, placeholder)
	m.Thinking = true

	var persistCmd tea.Cmd
	if m.History != nil {
		history := m.History
		persistCmd = func() tea.Msg {
			err := history.SaveDrawing(&drawing)
			return HistorySavedMsg{Err: err}
		}
	}

	apiClient := m.API
	epoch := m.Epoch
	analyzeCmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		results, err := apiClient.Calculate(ctx, image, nil)
		return AnalysisResultMsg{
			Results:       results,
			PlaceholderID: placeholder.ID,
			Err:           err,
			Epoch:         epoch,
		}
	}

	return tea.Batch(persistCmd, analyzeCmd)
}

// ApplyAnalysisResult replaces the placeholder with one assistant
// message: a line per detected expression/result pair, or the failure
// detail. The drawing stays in the local list either way.
func (m *Model) ApplyAnalysisResult(msg AnalysisResultMsg) tea.Cmd {
	if msg.Epoch != m.Epoch {
		return nil
	}
	m.Thinking = false
	m.RemoveMessage(msg.PlaceholderID)

	if msg.Err != nil {
		if sessionRejected(msg.Err) {
			m.forceLogout()
			return nil
		}
		m.Messages = append(m.Messages, NewMessage(SenderAssistant, userFacingError(msg.Err)))
		m.Notice = "Drawing analysis failed."
		return nil
	}

	m.Messages = append(m.Messages, NewMessage(SenderAssistant, formatAnalysis(msg.Results)))
	return m.FetchConversations()
}

func formatAnalysis(results []api.ExprResult) string {
	if len(results) == 0 {
		return "I couldn't find any expressions in that drawing."
	}
	lines := make([]string, 0, len(results))
	for _, pair := range results {
		lines = append(lines, fmt.Sprintf("%s = %v", pair.Expr, pair.Result))
	}
	return strings.Join(lines, "\n")
}
