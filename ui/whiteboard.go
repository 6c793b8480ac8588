package ui

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tutortui/config"
)

// submitWhiteboard reads the image file named in the whiteboard input,
// encodes it as a data URL and hands it to the controller. The actual
// drawing happens in any external sketch tool; this panel only captures
// the result.
func (a *AppView) submitWhiteboard() tea.Cmd {
	path := config.ExpandPath(strings.TrimSpace(a.whiteboardInput.Value()))
	if path == "" {
		return nil
	}

	dataURL, err := encodeImageFile(path)
	if err != nil {
		a.whiteboardStatus = err.Error()
		return nil
	}

	a.whiteboardInput.Reset()
	a.whiteboardStatus = "Submitted " + filepath.Base(path)
	return a.dataModel.SubmitDrawing(dataURL)
}

// encodeImageFile turns an image file into the data-URL string the
// analysis endpoint expects.
func encodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read %s", filepath.Base(path))
	}

	mime := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".gif":
		mime = "image/gif"
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (a AppView) whiteboardView() string {
	height := a.height - chromeHeight

	var b strings.Builder
	b.WriteString(TitleStyle.Render(" Whiteboard"))
	b.WriteString("\n\n")
	b.WriteString(" " + DimStyle.Render("Draw in your sketch tool, save the image,"))
	b.WriteString("\n")
	b.WriteString(" " + DimStyle.Render("then submit it here for analysis."))
	b.WriteString("\n\n")
	b.WriteString(" " + a.whiteboardInput.View())
	b.WriteString("\n\n")
	if a.whiteboardStatus != "" {
		b.WriteString(" " + NoticeStyle.Render(a.whiteboardStatus))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(" " + HelpStyle.Render(FormatFooter("enter", "Submit", "tab", "Back to chat")))

	lines := strings.Split(b.String(), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		lines[i] = BorderStyle.Render("│") + line
	}
	return strings.Join(lines, "\n")
}
