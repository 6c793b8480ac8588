package model

import (
	"time"

	"github.com/google/uuid"
)

// Message senders. The backend only ever sees these two; transient
// placeholders stay client-side.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message is one entry of the visible conversation log. Order of
// appearance is the only meaningful order; IDs exist for list rendering
// and selective removal of placeholders.
type Message struct {
	ID        string
	Sender    string
	Text      string
	Rendered  string // cached markdown rendering (assistant messages)
	Timestamp time.Time
	Transient bool // placeholder, stripped from outgoing history
}

func NewMessage(sender, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	}
}

func NewTransient(text string) Message {
	msg := NewMessage(SenderAssistant, text)
	msg.Transient = true
	return msg
}
