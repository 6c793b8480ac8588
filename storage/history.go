package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ArchivedMessage is one message of an archived chat snapshot.
type ArchivedMessage struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// SavedChat is an immutable snapshot of a conversation log, taken when
// the user starts a new chat over a non-empty log. Never mutated after
// creation.
type SavedChat struct {
	ID         string
	ArchivedAt time.Time
	Messages   []ArchivedMessage
}

// Drawing is a whiteboard submission: a data-URL-encoded bitmap.
// Terminal records, appended as produced.
type Drawing struct {
	ID        string
	Image     string
	CreatedAt time.Time
}

// HistoryStore persists local history (saved chats, drawings) in a
// SQLite database under the data directory.
type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	dbPath := filepath.Join(dataDir, "history.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &HistoryStore{db: db}

	if err := store.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (s *HistoryStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saved_chats (
		id TEXT PRIMARY KEY,
		archived_at DATETIME NOT NULL,
		messages TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS drawings (
		id TEXT PRIMARY KEY,
		image TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_saved_chats_archived_at ON saved_chats(archived_at);
	CREATE INDEX IF NOT EXISTS idx_drawings_created_at ON drawings(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveChat persists an archived chat snapshot. A missing ID is assigned.
func (s *HistoryStore) SaveChat(chat *SavedChat) error {
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	if chat.ArchivedAt.IsZero() {
		chat.ArchivedAt = time.Now()
	}

	data, err := json.Marshal(chat.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal chat messages: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saved_chats (id, archived_at, messages) VALUES (?, ?, ?)`,
		chat.ID, chat.ArchivedAt, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to insert saved chat: %w", err)
	}
	return nil
}

// ListChats returns archived chats, newest first.
func (s *HistoryStore) ListChats() ([]SavedChat, error) {
	rows, err := s.db.Query(
		`SELECT id, archived_at, messages FROM saved_chats ORDER BY archived_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved chats: %w", err)
	}
	defer rows.Close()

	var chats []SavedChat
	for rows.Next() {
		var chat SavedChat
		var raw string
		if err := rows.Scan(&chat.ID, &chat.ArchivedAt, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan saved chat: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &chat.Messages); err != nil {
			continue // skip corrupted rows
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

// SaveDrawing persists one drawing record. A missing ID is assigned.
func (s *HistoryStore) SaveDrawing(d *Drawing) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO drawings (id, image, created_at) VALUES (?, ?, ?)`,
		d.ID, d.Image, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert drawing: %w", err)
	}
	return nil
}

// ListDrawings returns drawings, newest first.
func (s *HistoryStore) ListDrawings() ([]Drawing, error) {
	rows, err := s.db.Query(
		`SELECT id, image, created_at FROM drawings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query drawings: %w", err)
	}
	defer rows.Close()

	var drawings []Drawing
	for rows.Next() {
		var d Drawing
		if err := rows.Scan(&d.ID, &d.Image, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan drawing: %w", err)
		}
		drawings = append(drawings, d)
	}
	return drawings, rows.Err()
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}
