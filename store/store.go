// Package store is the local conversation data layer backing the inbox. It
// stands in for the realtime backend: the UI only ever sees snapshots pulled
// from here, and Refresh in the header re-reads it.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id             TEXT PRIMARY KEY,
	customer_name  TEXT NOT NULL,
	customer_email TEXT NOT NULL DEFAULT '',
	subject        TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'open',
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id              TEXT PRIMARY KEY,
	conversation_id TEXT NOT NULL REFERENCES conversations(id),
	author          TEXT NOT NULL,
	body            TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	read            INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at);
CREATE INDEX IF NOT EXISTS idx_conversations_updated ON conversations(status, updated_at DESC);
`

// Conversation statuses.
const (
	StatusOpen    = "open"
	StatusSnoozed = "snoozed"
	StatusClosed  = "closed"
)

// Message authors.
const (
	AuthorCustomer = "customer"
	AuthorAgent    = "agent"
)

// Conversation is one support thread as shown in the list panel.
type Conversation struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	Subject       string
	Status        string
	LastMessage   string
	Unread        int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Message is one entry in a conversation transcript.
type Message struct {
	ID             string
	ConversationID string
	Author         string
	Body           string
	CreatedAt      time.Time
	Read           bool
}

// Store is a SQLite-backed conversation repository.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath and runs the schema.
// Use ":memory:" for an in-memory database (useful in tests).
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open conversation db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run conversation schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListConversations returns conversations newest-first, optionally filtered
// by status and a case-insensitive search over customer name and subject.
func (s *Store) ListConversations(status, search string) ([]Conversation, error) {
	var (
		where []string
		args  []any
	)
	if status != "" {
		where = append(where, "c.status = ?")
		args = append(args, status)
	}
	if search != "" {
		where = append(where, "(LOWER(c.customer_name) LIKE ? OR LOWER(c.subject) LIKE ?)")
		needle := "%" + strings.ToLower(search) + "%"
		args = append(args, needle, needle)
	}

	q := `
		SELECT c.id, c.customer_name, c.customer_email, c.subject, c.status,
		       c.created_at, c.updated_at,
		       COALESCE((SELECT m.body FROM messages m
		                 WHERE m.conversation_id = c.id
		                 ORDER BY m.created_at DESC LIMIT 1), ''),
		       (SELECT COUNT(*) FROM messages m
		        WHERE m.conversation_id = c.id AND m.read = 0 AND m.author = ?)
		FROM conversations c
	`
	queryArgs := append([]any{AuthorCustomer}, args...)
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY c.updated_at DESC"

	rows, err := s.db.Query(q, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var out []Conversation
	for rows.Next() {
		var (
			c                    Conversation
			createdAt, updatedAt string
		)
		if err := rows.Scan(&c.ID, &c.CustomerName, &c.CustomerEmail, &c.Subject,
			&c.Status, &createdAt, &updatedAt, &c.LastMessage, &c.Unread); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		c.UpdatedAt = parseTime(updatedAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get returns a single conversation by ID.
func (s *Store) Get(id string) (Conversation, error) {
	list, err := s.ListConversations("", "")
	if err != nil {
		return Conversation{}, err
	}
	for _, c := range list {
		if c.ID == id {
			return c, nil
		}
	}
	return Conversation{}, fmt.Errorf("conversation %s not found", id)
}

// Messages returns the transcript for a conversation, oldest first.
func (s *Store) Messages(conversationID string) ([]Message, error) {
	const q = `
		SELECT id, conversation_id, author, body, created_at, read
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at
	`
	rows, err := s.db.Query(q, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			m         Message
			createdAt string
			read      int
		)
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Author, &m.Body, &createdAt, &read); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		m.Read = read != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkRead marks every customer message in the conversation as read. Called
// when the chat panel becomes active for the conversation.
func (s *Store) MarkRead(conversationID string) error {
	_, err := s.db.Exec(
		`UPDATE messages SET read = 1 WHERE conversation_id = ? AND author = ?`,
		conversationID, AuthorCustomer)
	if err != nil {
		return fmt.Errorf("mark conversation read: %w", err)
	}
	return nil
}

// UnreadTotal returns the number of unread customer messages across all
// non-closed conversations, for the header badge.
func (s *Store) UnreadTotal() (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE m.read = 0 AND m.author = ? AND c.status != ?
	`, AuthorCustomer, StatusClosed).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

// AddConversation inserts a conversation with a generated ID and returns it.
func (s *Store) AddConversation(customerName, customerEmail, subject, status string, at time.Time) (string, error) {
	id := uuid.NewString()
	if status == "" {
		status = StatusOpen
	}
	_, err := s.db.Exec(`
		INSERT INTO conversations (id, customer_name, customer_email, subject, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, customerName, customerEmail, subject, status, formatTime(at), formatTime(at))
	if err != nil {
		return "", fmt.Errorf("insert conversation: %w", err)
	}
	return id, nil
}

// AddMessage appends a message to a conversation and bumps its updated_at.
func (s *Store) AddMessage(conversationID, author, body string, at time.Time, read bool) error {
	readInt := 0
	if read {
		readInt = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO messages (id, conversation_id, author, body, created_at, read)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), conversationID, author, body, formatTime(at), readInt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	_, err = s.db.Exec(`UPDATE conversations SET updated_at = ? WHERE id = ?`,
		formatTime(at), conversationID)
	if err != nil {
		return fmt.Errorf("bump conversation: %w", err)
	}
	return nil
}

// SetStatus updates a conversation's status (open/snoozed/closed).
func (s *Store) SetStatus(conversationID, status string) error {
	_, err := s.db.Exec(`UPDATE conversations SET status = ? WHERE id = ?`,
		status, conversationID)
	if err != nil {
		return fmt.Errorf("set conversation status: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
