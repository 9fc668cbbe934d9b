package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/parleyapp/parley/internal/directory"
	"github.com/parleyapp/parley/internal/models"
)

// ErrUnknownEntity rejects reads and appends against ids that are not in
// the directory.
var ErrUnknownEntity = errors.New("unknown entity")

// Seeder produces an initial history for an entity. Satisfied by
// timeline.Generator.
type Seeder interface {
	Seed(e models.Entity) []models.Message
}

// Store holds one append-only conversation per directory entity, backed by
// an in-memory SQLite database. Nothing survives the process: logout keeps
// conversations, process exit discards them.
type Store struct {
	db  *sql.DB
	dir *directory.Directory
}

const schema = `
	CREATE TABLE messages (
		entity_id INTEGER NOT NULL,
		seq       INTEGER NOT NULL,
		text      TEXT NOT NULL,
		is_from_me INTEGER NOT NULL,
		sender    TEXT NOT NULL DEFAULT '',
		stamp     TEXT NOT NULL,
		sent_at   TEXT NOT NULL,
		PRIMARY KEY (entity_id, seq)
	)
`

// Open creates the in-memory database and its schema. The pool is pinned to
// a single connection: every :memory: connection is a separate database.
func Open(dir *directory.Directory) (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create message table: %w", err)
	}

	return &Store{db: db, dir: dir}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SeedAll writes an initial history for every directory entity. Called once
// at session bootstrap, before any user interaction.
func (s *Store) SeedAll(gen Seeder) error {
	for _, e := range s.dir.List() {
		for _, msg := range gen.Seed(e) {
			if _, err := s.Append(e.ID, msg); err != nil {
				return fmt.Errorf("failed to seed entity %d: %w", e.ID, err)
			}
		}
	}
	return nil
}

// Get returns the entity's conversation in append order. A known entity with
// no history yields an empty slice, never nil semantics worth branching on.
func (s *Store) Get(entityID int) ([]models.Message, error) {
	if _, ok := s.dir.Find(entityID); !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEntity, entityID)
	}

	rows, err := s.db.Query(`
		SELECT seq, text, is_from_me, sender, stamp, sent_at
		FROM messages
		WHERE entity_id = ?
		ORDER BY seq ASC
	`, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// Append adds a message to the end of the entity's conversation, assigning
// it the next dense per-conversation id. The stored copy is returned.
func (s *Store) Append(entityID int, msg models.Message) (models.Message, error) {
	if _, ok := s.dir.Find(entityID); !ok {
		return models.Message{}, fmt.Errorf("%w: %d", ErrUnknownEntity, entityID)
	}

	seq, err := s.Len(entityID)
	if err != nil {
		return models.Message{}, err
	}
	msg.ID = seq

	fromMe := 0
	if msg.Direction == models.Sent {
		fromMe = 1
	}

	_, err = s.db.Exec(`
		INSERT INTO messages (entity_id, seq, text, is_from_me, sender, stamp, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entityID, msg.ID, msg.Text, fromMe, msg.Sender, msg.Timestamp, msg.Date.Format(time.RFC3339Nano))
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to append message: %w", err)
	}

	return msg, nil
}

// Len reports the current conversation length for an entity.
func (s *Store) Len(entityID int) (int, error) {
	if _, ok := s.dir.Find(entityID); !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownEntity, entityID)
	}

	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM messages WHERE entity_id = ?`, entityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return n, nil
}

// Last returns the most recent message of a conversation, with ok=false for
// an empty history.
func (s *Store) Last(entityID int) (models.Message, bool, error) {
	if _, ok := s.dir.Find(entityID); !ok {
		return models.Message{}, false, fmt.Errorf("%w: %d", ErrUnknownEntity, entityID)
	}

	row := s.db.QueryRow(`
		SELECT seq, text, is_from_me, sender, stamp, sent_at
		FROM messages
		WHERE entity_id = ?
		ORDER BY seq DESC
		LIMIT 1
	`, entityID)

	msg, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, false, nil
	}
	if err != nil {
		return models.Message{}, false, err
	}
	return msg, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (models.Message, error) {
	var msg models.Message
	var fromMe int
	var sentAt string
	if err := row.Scan(&msg.ID, &msg.Text, &fromMe, &msg.Sender, &msg.Timestamp, &sentAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Message{}, err
		}
		return models.Message{}, fmt.Errorf("failed to scan message: %w", err)
	}

	if fromMe == 1 {
		msg.Direction = models.Sent
	}

	// RFC 3339 keeps the zone offset, so the calendar date used for
	// grouping survives the round trip unchanged.
	date, err := time.Parse(time.RFC3339Nano, sentAt)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to parse message date: %w", err)
	}
	msg.Date = date

	return msg, nil
}
