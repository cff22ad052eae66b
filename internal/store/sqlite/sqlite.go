package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/store"
)

//go:embed schema.sql
var schema string

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLite store and makes sure the schema exists.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithSetup(dbPath, EnsureSchema)
}

// NewWithSetup creates a new SQLite store and runs a setup function.
// Useful for tests to apply a custom schema.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection; it also keeps ":memory:" on one database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// EnsureSchema creates the participants and messages tables when missing.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== ParticipantStore implementation ====

// CreateParticipant inserts a participant.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, p *core.Participant) error {
	query := `
		INSERT INTO participants (name, last_heartbeat)
		VALUES (?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, p.Name, p.LastHeartbeat.UnixMilli()); err != nil {
		if isConstraintViolation(err) {
			return store.ErrParticipantExists
		}
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

// GetParticipant retrieves a participant by name.
func (s *SQLiteStore) GetParticipant(ctx context.Context, name string) (*core.Participant, error) {
	query := `
		SELECT name, last_heartbeat
		FROM participants
		WHERE name = ?
	`
	var p core.Participant
	var lastMillis int64
	err := s.db.QueryRowContext(ctx, query, name).Scan(&p.Name, &lastMillis)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("query participant: %w", err)
	}
	p.LastHeartbeat = time.UnixMilli(lastMillis)
	return &p, nil
}

// ListParticipants lists every present participant.
func (s *SQLiteStore) ListParticipants(ctx context.Context) ([]*core.Participant, error) {
	query := `
		SELECT name, last_heartbeat
		FROM participants
		ORDER BY name ASC
	`
	return s.queryParticipants(ctx, query)
}

// TouchParticipant refreshes the last heartbeat of a participant.
func (s *SQLiteStore) TouchParticipant(ctx context.Context, name string, at time.Time) error {
	query := `UPDATE participants SET last_heartbeat = ? WHERE name = ?`
	result, err := s.db.ExecContext(ctx, query, at.UnixMilli(), name)
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrParticipantNotFound
	}
	return nil
}

// ListStaleParticipants lists participants whose heartbeat is older than cutoff.
func (s *SQLiteStore) ListStaleParticipants(ctx context.Context, cutoff time.Time) ([]*core.Participant, error) {
	query := `
		SELECT name, last_heartbeat
		FROM participants
		WHERE last_heartbeat < ?
		ORDER BY name ASC
	`
	return s.queryParticipants(ctx, query, cutoff.UnixMilli())
}

// DeleteParticipants removes participants by name.
func (s *SQLiteStore) DeleteParticipants(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	_, err := s.deleteEach(ctx, len(names), `DELETE FROM participants WHERE name = ?`, func(i int) []any {
		return []any{names[i]}
	})
	return err
}

// DeleteParticipantsIfUnchanged removes participants whose heartbeat has not moved.
func (s *SQLiteStore) DeleteParticipantsIfUnchanged(ctx context.Context, participants []*core.Participant) ([]string, error) {
	if len(participants) == 0 {
		return nil, nil
	}
	removed, err := s.deleteEach(ctx, len(participants), `DELETE FROM participants WHERE name = ? AND last_heartbeat = ?`, func(i int) []any {
		return []any{participants[i].Name, participants[i].LastHeartbeat.UnixMilli()}
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(removed))
	for _, i := range removed {
		names = append(names, participants[i].Name)
	}
	return names, nil
}

// deleteEach runs query once per index inside a single transaction and returns
// the indexes whose statement affected a row.
func (s *SQLiteStore) deleteEach(ctx context.Context, n int, query string, args func(i int) []any) ([]int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare delete: %w", err)
	}
	defer stmt.Close()

	var affected []int
	for i := 0; i < n; i++ {
		result, err := stmt.ExecContext(ctx, args(i)...)
		if err != nil {
			return nil, fmt.Errorf("delete participant: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("get rows affected: %w", err)
		}
		if rows > 0 {
			affected = append(affected, i)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return affected, nil
}

func (s *SQLiteStore) queryParticipants(ctx context.Context, query string, args ...any) ([]*core.Participant, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	var participants []*core.Participant
	for rows.Next() {
		var p core.Participant
		var lastMillis int64
		if err := rows.Scan(&p.Name, &lastMillis); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		p.LastHeartbeat = time.UnixMilli(lastMillis)
		participants = append(participants, &p)
	}

	return participants, rows.Err()
}

// ==== MessageStore implementation ====

const insertMessage = `
	INSERT INTO messages (from_name, to_name, text, kind, time, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
`

// SaveMessage persists a message to storage.
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg *core.Message) error {
	result, err := s.db.ExecContext(ctx, insertMessage,
		msg.From, msg.To, msg.Text, string(msg.Kind), msg.Time, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	msg.ID = id
	return nil
}

// SaveMessages persists several messages in one transaction.
func (s *SQLiteStore) SaveMessages(ctx context.Context, msgs []*core.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op
	}()

	stmt, err := tx.PrepareContext(ctx, insertMessage)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	ids := make([]int64, len(msgs))
	for i, msg := range msgs {
		result, err := stmt.ExecContext(ctx, msg.From, msg.To, msg.Text, string(msg.Kind), msg.Time, msg.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		if ids[i], err = result.LastInsertId(); err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	for i, msg := range msgs {
		msg.ID = ids[i]
	}
	return nil
}

// ListMessagesFor retrieves the messages visible to viewer.
func (s *SQLiteStore) ListMessagesFor(ctx context.Context, viewer string, limit int) ([]*core.Message, error) {
	var query string
	var args []any

	if limit > 0 {
		query = `
			SELECT id, from_name, to_name, text, kind, time, created_at
			FROM messages
			WHERE to_name = ? OR to_name = ? OR from_name = ?
			ORDER BY id DESC
			LIMIT ?
		`
		args = []any{core.BroadcastTarget, viewer, viewer, limit}
	} else {
		query = `
			SELECT id, from_name, to_name, text, kind, time, created_at
			FROM messages
			WHERE to_name = ? OR to_name = ? OR from_name = ?
			ORDER BY id ASC
		`
		args = []any{core.BroadcastTarget, viewer, viewer}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []*core.Message
	for rows.Next() {
		var msg core.Message
		var kind string
		if err := rows.Scan(&msg.ID, &msg.From, &msg.To, &msg.Text, &kind, &msg.Time, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.Kind = core.Kind(kind)
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	if limit > 0 {
		// Reverse to get chronological order
		for i := 0; i < len(messages)/2; i++ {
			messages[i], messages[len(messages)-1-i] = messages[len(messages)-1-i], messages[i]
		}
	}

	return messages, nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
