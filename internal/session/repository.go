package session

import (
	"context"
	"database/sql"
	"time"
)

// StoredSession is the persisted form of a session. Segments travel inside
// the canonical link text, so a restore goes through the same decode path as
// a pasted share link. Segment IDs are ephemeral, which is why the selection
// is stored as a list index.
type StoredSession struct {
	ID            string
	Link          string
	SelectedIndex int // -1 when nothing is selected
	Looping       bool
	UpdatedAt     time.Time
}

type Repository interface {
	SaveSession(ctx context.Context, s *StoredSession) error
	LatestSession(ctx context.Context) (*StoredSession, error)

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) SaveSession(ctx context.Context, s *StoredSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, link, selected_index, looping, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			link = excluded.link,
			selected_index = excluded.selected_index,
			looping = excluded.looping,
			updated_at = excluded.updated_at
	`, s.ID, s.Link, s.SelectedIndex, boolToInt(s.Looping), s.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) LatestSession(ctx context.Context) (*StoredSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, link, selected_index, looping, updated_at
		FROM sessions ORDER BY updated_at DESC LIMIT 1
	`)

	var s StoredSession
	var looping int
	var updatedAt string
	err := row.Scan(&s.ID, &s.Link, &s.SelectedIndex, &looping, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.Looping = looping == 1
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &s, nil
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
