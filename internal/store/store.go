// Package store persists the list of recently opened keyboard
// definitions. It records references and presentation metadata only,
// never fetched definition bodies.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/jkoivu/kbpreview/internal/store/migrations"
)

// Entry is one remembered definition reference.
type Entry struct {
	ID           string
	Ref          string
	DefinitionID string
	Name         string
	Platform     string
	Variant      string
	LastOpened   time.Time
	Opens        int
}

// Store wraps the sqlite recents database.
type Store struct {
	db *sql.DB
}

// Open opens the database at path and applies migrations.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := migrations.Migrate(db, log); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Touch records that a definition was opened, creating the entry on
// first use and bumping the open counter afterwards.
func (s *Store) Touch(ctx context.Context, e Entry) error {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recents (id, ref, definition_id, name, platform, variant, last_opened, opens)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT (ref, platform, variant) DO UPDATE SET
			definition_id = excluded.definition_id,
			name = excluded.name,
			last_opened = excluded.last_opened,
			opens = opens + 1`,
		uuid.NewString(), e.Ref, e.DefinitionID, e.Name, e.Platform, e.Variant, now)
	if err != nil {
		return fmt.Errorf("touch recent: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, most recently opened first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ref, definition_id, name, platform, variant, last_opened, opens
		FROM recents ORDER BY last_opened DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recents: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Ref, &e.DefinitionID, &e.Name, &e.Platform, &e.Variant, &e.LastOpened, &e.Opens); err != nil {
			return nil, fmt.Errorf("scan recent: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Remove deletes one entry by id.
func (s *Store) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove recent: %w", err)
	}
	return nil
}
