package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// slotName identifies the single row holding the serialized history list.
const slotName = "history"

// Store persists the history list across sessions. The whole list lives in
// one named slot: it is read once at startup and rewritten in full on every
// mutation.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the history database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history_slots (
		name TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the persisted history list. A missing slot yields an empty
// list, not an error.
func (s *Store) Load(ctx context.Context) ([]Item, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM history_slots WHERE name = ?`, slotName).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("failed to decode history payload: %w", err)
	}
	return items, nil
}

// Save overwrites the slot with the full list.
func (s *Store) Save(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode history payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO history_slots (name, payload, updated_at) VALUES (?, ?, ?)`,
		slotName, string(payload), time.Now())
	return err
}

// Clear removes the slot entirely.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM history_slots WHERE name = ?`, slotName)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
