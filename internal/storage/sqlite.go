// Package storage provides SQLite-based persistence for the application
// screen flag (intro or game). Simulation state is never stored.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/whereim/internal/config"
)

// Screen is the UI mode shown to a player.
type Screen string

const (
	ScreenIntro Screen = "intro"
	ScreenGame  Screen = "game"
)

// Valid reports whether s is a known screen.
func (s Screen) Valid() bool {
	return s == ScreenIntro || s == ScreenGame
}

// ErrInvalidScreen is returned when saving an unknown screen value.
var ErrInvalidScreen = errors.New("storage: invalid screen")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// AppState is the persisted screen of one owner (local user or SSH user).
type AppState struct {
	Owner     string
	Screen    Screen
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS app_state (
			owner TEXT PRIMARY KEY,
			screen TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Screen returns the saved screen for owner, or ScreenIntro if none is saved.
func (s *Store) Screen(owner string) (Screen, error) {
	var screen string
	err := s.db.QueryRow("SELECT screen FROM app_state WHERE owner = ?", owner).Scan(&screen)
	if errors.Is(err, sql.ErrNoRows) {
		return ScreenIntro, nil
	}
	if err != nil {
		return ScreenIntro, fmt.Errorf("storage: cannot read screen: %w", err)
	}
	if !Screen(screen).Valid() {
		return ScreenIntro, nil
	}
	return Screen(screen), nil
}

// SetScreen saves the screen for owner.
func (s *Store) SetScreen(owner string, screen Screen) error {
	if !screen.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidScreen, screen)
	}
	_, err := s.db.Exec(
		`INSERT INTO app_state (owner, screen, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(owner) DO UPDATE SET screen = excluded.screen, updated_at = excluded.updated_at`,
		owner, string(screen),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save screen: %w", err)
	}
	return nil
}

// ResetScreens puts every owner back on the intro screen, as on app launch.
// Returns the number of rows changed.
func (s *Store) ResetScreens() (int64, error) {
	result, err := s.db.Exec(
		"UPDATE app_state SET screen = ?, updated_at = CURRENT_TIMESTAMP WHERE screen != ?",
		string(ScreenIntro), string(ScreenIntro),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot reset screens: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n, nil
}

// States lists all saved screens ordered by owner.
func (s *Store) States() ([]AppState, error) {
	rows, err := s.db.Query("SELECT owner, screen, updated_at FROM app_state ORDER BY owner")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query states: %w", err)
	}
	defer rows.Close()

	var states []AppState
	for rows.Next() {
		var st AppState
		var screen string
		var updatedAt any
		if err := rows.Scan(&st.Owner, &screen, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.Screen = Screen(screen)

		// Parse the datetime - handle both time.Time and string
		switch v := updatedAt.(type) {
		case time.Time:
			st.UpdatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				st.UpdatedAt = parsed
			}
		}
		states = append(states, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return states, nil
}
