// Package favorites persists each user's favorite party in SQLite.
package favorites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const (
	driverName    = "sqlite"
	favoriteTable = "favorite_party"
	// MemoryDSN keeps the database in process memory.
	MemoryDSN = ":memory:"
)

// ErrNotFound is returned when a user has no favorite party stored.
var ErrNotFound = errors.New("favorite party not found")

// Favorite is one stored favorite party.
type Favorite struct {
	UserID    int64     `json:"userId"`
	PartyID   string    `json:"favoriteParty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and creates when needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = MemoryDSN
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %q: %w", path, err)
	}
	// A single connection avoids "database is locked" errors and keeps an
	// in-memory database alive between calls.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database at %q: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, createFavoriteTableQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", favoriteTable, err)
	}

	return &Store{db: db, now: time.Now}, nil
}

var createFavoriteTableQuery = fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		user_id INTEGER PRIMARY KEY,
		party_id TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
`, favoriteTable)

// Set stores partyID as the favorite of userID, replacing any earlier one.
func (s *Store) Set(ctx context.Context, userID int64, partyID string) (Favorite, error) {
	fav := Favorite{UserID: userID, PartyID: partyID, UpdatedAt: s.now().UTC()}

	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, party_id, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET party_id = excluded.party_id, updated_at = excluded.updated_at
	`, favoriteTable)

	if _, err := s.db.ExecContext(ctx, query, fav.UserID, fav.PartyID, fav.UpdatedAt); err != nil {
		return Favorite{}, fmt.Errorf("store favorite party for user %d: %w", userID, err)
	}

	return fav, nil
}

// Get returns the favorite of userID or ErrNotFound.
func (s *Store) Get(ctx context.Context, userID int64) (Favorite, error) {
	query := fmt.Sprintf(`SELECT user_id, party_id, updated_at FROM %s WHERE user_id = ?`, favoriteTable)

	var fav Favorite
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&fav.UserID, &fav.PartyID, &fav.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Favorite{}, ErrNotFound
	}
	if err != nil {
		return Favorite{}, fmt.Errorf("load favorite party for user %d: %w", userID, err)
	}

	return fav, nil
}

// Count returns the number of users with a stored favorite.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, favoriteTable)
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count favorite parties: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
