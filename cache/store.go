// Package cache persists fetched transcripts in a local SQLite database
// so repeated fetches of the same video skip the network.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/halcyon-tools/ytfetch/transcript"
	"github.com/halcyon-tools/ytfetch/videoid"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS transcripts (
	video_id TEXT PRIMARY KEY,
	payload BLOB NOT NULL,
	fetched_at TEXT NOT NULL
);`

const (
	defaultStoreDir = ".ytfetch"
	defaultStoreDB  = "ytfetch.db"

	// DefaultTTL bounds how long a cached transcript is served before it
	// is treated as a miss and refetched.
	DefaultTTL = 24 * time.Hour
)

// StoreConfig configures the SQLite-backed transcript store.
type StoreConfig struct {
	DSN string
	// TTL defaults to DefaultTTL when zero.
	TTL time.Duration
}

// Store persists transcripts in SQLite, one row per video.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// DefaultPath returns the default SQLite path for CLI storage.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cache: resolve user home: %w", err)
	}
	return filepath.Join(home, defaultStoreDir, defaultStoreDB), nil
}

// Open opens (or creates) a SQLite-backed transcript store.
func Open(cfg StoreConfig) (*Store, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("cache: store dsn is required")
	}

	if dir := filepath.Dir(cfg.DSN); dir != "." && !strings.HasPrefix(strings.ToLower(cfg.DSN), "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cache: create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("cache: store open: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: store set WAL mode: %w", err)
	}

	if _, err := db.Exec(storeSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: store create schema: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Store{
		db:  db,
		ttl: ttl,
	}, nil
}

// Get returns the cached transcript for a video. Rows older than the
// TTL are deleted and reported as a miss.
func (s *Store) Get(ctx context.Context, id videoid.ID) (transcript.Transcript, bool, error) {
	if s == nil || s.db == nil {
		return transcript.Transcript{}, false, errors.New("cache: store is closed")
	}

	var payload []byte
	var fetchedAt string
	err := s.db.QueryRowContext(
		ctx,
		"SELECT payload, fetched_at FROM transcripts WHERE video_id = ?",
		id.String(),
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return transcript.Transcript{}, false, nil
	}
	if err != nil {
		return transcript.Transcript{}, false, fmt.Errorf("cache: store get: %w", err)
	}

	stored, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil || time.Since(stored) > s.ttl {
		_ = s.Delete(ctx, id)
		return transcript.Transcript{}, false, nil
	}

	var t transcript.Transcript
	if err := json.Unmarshal(payload, &t); err != nil {
		_ = s.Delete(ctx, id)
		return transcript.Transcript{}, false, nil
	}
	return t, true, nil
}

// Put stores or replaces the cached transcript for a video.
func (s *Store) Put(ctx context.Context, id videoid.ID, t transcript.Transcript) error {
	if s == nil || s.db == nil {
		return errors.New("cache: store is closed")
	}

	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("cache: encode transcript: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO transcripts (video_id, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(video_id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		id.String(),
		payload,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("cache: store put: %w", err)
	}
	return nil
}

// Delete removes the cached transcript for a video, if present.
func (s *Store) Delete(ctx context.Context, id videoid.ID) error {
	if s == nil || s.db == nil {
		return errors.New("cache: store is closed")
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM transcripts WHERE video_id = ?", id.String()); err != nil {
		return fmt.Errorf("cache: store delete: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
