// Package storage persists the video catalog in SQLite. The catalog carries
// listing metadata only; content size and media type are always derived from
// the content source at request time.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
)

const (
	sqliteConstraintCode = 19
	defaultBusyTimeout   = 5000
)

// Store wraps the SQLite handle behind the catalog methods.
type Store struct {
	db *sql.DB
}

// Video is one catalog row.
type Video struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
}

// ErrVideoExists is returned when inserting a duplicate video id.
var ErrVideoExists = errors.New("video already exists")

// NewStore opens the SQLite database at the provided path. Call Close when done.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "bytetube.db"
	}
	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", defaultBusyTimeout)); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying DB connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func buildDSN(path string) string {
	switch {
	case strings.HasPrefix(path, "sqlite://"):
		path = path[len("sqlite://"):]
	case strings.HasPrefix(path, "file:"), strings.HasPrefix(path, ":memory:"):
		// already in a form sqlite understands
	default:
		path = "file:" + path
	}
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout=%d&_pragma=foreign_keys=ON", path, separator, defaultBusyTimeout)
}

// Migrate runs the schema creation statements.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS videos (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`)
	return err
}

// CreateVideo inserts a catalog entry. ErrVideoExists is returned on conflicts.
func (s *Store) CreateVideo(ctx context.Context, id, title, description string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO videos(id, title, description) VALUES(?, ?, ?)`,
		id, title, description)
	if err != nil {
		if isConstraintError(err) {
			return ErrVideoExists
		}
		return err
	}
	return nil
}

// GetVideo fetches one catalog entry, or nil when the id is unknown.
func (s *Store) GetVideo(ctx context.Context, id string) (*Video, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, created_at FROM videos WHERE id = ?`, id)
	var video Video
	if err := row.Scan(&video.ID, &video.Title, &video.Description, &video.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

// ListVideos returns the catalog, newest entries first.
func (s *Store) ListVideos(ctx context.Context) ([]Video, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, created_at FROM videos ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		var video Video
		if err := rows.Scan(&video.ID, &video.Title, &video.Description, &video.CreatedAt); err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

// DeleteVideo removes a catalog entry. Deleting an unknown id is a no-op.
func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	return err
}

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		// the driver reports extended result codes (e.g. 1555 for a primary
		// key violation); the base code sits in the low byte
		return sqliteErr.Code()&0xff == sqliteConstraintCode
	}
	return false
}
