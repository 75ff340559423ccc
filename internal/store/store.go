// Package store persists the gallery tables and privacy-conscious visitor
// statistics in SQLite.
package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/content"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS images (
		id INTEGER PRIMARY KEY,
		thumb_url TEXT NOT NULL,
		url TEXT NOT NULL,
		is_hero INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS stages (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		director TEXT NOT NULL,
		location TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL, -- never the raw address
		user_agent TEXT,
		path TEXT,
		timestamp INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp)`,
}

// Store wraps the SQLite database.
type Store struct {
	db     *sql.DB
	salt   string
	logger *slog.Logger
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One connection: SQLite serialises writers anyway, and an in-memory
	// database only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	salt, err := newSalt()
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, salt: salt, logger: logger}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func newSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Seed replaces the gallery and stage tables with the given rows.
func (s *Store) Seed(ctx context.Context, images []content.Image, stages []content.Stage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM images`); err != nil {
		return err
	}
	for _, img := range images {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO images (id, thumb_url, url, is_hero) VALUES (?, ?, ?, ?)`,
			img.ID, img.ThumbURL, img.URL, img.IsHero)
		if err != nil {
			return fmt.Errorf("seed image %d: %w", img.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM stages`); err != nil {
		return err
	}
	for i, st := range stages {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO stages (position, name, director, location) VALUES (?, ?, ?, ?)`,
			i, st.Name, st.Director, st.Location)
		if err != nil {
			return fmt.Errorf("seed stage %q: %w", st.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("content seeded", "images", len(images), "stages", len(stages))
	return nil
}

// ListImages implements content.ImageProvider.
func (s *Store) ListImages(ctx context.Context) ([]content.Image, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, thumb_url, url, is_hero FROM images ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []content.Image
	for rows.Next() {
		var img content.Image
		if err := rows.Scan(&img.ID, &img.ThumbURL, &img.URL, &img.IsHero); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ListStages implements content.StageProvider.
func (s *Store) ListStages(ctx context.Context) ([]content.Stage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, director, location FROM stages ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stages []content.Stage
	for rows.Next() {
		var st content.Stage
		if err := rows.Scan(&st.Name, &st.Director, &st.Location); err != nil {
			return nil, err
		}
		stages = append(stages, st)
	}
	return stages, rows.Err()
}

// Empty reports whether the gallery has never been seeded.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

// HashIP returns a salted, truncated hash of ip. The salt lives only as long
// as the Store, so hashes are stable per process and unlinkable across restarts.
func (s *Store) HashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(h[:])[:16]
}
