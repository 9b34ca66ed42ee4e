package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"lectern/internal/config"
)

// Store manages episode and processed-message persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the state database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.StateDir, "lectern.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InsertEpisode persists a published episode.
func (s *Store) InsertEpisode(ctx context.Context, episode *Episode) error {
	if episode == nil {
		return errors.New("episode is nil")
	}
	if strings.TrimSpace(episode.ID) == "" {
		return errors.New("episode id is required")
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO episodes (
            id, title, slug, pub_date, storage_key, feed_slug, category,
            source_tag, adapter_name, source_url, size_bytes, duration_seconds
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		episode.ID,
		episode.Title,
		episode.Slug,
		episode.PubDate,
		episode.StorageKey,
		episode.FeedSlug,
		episode.Category,
		nullableString(episode.SourceTag),
		episode.AdapterName,
		nullableString(episode.SourceURL),
		episode.SizeBytes,
		nullableDuration(episode),
	)
	if err != nil {
		return fmt.Errorf("insert episode: %w", err)
	}
	return nil
}

// ListEpisodes returns episodes newest-first, optionally filtered by feed
// slug (empty means all feeds).
func (s *Store) ListEpisodes(ctx context.Context, feedSlug string) ([]*Episode, error) {
	query := `SELECT ` + episodeColumns + ` FROM episodes`
	args := []any{}
	if feedSlug != "" {
		query += ` WHERE feed_slug = ?`
		args = append(args, feedSlug)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer rows.Close()

	var episodes []*Episode
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, episode)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	return episodes, nil
}

// ListFeedSlugs returns the distinct feed slugs with at least one episode.
func (s *Store) ListFeedSlugs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT feed_slug FROM episodes ORDER BY feed_slug ASC`)
	if err != nil {
		return nil, fmt.Errorf("list feed slugs: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("scan feed slug: %w", err)
		}
		if slug != "" {
			slugs = append(slugs, slug)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list feed slugs: %w", err)
	}
	return slugs, nil
}

// IsProcessed reports whether the raw message at the given storage key has
// already been turned into an episode.
func (s *Store) IsProcessed(ctx context.Context, storageKey string) (bool, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT 1 FROM processed_messages WHERE storage_key = ?`,
		storageKey,
	)
	var one int
	err := row.Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check processed: %w", err)
	}
	return true, nil
}

// MarkProcessed records that the raw message at the given storage key has
// been handled. Marking twice is not an error.
func (s *Store) MarkProcessed(ctx context.Context, storageKey string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO processed_messages (storage_key) VALUES (?)`,
		storageKey,
	)
	if err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	return nil
}

const episodeColumns = `id, title, slug, pub_date, storage_key, feed_slug, category,
    source_tag, adapter_name, source_url, size_bytes, duration_seconds, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEpisode(row rowScanner) (*Episode, error) {
	var (
		episode   Episode
		sourceTag sql.NullString
		sourceURL sql.NullString
		duration  sql.NullInt64
		createdAt string
	)
	err := row.Scan(
		&episode.ID,
		&episode.Title,
		&episode.Slug,
		&episode.PubDate,
		&episode.StorageKey,
		&episode.FeedSlug,
		&episode.Category,
		&sourceTag,
		&episode.AdapterName,
		&sourceURL,
		&episode.SizeBytes,
		&duration,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	episode.SourceTag = sourceTag.String
	episode.SourceURL = sourceURL.String
	episode.DurationSeconds = duration.Int64
	episode.DurationKnown = duration.Valid
	if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		episode.CreatedAt = t.UTC()
	}
	return &episode, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func nullableDuration(episode *Episode) any {
	if !episode.DurationKnown {
		return nil
	}
	return episode.DurationSeconds
}
