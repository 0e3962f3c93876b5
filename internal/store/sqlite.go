// Package store is the durable local store for cached news responses and
// per-client theme preferences. Entries are advisory; a corrupt or missing
// row is a cache miss, never an error surfaced to callers.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mr1hm/go-city-globe/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS news_cache (
			cache_key TEXT PRIMARY KEY,
			articles TEXT NOT NULL,
			fetched_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS theme_prefs (
			client_id TEXT PRIMARY KEY,
			is_night_mode INTEGER NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_news_cache_fetched_at ON news_cache(fetched_at);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetNews returns the cached articles for key if they are fresher than
// maxAge. Malformed rows are dropped and reported as a miss.
func (s *SQLiteStore) GetNews(ctx context.Context, key string, maxAge time.Duration) ([]models.Article, bool) {
	var raw string
	var fetchedAt time.Time

	row := s.db.QueryRowContext(ctx, `SELECT articles, fetched_at FROM news_cache WHERE cache_key = ?`, key)
	if err := row.Scan(&raw, &fetchedAt); err != nil {
		if err != sql.ErrNoRows {
			slog.Warn("news cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	if time.Since(fetchedAt) >= maxAge {
		return nil, false
	}

	var articles []models.Article
	if err := json.Unmarshal([]byte(raw), &articles); err != nil {
		slog.Warn("dropping malformed news cache entry", "key", key, "error", err)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM news_cache WHERE cache_key = ?`, key)
		return nil, false
	}

	return articles, true
}

func (s *SQLiteStore) PutNews(ctx context.Context, key string, articles []models.Article) error {
	raw, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("error encoding articles: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO news_cache (cache_key, articles, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET articles = excluded.articles, fetched_at = excluded.fetched_at`,
		key, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error writing news cache: %w", err)
	}
	return nil
}

// ThemePreference mirrors the browser theme blob: the chosen mode and when
// it was last refreshed.
type ThemePreference struct {
	IsNightMode bool      `json:"isNightMode"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *SQLiteStore) GetThemePreference(ctx context.Context, clientID string) (*ThemePreference, bool) {
	var isNight int
	var updatedAt time.Time

	row := s.db.QueryRowContext(ctx, `SELECT is_night_mode, updated_at FROM theme_prefs WHERE client_id = ?`, clientID)
	if err := row.Scan(&isNight, &updatedAt); err != nil {
		if err != sql.ErrNoRows {
			slog.Warn("theme preference read failed", "client_id", clientID, "error", err)
		}
		return nil, false
	}

	return &ThemePreference{IsNightMode: isNight != 0, UpdatedAt: updatedAt}, true
}

func (s *SQLiteStore) PutThemePreference(ctx context.Context, clientID string, isNightMode bool) error {
	night := 0
	if isNightMode {
		night = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO theme_prefs (client_id, is_night_mode, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET is_night_mode = excluded.is_night_mode, updated_at = excluded.updated_at`,
		clientID, night, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error writing theme preference: %w", err)
	}
	return nil
}
