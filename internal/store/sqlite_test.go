package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mr1hm/go-city-globe/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewsCache_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	articles := []models.Article{
		{Title: "Paris opens new metro line", URL: "https://example.com/a", SourceName: "lemonde"},
		{Title: "Seine floods recede", URL: "https://example.com/b", SourceName: "afp"},
	}

	if err := s.PutNews(ctx, "paris-france", articles); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok := s.GetNews(ctx, "paris-france", time.Hour)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[0].Title != articles[0].Title {
		t.Errorf("unexpected articles: %+v", got)
	}
}

func TestNewsCache_MissOnUnknownKey(t *testing.T) {
	s := newTestStore(t)

	if _, ok := s.GetNews(context.Background(), "nowhere-nada", time.Hour); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestNewsCache_ExpiredEntryIsMiss(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.PutNews(ctx, "tokyo-japan", []models.Article{{Title: "x", URL: "y"}}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	if _, ok := s.GetNews(ctx, "tokyo-japan", 0); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestNewsCache_MalformedRowIsMiss(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO news_cache (cache_key, articles, fetched_at) VALUES (?, ?, ?)`,
		"broken-row", "{not json", time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to seed malformed row: %v", err)
	}

	if _, ok := s.GetNews(ctx, "broken-row", time.Hour); ok {
		t.Error("expected malformed row to miss")
	}

	// The row is dropped so it cannot keep tripping reads.
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news_cache WHERE cache_key = ?`, "broken-row").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Error("expected malformed row deleted")
	}
}

func TestNewsCache_Overwrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.PutNews(ctx, "lyon-france", []models.Article{{Title: "old", URL: "u"}}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := s.PutNews(ctx, "lyon-france", []models.Article{{Title: "new", URL: "u"}}); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	got, ok := s.GetNews(ctx, "lyon-france", time.Hour)
	if !ok || len(got) != 1 || got[0].Title != "new" {
		t.Errorf("expected overwritten entry, got %+v", got)
	}
}

func TestThemePreference_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, ok := s.GetThemePreference(ctx, "client-1"); ok {
		t.Fatal("expected miss before write")
	}

	if err := s.PutThemePreference(ctx, "client-1", true); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	pref, ok := s.GetThemePreference(ctx, "client-1")
	if !ok || !pref.IsNightMode {
		t.Errorf("expected night mode preference, got %+v", pref)
	}

	// Manual toggle refreshes the stored value.
	if err := s.PutThemePreference(ctx, "client-1", false); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	pref, ok = s.GetThemePreference(ctx, "client-1")
	if !ok || pref.IsNightMode {
		t.Errorf("expected day mode after toggle, got %+v", pref)
	}
}
