package news

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/mr1hm/go-city-globe/internal/models"
)

type staticRepo struct {
	cities []models.City
}

func (r *staticRepo) Cities() []models.City { return r.cities }

func (r *staticRepo) CityByID(id string) (*models.City, bool) {
	for i := range r.cities {
		if r.cities[i].ID == id {
			return &r.cities[i], true
		}
	}
	return nil, false
}

func (r *staticRepo) ComparisonFor(a, b string) (*models.CityComparison, bool) {
	return nil, false
}

func TestWarmer_FetchesEveryCity(t *testing.T) {
	var mu sync.Mutex
	queried := make(map[string]bool)

	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queried[r.URL.Query().Get("q")] = true
		mu.Unlock()
		fmt.Fprint(w, `{"status": "success", "results": []}`)
	})

	repo := &staticRepo{cities: []models.City{
		{ID: "paris", Name: "Paris", Country: "France"},
		{ID: "tokyo", Name: "Tokyo", Country: "Japan"},
		{ID: "lyon", Name: "Lyon", Country: "France"},
	}}

	client := NewClient(Config{BaseURL: srv.URL, Key1: "k1"}, nil)
	warmer := NewWarmer(client, repo, 2, 10)

	warmer.Run(context.Background())

	mu.Lock()
	defer mu.Unlock()
	for _, name := range []string{"Paris", "Tokyo", "Lyon"} {
		if !queried[name] {
			t.Errorf("expected warmup query for %s", name)
		}
	}
}

func TestWarmer_SkipsWhenDisabled(t *testing.T) {
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called without keys")
	})

	repo := &staticRepo{cities: []models.City{{ID: "paris", Name: "Paris", Country: "France"}}}
	client := NewClient(Config{BaseURL: srv.URL}, nil)

	NewWarmer(client, repo, 2, 10).Run(context.Background())
}
