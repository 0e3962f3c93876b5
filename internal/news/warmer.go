package news

import (
	"context"
	"log/slog"

	"github.com/mr1hm/go-city-globe/internal/catalog"
	"github.com/mr1hm/go-city-globe/internal/models"
	"github.com/mr1hm/go-city-globe/internal/worker"
)

// Warmer pre-populates the news cache for the whole catalog so first panel
// opens hit warm entries. Gated behind config; each city costs a provider
// request when its cache entry is cold.
type Warmer struct {
	client *Client
	repo   catalog.CityRepository
	pool   *worker.Pool
}

func NewWarmer(client *Client, repo catalog.CityRepository, workers, bufferSize int) *Warmer {
	return &Warmer{
		client: client,
		repo:   repo,
		pool:   worker.NewPool(workers, bufferSize, processorFor(client)),
	}
}

func processorFor(client *Client) worker.ProcessFunc {
	return func(ctx context.Context, task worker.Task) error {
		city := task.(*models.City)
		articles, err := client.Fetch(ctx, city.Name, city.Country)
		if err != nil {
			slog.Warn("news warmup failed", "city", city.ID, "error", err)
			return err
		}
		slog.Debug("news warmed", "city", city.ID, "articles", len(articles))
		return nil
	}
}

// Run submits every catalog city and blocks until the pool drains.
func (w *Warmer) Run(ctx context.Context) {
	if !w.client.Enabled() {
		slog.Info("news warmup skipped, no API keys configured")
		return
	}

	w.pool.Start(ctx)

	cities := w.repo.Cities()
	for i := range cities {
		select {
		case <-ctx.Done():
			w.pool.Stop()
			return
		default:
		}
		w.pool.Submit(&cities[i])
	}

	w.pool.Stop()
	slog.Info("news warmup complete", "cities", len(cities))
}
