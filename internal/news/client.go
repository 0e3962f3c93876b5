// Package news proxies the newsdata.io search endpoint, normalizing its
// article records and shielding the UI from provider failures.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mr1hm/go-city-globe/internal/countries"
	"github.com/mr1hm/go-city-globe/internal/models"
)

var (
	// ErrNoKeys means news is disabled: neither provider key is configured.
	ErrNoKeys = errors.New("no news API keys configured")
	// ErrProviderStatus is a well-formed provider reply with a non-success status.
	ErrProviderStatus = errors.New("news provider returned non-success status")
)

type Config struct {
	BaseURL  string
	Key1     string
	Key2     string
	PageSize int
	CacheTTL time.Duration
	Timeout  time.Duration
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://newsdata.io"
	}
	if c.PageSize <= 0 {
		c.PageSize = 3
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 60 * time.Minute
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
}

// DurableCache is the persistent cache layer. Nil disables it; corruption
// inside it surfaces as a miss.
type DurableCache interface {
	GetNews(ctx context.Context, key string, maxAge time.Duration) ([]models.Article, bool)
	PutNews(ctx context.Context, key string, articles []models.Article) error
}

type Client struct {
	cfg     Config
	http    *http.Client
	mem     *gocache.Cache
	durable DurableCache
}

func NewClient(cfg Config, durable DurableCache) *Client {
	cfg.applyDefaults()
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		mem:     gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		durable: durable,
	}
}

// Enabled reports whether at least one provider key is configured.
func (c *Client) Enabled() bool {
	return c.cfg.Key1 != "" || c.cfg.Key2 != ""
}

// provider response shapes (newsdata.io)

type providerResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Results      []providerResult `json:"results"`
}

type providerResult struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
	ImageURL    string `json:"image_url"`
	SourceID    string `json:"source_id"`
}

// Fetch returns local news for a city, trying the memory cache, the durable
// cache, then the provider with each key in order.
func (c *Client) Fetch(ctx context.Context, cityName, countryName string) ([]models.Article, error) {
	key := cacheKey(cityName, countryName)

	if cached, found := c.mem.Get(key); found {
		return cached.([]models.Article), nil
	}
	if c.durable != nil {
		if articles, ok := c.durable.GetNews(ctx, key, c.cfg.CacheTTL); ok {
			c.mem.Set(key, articles, gocache.DefaultExpiration)
			return articles, nil
		}
	}

	if !c.Enabled() {
		return nil, ErrNoKeys
	}

	reqURL := c.requestURL(cityName, countryName)

	var data *providerResponse
	var lastErr error
	for _, apiKey := range []string{c.cfg.Key1, c.cfg.Key2} {
		if apiKey == "" {
			continue
		}
		resp, err := c.tryRequest(ctx, reqURL, apiKey)
		if err != nil {
			lastErr = err
			continue
		}
		data = resp
		break
	}
	if data == nil {
		return nil, fmt.Errorf("all news API keys failed: %w", lastErr)
	}

	if data.Status != "success" {
		return nil, fmt.Errorf("%w: %s", ErrProviderStatus, data.Status)
	}

	articles := normalize(data.Results)

	c.mem.Set(key, articles, gocache.DefaultExpiration)
	if c.durable != nil {
		if err := c.durable.PutNews(ctx, key, articles); err != nil {
			slog.Warn("failed to persist news cache", "key", key, "error", err)
		}
	}

	return articles, nil
}

func (c *Client) requestURL(cityName, countryName string) string {
	code := countries.CodeOrDefault(countryName)
	return fmt.Sprintf("%s/api/1/latest?q=%s&country=%s&size=%d",
		c.cfg.BaseURL, url.QueryEscape(cityName), url.QueryEscape(code), c.cfg.PageSize)
}

func (c *Client) tryRequest(ctx context.Context, reqURL, apiKey string) (*providerResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL+"&apikey="+url.QueryEscape(apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", "city-globe/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code: %d - body: %s", resp.StatusCode, body)
	}

	var data providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}
	return &data, nil
}

// normalize maps provider records to the uniform article shape, dropping
// entries without a title or link and the provider's "[Removed]" stubs.
func normalize(results []providerResult) []models.Article {
	articles := make([]models.Article, 0, len(results))
	for _, r := range results {
		if r.Title == "" || r.Link == "" || strings.Contains(r.Title, "[Removed]") {
			continue
		}
		articles = append(articles, models.Article{
			Title:       r.Title,
			Description: r.Description,
			URL:         r.Link,
			Image:       r.ImageURL,
			PublishedAt: r.PubDate,
			SourceName:  r.SourceID,
		})
	}
	return articles
}

func cacheKey(cityName, countryName string) string {
	return strings.ToLower(cityName) + "-" + strings.ToLower(countryName)
}
