// Package catalog holds the read-only city and comparison corpus. The two
// JSON files are authored offline; the catalog loads them once at startup
// and serves lookups from memory.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/mr1hm/go-city-globe/internal/countries"
	"github.com/mr1hm/go-city-globe/internal/models"
)

// CityRepository is the read surface the rest of the service depends on.
type CityRepository interface {
	Cities() []models.City
	CityByID(id string) (*models.City, bool)
	ComparisonFor(a, b string) (*models.CityComparison, bool)
}

type Catalog struct {
	cities      []models.City
	byID        map[string]*models.City
	comparisons []models.CityComparison
}

// Load reads both data files. A missing or malformed file is logged and
// yields an empty section; the service keeps running with whatever loaded.
func Load(citiesPath, comparisonsPath string) *Catalog {
	c := &Catalog{byID: make(map[string]*models.City)}

	if err := c.loadCities(citiesPath); err != nil {
		slog.Error("failed to load cities, continuing with empty catalog", "path", citiesPath, "error", err)
	}
	if err := c.loadComparisons(comparisonsPath); err != nil {
		slog.Error("failed to load comparisons, continuing without them", "path", comparisonsPath, "error", err)
	}

	slog.Info("catalog loaded", "cities", len(c.cities), "comparisons", len(c.comparisons))
	return c
}

func (c *Catalog) loadCities(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading cities file: %w", err)
	}

	var cities []models.City
	if err := json.Unmarshal(data, &cities); err != nil {
		return fmt.Errorf("error decoding cities file: %w", err)
	}

	c.cities = cities
	for i := range c.cities {
		city := &c.cities[i]
		if city.Flag == "" {
			city.Flag = countries.Flag(city.Country)
		}
		if _, dup := c.byID[city.ID]; dup {
			slog.Warn("duplicate city id, keeping first record", "id", city.ID)
			continue
		}
		c.byID[city.ID] = city
	}
	return nil
}

func (c *Catalog) loadComparisons(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading comparisons file: %w", err)
	}

	var comparisons []models.CityComparison
	if err := json.Unmarshal(data, &comparisons); err != nil {
		return fmt.Errorf("error decoding comparisons file: %w", err)
	}

	// The offline generator dedupes by sorted pair key, but the file is not
	// trusted to uphold that. Duplicates are logged and the first record for
	// a pair wins on lookup.
	seen := make(map[string]bool, len(comparisons))
	for _, cmp := range comparisons {
		if len(cmp.Cities) != 2 {
			slog.Warn("comparison record without exactly two cities, skipping", "cities", cmp.Cities)
			continue
		}
		key := pairKey(cmp.Cities[0], cmp.Cities[1])
		if seen[key] {
			slog.Warn("duplicate comparison record for pair, first match wins", "pair", key)
		}
		seen[key] = true
		c.comparisons = append(c.comparisons, cmp)
	}
	return nil
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// Cities returns the full corpus in file order.
func (c *Catalog) Cities() []models.City {
	return c.cities
}

func (c *Catalog) CityByID(id string) (*models.City, bool) {
	city, ok := c.byID[id]
	return city, ok
}

// ComparisonFor looks up the authored record covering the unordered pair
// {a, b}. First match wins when the file contains duplicates.
func (c *Catalog) ComparisonFor(a, b string) (*models.CityComparison, bool) {
	for i := range c.comparisons {
		if c.comparisons[i].Matches(a, b) {
			return &c.comparisons[i], true
		}
	}
	return nil, false
}

// Countries returns the distinct country names present in the corpus,
// sorted.
func (c *Catalog) Countries() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range c.cities {
		name := strings.TrimSpace(c.cities[i].Country)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
