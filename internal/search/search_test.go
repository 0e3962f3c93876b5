package search

import (
	"fmt"
	"testing"

	"github.com/mr1hm/go-city-globe/internal/models"
)

func testCities() []models.City {
	return []models.City{
		{ID: "paris", Name: "Paris", Country: "France"},
		{ID: "lyon", Name: "Lyon", Country: "France"},
		{ID: "tokyo", Name: "Tokyo", Country: "Japan"},
		{ID: "osaka", Name: "Osaka", Country: "Japan"},
		{ID: "frankfurt", Name: "Frankfurt", Country: "Germany"},
	}
}

func TestQuery_OneResultPerCountry(t *testing.T) {
	results := Query(testCities(), "fra")

	var countryResults []Result
	for _, r := range results {
		if r.Type == ResultTypeCountry {
			countryResults = append(countryResults, r)
		}
	}

	if len(countryResults) != 1 {
		t.Fatalf("expected 1 country result for France, got %d", len(countryResults))
	}
	// First city encountered for the country wins.
	if countryResults[0].City.ID != "paris" {
		t.Errorf("expected representative city paris, got %s", countryResults[0].City.ID)
	}
	if countryResults[0].MatchedText != "France" {
		t.Errorf("expected matched text France, got %s", countryResults[0].MatchedText)
	}
}

func TestQuery_ExactMatchRanksFirst(t *testing.T) {
	// "frankfurt" also substring-matches nothing else; use a case where a
	// country match competes with an exact city name.
	cities := append(testCities(), models.City{ID: "japan-town", Name: "Japan", Country: "United States"})

	results := Query(cities, "japan")
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].City.ID != "japan-town" || results[0].Type != ResultTypeCity {
		t.Errorf("expected exact city match first, got %s (%s)", results[0].City.ID, results[0].Type)
	}
}

func TestQuery_CitiesBeforeCountries(t *testing.T) {
	results := Query(testCities(), "fran")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Type != ResultTypeCity || results[0].City.ID != "frankfurt" {
		t.Errorf("expected Frankfurt city match first, got %+v", results[0])
	}
	if results[1].Type != ResultTypeCountry {
		t.Errorf("expected country match second, got %+v", results[1])
	}
}

func TestQuery_LimitsToEight(t *testing.T) {
	var cities []models.City
	for i := 0; i < 20; i++ {
		cities = append(cities, models.City{
			ID:      fmt.Sprintf("springfield-%d", i),
			Name:    fmt.Sprintf("Springfield %d", i),
			Country: fmt.Sprintf("Country %d", i),
		})
	}

	results := Query(cities, "springfield")
	if len(results) != 8 {
		t.Errorf("expected 8 results, got %d", len(results))
	}
}

func TestQuery_EmptyAndWhitespace(t *testing.T) {
	if results := Query(testCities(), ""); results != nil {
		t.Errorf("expected nil for empty query, got %v", results)
	}
	if results := Query(testCities(), "   "); results != nil {
		t.Errorf("expected nil for whitespace query, got %v", results)
	}
}

func TestQuery_CaseInsensitive(t *testing.T) {
	results := Query(testCities(), "TOKYO")
	if len(results) != 1 || results[0].City.ID != "tokyo" {
		t.Errorf("expected tokyo, got %v", results)
	}
}
