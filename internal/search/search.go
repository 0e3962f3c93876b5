// Package search implements the city/country matcher behind the search box.
package search

import (
	"sort"
	"strings"

	"github.com/mr1hm/go-city-globe/internal/models"
)

const maxResults = 8

type ResultType string

const (
	ResultTypeCity    ResultType = "city"
	ResultTypeCountry ResultType = "country"
)

type Result struct {
	City        models.City `json:"city"`
	Type        ResultType  `json:"type"`
	MatchedText string      `json:"matchedText"`
}

// Query runs a case-insensitive substring match over city and country names
// and returns up to 8 ranked results. A matching country contributes one
// result, carrying the first city encountered for it. Ranking: exact
// full-string matches first, then city matches before country matches, then
// alphabetical by matched text.
func Query(cities []models.City, q string) []Result {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}

	var results []Result
	seenCountries := make(map[string]bool)

	for _, city := range cities {
		if strings.Contains(strings.ToLower(city.Name), q) {
			results = append(results, Result{City: city, Type: ResultTypeCity, MatchedText: city.Name})
		}
		if strings.Contains(strings.ToLower(city.Country), q) && !seenCountries[city.Country] {
			seenCountries[city.Country] = true
			results = append(results, Result{City: city, Type: ResultTypeCountry, MatchedText: city.Country})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		iExact := strings.ToLower(results[i].MatchedText) == q
		jExact := strings.ToLower(results[j].MatchedText) == q
		if iExact != jExact {
			return iExact
		}
		if results[i].Type != results[j].Type {
			return results[i].Type == ResultTypeCity
		}
		return results[i].MatchedText < results[j].MatchedText
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
