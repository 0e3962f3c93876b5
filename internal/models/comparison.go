package models

// CityComparison pairs two city ids with jointly authored narrative text.
// The Cities slice is stored in authoring order; lookups treat the pair as
// unordered.
type CityComparison struct {
	Cities              []string `json:"cities"`
	Overview            string   `json:"overview"`
	PopulationDiversity string   `json:"population_diversity"`
	CultureLifestyle    string   `json:"culture_lifestyle"`
	HistoryResilience   string   `json:"history_resilience"`
	ModernLifeEconomy   string   `json:"modern_life_and_economy"`
	LifeInCity          string   `json:"life_in_city"`
}

// Matches reports whether the record covers the unordered pair {a, b}.
func (c *CityComparison) Matches(a, b string) bool {
	if len(c.Cities) != 2 {
		return false
	}
	return (c.Cities[0] == a && c.Cities[1] == b) || (c.Cities[0] == b && c.Cities[1] == a)
}
