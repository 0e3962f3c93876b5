package models

import (
	"fmt"
	"strconv"
)

// City is a single record from the cities data file. The corpus is authored
// offline; records are immutable at runtime. Lat/Lng are decimal-degree
// strings as they appear in the data file.
type City struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Country             string       `json:"country"`
	Flag                string       `json:"flag"`
	Lat                 string       `json:"lat"`
	Lng                 string       `json:"lng"`
	Images              []string     `json:"images"`
	Timezones           []string     `json:"timezones"`
	Currency            Currency     `json:"currency"`
	CitySize            string       `json:"city_size"`
	PopulationSize      string       `json:"population_size"`
	PopulationDiversity string       `json:"population_diversity"`
	Languages           []string     `json:"languages"`
	Religions           []string     `json:"religions"`
	Culture             Culture      `json:"culture"`
	TraditionalFoods    []FoodDrink  `json:"traditional_foods"`
	TraditionalDrinks   []FoodDrink  `json:"traditional_drinks"`
	History             string       `json:"history"`
	AdversityResilience string       `json:"adversity_resilience"`
	FamousPeople        []Person     `json:"famous_people"`
	EconomyIndustry     string       `json:"economy_industry"`
	TourismAttractions  string       `json:"tourism_attractions"`
	Landmarks           []Landmark   `json:"landmarks"`
	SisterCities        []string     `json:"sister_cities"`
	LifeIn              LifeIn       `json:"life_in"`
	FunFact             string       `json:"fun_fact"`
}

type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type Culture struct {
	TraditionalArts     string `json:"traditional_arts"`
	TraditionalMusic    string `json:"traditional_music"`
	TraditionalClothing string `json:"traditional_clothing"`
	TraditionalBeliefs  string `json:"traditional_beliefs"`
}

type FoodDrink struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type Person struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type Landmark struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type LifeIn struct {
	CostOfLiving  string `json:"cost_of_living"`
	QualityOfLife string `json:"quality_of_life"`
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Coordinates parses the record's lat/lng strings.
func (c *City) Coordinates() (Coordinates, error) {
	lat, err := strconv.ParseFloat(c.Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("city %s: bad lat %q: %w", c.ID, c.Lat, err)
	}
	lng, err := strconv.ParseFloat(c.Lng, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("city %s: bad lng %q: %w", c.ID, c.Lng, err)
	}
	return Coordinates{Latitude: lat, Longitude: lng}, nil
}
