package session

import "github.com/mr1hm/go-city-globe/internal/models"

type Mode string

const (
	ModeIdle            Mode = "idle"
	ModeSingleSelected  Mode = "single_selected"
	ModeCompareArmed    Mode = "compare_armed"
	ModeCompareResolved Mode = "compare_resolved"
)

// State is the single authoritative selection state. It is owned by the
// engine, mutated only under its lock, and read through Snapshot — there is
// no second synchronously-readable copy to drift from it.
type State struct {
	Mode               Mode                    `json:"mode"`
	Primary            *models.City            `json:"primary,omitempty"`
	Secondary          *models.City            `json:"secondary,omitempty"`
	ActiveComparison   *models.CityComparison  `json:"activeComparison,omitempty"`
	FallbackCompare    bool                    `json:"fallbackCompare"`
	PrimaryPanelOpen   bool                    `json:"primaryPanelOpen"`
	SecondaryPanelOpen bool                    `json:"secondaryPanelOpen"`
	ComparisonOpen     bool                    `json:"comparisonOpen"`
	Message            string                  `json:"message,omitempty"`
}
