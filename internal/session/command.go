package session

import "time"

// CommandType names the side effects the engine asks the client to perform.
type CommandType string

const (
	// CommandZoom animates the globe camera to a city. Published once per
	// activation; consuming it is the whole effect, nothing is retained.
	CommandZoom CommandType = "zoom"
	// CommandRevealPanel opens a city detail panel after the camera settles.
	CommandRevealPanel CommandType = "reveal_panel"
	// CommandRevealComparison opens the comparison modal, or the generic
	// two-column view when Fallback is set.
	CommandRevealComparison CommandType = "reveal_comparison"
	// CommandHidePanel closes a single panel slot.
	CommandHidePanel CommandType = "hide_panel"
	// CommandCloseAll closes every panel and modal.
	CommandCloseAll CommandType = "close_all"
	// CommandMessage shows the transient floating message.
	CommandMessage CommandType = "message"
	// CommandDismissMessage hides the floating message.
	CommandDismissMessage CommandType = "dismiss_message"
)

type PanelSlot string

const (
	SlotPrimary   PanelSlot = "primary"
	SlotSecondary PanelSlot = "secondary"
)

// Command is one instruction to the rendering client, streamed over the
// session's command feed.
type Command struct {
	SessionID string      `json:"sessionId"`
	Type      CommandType `json:"type"`
	CityID    string      `json:"cityId,omitempty"`
	Latitude  float64     `json:"lat,omitempty"`
	Longitude float64     `json:"lng,omitempty"`
	Altitude  float64     `json:"altitude,omitempty"`
	Duration  int64       `json:"durationMs,omitempty"`
	Slot      PanelSlot   `json:"slot,omitempty"`
	Fallback  bool        `json:"fallback,omitempty"`
	Message   string      `json:"message,omitempty"`
}

// Sink receives engine commands. Publish must not block; the broadcaster
// drops to slow subscribers.
type Sink interface {
	Publish(Command)
}

func durationMs(d time.Duration) int64 {
	return d.Milliseconds()
}
