// Package session implements the city-selection state machine. One engine
// per connected client; events arrive over HTTP, effects leave as commands
// on the shared broadcaster.
package session

import (
	"sync"
	"time"

	"github.com/mr1hm/go-city-globe/internal/catalog"
	"github.com/mr1hm/go-city-globe/internal/models"
)

type Options struct {
	// ZoomDuration is the camera animation length for a single selection.
	ZoomDuration time.Duration
	// RevealBuffer is added on top of ZoomDuration before the panel opens.
	RevealBuffer time.Duration
	// CompareRevealDelay schedules the second panel and comparison modal so
	// they land together with the camera animation to the second city.
	CompareRevealDelay time.Duration
	// MessageTTL auto-dismisses the floating message.
	MessageTTL time.Duration
	// ZoomAltitude is the camera altitude passed to pointOfView.
	ZoomAltitude float64
	// ViewportWidth is reported by the client at session creation. Below
	// CompareBreakpoint only one panel fits, so arming compare hides the
	// primary panel.
	ViewportWidth     int
	CompareBreakpoint int
}

func DefaultOptions() Options {
	return Options{
		ZoomDuration:       1000 * time.Millisecond,
		RevealBuffer:       100 * time.Millisecond,
		CompareRevealDelay: 1200 * time.Millisecond,
		MessageTTL:         3000 * time.Millisecond,
		ZoomAltitude:       2,
		ViewportWidth:      1280,
		CompareBreakpoint:  1024,
	}
}

type Engine struct {
	id   string
	opts Options
	repo catalog.CityRepository
	sink Sink

	mu     sync.Mutex
	state  State
	gen    uint64
	timers []*time.Timer
}

func NewEngine(id string, repo catalog.CityRepository, sink Sink, opts Options) *Engine {
	if opts.ZoomDuration <= 0 {
		opts = DefaultOptions()
	}
	return &Engine{
		id:    id,
		opts:  opts,
		repo:  repo,
		sink:  sink,
		state: State{Mode: ModeIdle},
	}
}

func (e *Engine) ID() string { return e.id }

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Activate handles a city click or a search selection.
func (e *Engine) Activate(city *models.City) {
	if city == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Mode == ModeCompareArmed && e.state.Primary != nil {
		if city.ID == e.state.Primary.ID {
			// Same city picked twice: message only, mode and primary stay.
			e.showMessageLocked("Please select a different city to compare")
			return
		}
		e.resolveCompareLocked(city)
		return
	}

	e.selectSingleLocked(city)
}

// RequestCompare arms compare mode with the given city as the first of the
// pair. A request without a city is ignored; the control should not be
// reachable without one, but a stray event must not corrupt state.
func (e *Engine) RequestCompare(city *models.City) {
	if city == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.bumpGenLocked()
	e.state.Mode = ModeCompareArmed
	e.state.Primary = city
	e.state.Secondary = nil
	e.state.ActiveComparison = nil
	e.state.FallbackCompare = false

	if e.opts.ViewportWidth < e.opts.CompareBreakpoint && e.state.PrimaryPanelOpen {
		e.state.PrimaryPanelOpen = false
		e.publish(Command{Type: CommandHidePanel, Slot: SlotPrimary})
	}

	e.showMessageLocked("Select another city to compare with " + city.Name)
}

// ClosePanel resets to idle from any state. Closing mid-compare abandons
// the armed pair entirely.
func (e *Engine) ClosePanel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

// CloseComparison is the modal's close control; same full reset.
func (e *Engine) CloseComparison() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

// Shutdown cancels pending timers. Called when the session is evicted.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bumpGenLocked()
}

func (e *Engine) selectSingleLocked(city *models.City) {
	e.bumpGenLocked()

	// Close whatever is visible before the camera moves.
	if e.state.PrimaryPanelOpen || e.state.SecondaryPanelOpen || e.state.ComparisonOpen {
		e.publish(Command{Type: CommandCloseAll})
	}
	e.clearMessageLocked()

	e.state = State{Mode: ModeSingleSelected, Primary: city}

	e.publishZoom(city, e.opts.ZoomDuration)

	e.scheduleLocked(e.opts.ZoomDuration+e.opts.RevealBuffer, func() {
		e.state.PrimaryPanelOpen = true
		e.publish(Command{Type: CommandRevealPanel, Slot: SlotPrimary, CityID: city.ID})
	})
}

func (e *Engine) resolveCompareLocked(city *models.City) {
	e.bumpGenLocked()

	primary := e.state.Primary
	e.state.Mode = ModeCompareResolved
	e.state.Secondary = city
	e.clearMessageLocked()

	cmp, ok := e.repo.ComparisonFor(primary.ID, city.ID)
	e.state.ActiveComparison = cmp
	e.state.FallbackCompare = !ok

	e.publishZoom(city, e.opts.ZoomDuration)

	fallback := !ok
	e.scheduleLocked(e.opts.CompareRevealDelay, func() {
		e.state.SecondaryPanelOpen = true
		e.state.ComparisonOpen = true
		e.publish(Command{Type: CommandRevealPanel, Slot: SlotSecondary, CityID: city.ID})
		e.publish(Command{Type: CommandRevealComparison, Fallback: fallback, CityID: city.ID})
	})
}

func (e *Engine) resetLocked() {
	e.bumpGenLocked()

	if e.state.Message != "" {
		e.publish(Command{Type: CommandDismissMessage})
	}
	e.state = State{Mode: ModeIdle}
	e.publish(Command{Type: CommandCloseAll})
}

func (e *Engine) showMessageLocked(text string) {
	e.state.Message = text
	e.publish(Command{Type: CommandMessage, Message: text})

	gen := e.gen
	timer := time.AfterFunc(e.opts.MessageTTL, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.gen != gen || e.state.Message != text {
			return
		}
		e.clearMessageLocked()
	})
	e.timers = append(e.timers, timer)
}

func (e *Engine) clearMessageLocked() {
	if e.state.Message == "" {
		return
	}
	e.state.Message = ""
	e.publish(Command{Type: CommandDismissMessage})
}

// scheduleLocked runs fn later, stamped with the current generation. Any
// transition in between makes it a no-op, so a stale reveal can never open
// a panel over newer state.
func (e *Engine) scheduleLocked(d time.Duration, fn func()) {
	gen := e.gen
	timer := time.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.gen != gen {
			return
		}
		fn()
	})
	e.timers = append(e.timers, timer)
}

func (e *Engine) bumpGenLocked() {
	e.gen++
	for _, t := range e.timers {
		t.Stop()
	}
	e.timers = e.timers[:0]
}

func (e *Engine) publishZoom(city *models.City, d time.Duration) {
	coords, err := city.Coordinates()
	if err != nil {
		// Corpus records with unparseable coordinates still open a panel;
		// the camera just stays put.
		return
	}
	e.publish(Command{
		Type:      CommandZoom,
		CityID:    city.ID,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
		Altitude:  e.opts.ZoomAltitude,
		Duration:  durationMs(d),
	})
}

func (e *Engine) publish(cmd Command) {
	if e.sink == nil {
		return
	}
	cmd.SessionID = e.id
	e.sink.Publish(cmd)
}
