// Package rate converts cumulative OS counters into per-second rates.
package rate

import "time"

// counterState holds the previous observation for one counter.
type counterState struct {
	raw float64
	at  time.Time
}

// Engine computes per-second rates from successive raw counter readings.
//
// State is keyed by metric identifier, so enabling a subset of counters
// never disturbs the rate computation of the others. The engine is not
// safe for concurrent use; the pipeline is single-threaded by design.
type Engine struct {
	states map[string]counterState
}

// NewEngine creates an empty rate engine.
func NewEngine() *Engine {
	return &Engine{states: make(map[string]counterState)}
}

// Observe records a raw counter reading taken at the given time and returns
// the per-second rate since the previous reading.
//
// The first observation for an identifier stores a baseline and returns 0.
// A non-positive elapsed time returns 0 without updating state, so a clock
// anomaly is not compounded into later ticks. A negative delta (counter
// reset after reboot, or wraparound) is clamped to 0.
func (e *Engine) Observe(id string, raw float64, at time.Time) float64 {
	prev, ok := e.states[id]
	if !ok {
		e.states[id] = counterState{raw: raw, at: at}
		return 0.0
	}

	elapsed := at.Sub(prev.at).Seconds()
	if elapsed <= 0 {
		return 0.0
	}

	e.states[id] = counterState{raw: raw, at: at}
	rate := (raw - prev.raw) / elapsed
	if rate < 0 {
		return 0.0
	}
	return rate
}

// Tracked reports whether a baseline exists for the identifier.
func (e *Engine) Tracked(id string) bool {
	_, ok := e.states[id]
	return ok
}

// Reset drops all recorded baselines.
func (e *Engine) Reset() {
	e.states = make(map[string]counterState)
}
