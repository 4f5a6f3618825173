package rate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFirstReadingIsBaseline(t *testing.T) {
	engine := NewEngine()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := engine.Observe("network_in", 1000, t0)

	assert.Equal(t, 0.0, got)
	assert.True(t, engine.Tracked("network_in"))
}

func TestObserveComputesPerSecondRate(t *testing.T) {
	engine := NewEngine()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	engine.Observe("network_in", 1000, t0)
	got := engine.Observe("network_in", 2500, t0.Add(5*time.Second))

	assert.InDelta(t, 300.0, got, 1e-9)
}

func TestObserveNonMonotonicClockLeavesStateUntouched(t *testing.T) {
	engine := NewEngine()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	engine.Observe("disk_io", 100, t0)

	// Clock goes backwards: emit zero, keep the old baseline.
	got := engine.Observe("disk_io", 500, t0.Add(-time.Second))
	require.Equal(t, 0.0, got)

	got = engine.Observe("disk_io", 500, t0)
	require.Equal(t, 0.0, got)

	// Third observation proves the t0 baseline survived both anomalies.
	got = engine.Observe("disk_io", 300, t0.Add(10*time.Second))
	assert.InDelta(t, 20.0, got, 1e-9)
}

func TestObserveClampsNegativeRates(t *testing.T) {
	engine := NewEngine()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	engine.Observe("interrupts", 100000, t0)

	// Counter reset, e.g. after a reboot.
	got := engine.Observe("interrupts", 50, t0.Add(time.Minute))
	assert.Equal(t, 0.0, got)

	// The reset value became the new baseline.
	got = engine.Observe("interrupts", 650, t0.Add(2*time.Minute))
	assert.InDelta(t, 10.0, got, 1e-9)
}

func TestObserveKeysAreIndependent(t *testing.T) {
	engine := NewEngine()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(10 * time.Second)

	engine.Observe("network_in", 0, t0)
	engine.Observe("network_out", 5000, t0)

	in := engine.Observe("network_in", 100, t1)
	out := engine.Observe("network_out", 5500, t1)

	assert.InDelta(t, 10.0, in, 1e-9)
	assert.InDelta(t, 50.0, out, 1e-9)
	assert.False(t, engine.Tracked("context_switches"))
}

func TestResetDropsBaselines(t *testing.T) {
	engine := NewEngine()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	engine.Observe("network_in", 1000, t0)
	engine.Reset()

	assert.False(t, engine.Tracked("network_in"))
	got := engine.Observe("network_in", 2000, t0.Add(time.Second))
	assert.Equal(t, 0.0, got)
}
