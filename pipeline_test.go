package agent_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harborwatch/agent/internal/collector"
	"github.com/harborwatch/agent/internal/config"
	"github.com/harborwatch/agent/internal/rate"
	"github.com/harborwatch/agent/internal/scheduler"
	"github.com/harborwatch/agent/internal/sink"
	"github.com/harborwatch/agent/internal/transmitter"
)

// scriptedCollectors serves predefined raw values, advancing per tick.
type scriptedCollectors struct {
	values map[string]float64
	rated  map[string]bool
}

func (s *scriptedCollectors) Collect(id string) ([]collector.Reading, error) {
	return []collector.Reading{{Cargo: id, Value: s.values[id]}}, nil
}

func (s *scriptedCollectors) RateBased(id string) bool { return s.rated[id] }

// Two ticks through the full pipeline: assemble, transmit over HTTP with
// the API key, ingest into the sink, read the latest values back.
func TestPipelineAgentToSink(t *testing.T) {
	logger := zap.NewNop().Sugar()
	store := sink.NewMemStorage()
	server := httptest.NewServer(sink.Router(store, logger, "s3cret"))
	defer server.Close()

	cfg := &config.AgentConfig{
		Address:        server.URL + "/ingest",
		Key:            "s3cret",
		ReportInterval: 5,
		Metrics:        []string{"cpu_usage", "network_in"},
		ShipID:         "freighter-01",
	}

	collectors := &scriptedCollectors{
		values: map[string]float64{"cpu_usage": 25.0, "network_in": 1000},
		rated:  map[string]bool{"network_in": true},
	}
	sender := transmitter.New(cfg.Address, cfg.Key, logger)
	sched := scheduler.New(cfg, collectors, rate.NewEngine(), sender, logger)

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, sender.Send(sched.Assemble(t0)))

	first, err := store.Get("network_in")
	require.NoError(t, err)
	assert.Equal(t, 0.0, first.Value, "first tick carries the rate baseline")

	collectors.values["network_in"] = 2500
	require.NoError(t, sender.Send(sched.Assemble(t0.Add(5*time.Second))))

	second, err := store.Get("network_in")
	require.NoError(t, err)
	assert.InDelta(t, 300.0, second.Value, 1e-9)

	cpuSample, err := store.Get("cpu_usage")
	require.NoError(t, err)
	assert.Equal(t, 25.0, cpuSample.Value)
	assert.Equal(t, "freighter-01", cpuSample.ShipID)
	assert.True(t, cpuSample.Time.Equal(t0.Add(5*time.Second)))
}
