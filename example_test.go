package agent_test

import (
	"fmt"
	"time"

	models "github.com/harborwatch/agent/internal/model"
	"github.com/harborwatch/agent/internal/sink"
)

// Example of how the sink keeps the latest sample per metric
func Example_sinkStorage() {
	store := sink.NewMemStorage()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.SetBatch(models.Batch{
		{Time: at, ShipID: "freighter-01", CargoID: "cpu_usage", Value: 12.5},
		{Time: at, ShipID: "freighter-01", CargoID: "ram_usage", Value: 40.0},
	})

	// A later batch overwrites the previous value.
	store.SetBatch(models.Batch{
		{Time: at.Add(5 * time.Second), ShipID: "freighter-01", CargoID: "cpu_usage", Value: 15.0},
	})

	sample, err := store.Get("cpu_usage")
	if err != nil {
		fmt.Printf("Error getting sample: %v\n", err)
		return
	}

	fmt.Printf("cpu_usage: %.1f\n", sample.Value)
	// Output: cpu_usage: 15.0
}

// Example of the wire-format sample
func Example_wireSample() {
	sample := models.Sample{
		Time:    time.Date(2025, 6, 1, 12, 30, 45, 123_000_000, time.UTC),
		ShipID:  "freighter-01",
		CargoID: "network_in",
		Value:   300.0,
	}

	fmt.Printf("%s %s = %.1f at %s\n", sample.ShipID, sample.CargoID, sample.Value,
		sample.Time.Format(models.WireTimeLayout))
	// Output: freighter-01 network_in = 300.0 at 2025-06-01T12:30:45.123Z
}
