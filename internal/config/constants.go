// Package config provides startup configuration for the agent and the
// development sink server.
package config

// AllowedIntervals lists the sampling intervals, in seconds, the agent
// accepts.
var AllowedIntervals = []int{1, 5, 30, 60, 300}

const (
	// DefaultReportInterval is the sampling interval used when none is
	// configured.
	DefaultReportInterval = 60

	// DefaultAddress is the default telemetry endpoint URL.
	DefaultAddress = "http://localhost:8080/ingest"

	// DefaultSinkAddress is the default listen address of the sink server.
	DefaultSinkAddress = "localhost:8080"

	// APIKeyHeader carries the configured credential on every request.
	APIKeyHeader = "X-Api-Key"
)
