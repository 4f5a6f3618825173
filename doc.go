// Package agent implements a lightweight host telemetry agent.
//
// The agent periodically samples operating-system counters (CPU, memory,
// disk, network, process and kernel counters) and delivers them as
// timestamped records to a remote telemetry endpoint.
//
// Monotonically increasing counters (network bytes, disk operations,
// context switches, interrupts) are converted into per-second rates using
// elapsed wall-clock deltas. Instantaneous gauges are reported as-is.
// Each sampling tick produces one ordered batch, transmitted as a single
// JSON payload over HTTP.
//
// Features:
//   - Closed set of metric identifiers resolved to collectors at startup
//   - Per-counter rate computation with baseline handling
//   - At-most-once batch delivery (no retry, no local queue)
//   - One-shot self-test mode that validates every enabled collector
//   - Structured logging
//   - Graceful shutdown handling
//
// The repository also ships a small development sink server that receives
// agent batches and serves the latest value per metric.
//
// Both agent and sink support configuration via command-line flags,
// environment variables and an optional YAML file.
package agent
