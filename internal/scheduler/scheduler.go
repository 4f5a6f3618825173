// Package scheduler drives the sampling-and-delivery cycle.
//
// The whole pipeline runs strictly in-line in one goroutine: assemble the
// batch, transmit it, sleep for the configured interval, repeat. There is
// no drift correction; the effective period is interval plus collection and
// transmission time.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harborwatch/agent/internal/collector"
	"github.com/harborwatch/agent/internal/config"
	models "github.com/harborwatch/agent/internal/model"
	"github.com/harborwatch/agent/internal/rate"
)

// Collectors resolves metric identifiers to readings.
type Collectors interface {
	Collect(id string) ([]collector.Reading, error)
	RateBased(id string) bool
}

// Sender delivers one assembled batch.
type Sender interface {
	Send(batch models.Batch) error
}

// Scheduler owns the run loop and the per-tick batch assembly.
type Scheduler struct {
	collectors Collectors
	rates      *rate.Engine
	sender     Sender
	logger     *zap.SugaredLogger

	shipID   string
	metrics  []string
	interval time.Duration

	now func() time.Time
}

// New wires the pipeline together from the immutable agent configuration.
func New(
	cfg *config.AgentConfig,
	collectors Collectors,
	rates *rate.Engine,
	sender Sender,
	logger *zap.SugaredLogger,
) *Scheduler {
	return &Scheduler{
		collectors: collectors,
		rates:      rates,
		sender:     sender,
		logger:     logger,
		shipID:     cfg.ShipID,
		metrics:    cfg.Metrics,
		interval:   time.Duration(cfg.ReportInterval) * time.Second,
		now:        time.Now,
	}
}

// Assemble invokes every enabled collector in configuration order and
// produces the batch for one tick. All samples share the tick timestamp and
// the host identifier. A failing collector degrades to a 0.0 sample and
// never blocks the other metrics in the same tick.
func (s *Scheduler) Assemble(at time.Time) models.Batch {
	batch := make(models.Batch, 0, len(s.metrics))
	for _, id := range s.metrics {
		readings, err := s.collectors.Collect(id)
		if err != nil {
			s.logger.Warnw("collector degraded to zero", "metric", id, "error", err)
			readings = []collector.Reading{{Cargo: id, Value: 0.0}}
		} else if s.collectors.RateBased(id) {
			for i, reading := range readings {
				readings[i].Value = s.rates.Observe(reading.Cargo, reading.Value, at)
			}
		}
		for _, reading := range readings {
			batch = append(batch, models.Sample{
				Time:    at,
				ShipID:  s.shipID,
				CargoID: reading.Cargo,
				Value:   reading.Value,
			})
		}
	}
	return batch
}

// Run executes the infinite sampling loop until the context is canceled by
// the hosting process. Delivery failures are logged and the loop proceeds
// to the next tick; no error is fatal.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Infow("scheduler started",
		"interval", s.interval,
		"metrics", strings.Join(s.metrics, ","),
		"ship_id", s.shipID,
	)
	for {
		at := s.now().UTC()
		batch := s.Assemble(at)
		if err := s.sender.Send(batch); err != nil {
			s.logger.Errorw("tick delivery failed", "error", err)
		} else {
			s.logger.Debugw("batch delivered", "samples", len(batch))
		}

		select {
		case <-ctx.Done():
			s.logger.Infow("scheduler stopped")
			return
		case <-time.After(s.interval):
		}
	}
}

// SelfTest exercises every enabled collector once, writes a per-metric
// pass/fail report to w and returns an error if any collector failed. It
// never invokes the transmitter.
func (s *Scheduler) SelfTest(w io.Writer) error {
	var failed []string
	for _, id := range s.metrics {
		if _, err := s.collectors.Collect(id); err != nil {
			failed = append(failed, id)
			fmt.Fprintf(w, "%s: FAILED (%v)\n", id, err)
			continue
		}
		fmt.Fprintf(w, "%s: OK\n", id)
	}
	if len(failed) > 0 {
		return fmt.Errorf("self-test failed for %d of %d metrics: %s",
			len(failed), len(s.metrics), strings.Join(failed, ", "))
	}
	return nil
}
