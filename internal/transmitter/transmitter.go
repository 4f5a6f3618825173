// Package transmitter delivers assembled batches to the telemetry
// endpoint.
//
// Delivery is at-most-once and fire-and-forget: one POST per batch, no
// retry, no backpressure, no queue of unsent batches. The source of truth
// is the live host state, so a dropped batch is cheaper than a stalled
// pipeline.
package transmitter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/harborwatch/agent/internal/config"
	internalerrors "github.com/harborwatch/agent/internal/errors"
	models "github.com/harborwatch/agent/internal/model"
)

// requestTimeout bounds one delivery attempt so a hung network call cannot
// stall subsequent ticks. Deliberately independent of the sampling interval.
const requestTimeout = 10 * time.Second

// HTTPTransmitter posts batches as JSON arrays to a fixed endpoint.
type HTTPTransmitter struct {
	client   *http.Client
	endpoint string
	key      string
	logger   *zap.SugaredLogger
}

// New creates a transmitter for the given endpoint and credential.
func New(endpoint, key string, logger *zap.SugaredLogger) *HTTPTransmitter {
	return &HTTPTransmitter{
		client:   &http.Client{Timeout: requestTimeout},
		endpoint: endpoint,
		key:      key,
		logger:   logger,
	}
}

// Send serializes the batch and issues a single delivery attempt.
// HTTP 200 is success; any other status or transport error is a failure.
// Failed batches are logged and dropped.
func (t *HTTPTransmitter) Send(batch models.Batch) error {
	jsonData, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("error creating json: %w", err)
	}

	request, err := http.NewRequest(http.MethodPost, t.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request for %s: %w", t.endpoint, err)
	}
	request.Header.Set("Content-Type", "application/json")
	if t.key != "" {
		request.Header.Set(config.APIKeyHeader, t.key)
	}

	response, err := t.client.Do(request)
	if err != nil {
		t.logger.Errorw("batch delivery failed", "endpoint", t.endpoint, "error", err)
		return fmt.Errorf("%w: %w", internalerrors.ErrTransmissionFailed, err)
	}

	body, err := io.ReadAll(response.Body)
	response.Body.Close()
	if err != nil {
		t.logger.Errorw("error reading response body", "endpoint", t.endpoint, "error", err)
		return fmt.Errorf("%w: reading response: %w", internalerrors.ErrTransmissionFailed, err)
	}

	if response.StatusCode != http.StatusOK {
		t.logger.Errorw("batch rejected",
			"endpoint", t.endpoint,
			"status", response.StatusCode,
			"body", string(body),
		)
		return fmt.Errorf("%w: status %d: %s", internalerrors.ErrTransmissionFailed, response.StatusCode, string(body))
	}
	return nil
}
