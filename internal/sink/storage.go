// Package sink implements a small development receiver for agent batches.
//
// It validates the API key, keeps the latest sample per metric identifier
// in memory and serves them back over HTTP. It is a deployment-validation
// tool, not a historical store: every new batch overwrites the previous
// values.
package sink

import (
	"sort"
	"sync"

	internalerrors "github.com/harborwatch/agent/internal/errors"
	models "github.com/harborwatch/agent/internal/model"
)

// MemStorage keeps the latest sample per cargo identifier.
type MemStorage struct {
	// mu provides thread-safe access to the samples map
	mu sync.RWMutex

	// samples stores the latest sample keyed by cargo_id
	samples map[string]models.Sample
}

// NewMemStorage creates an empty in-memory store.
func NewMemStorage() *MemStorage {
	return &MemStorage{samples: make(map[string]models.Sample)}
}

// SetBatch overwrites the stored sample of every metric in the batch.
func (ms *MemStorage) SetBatch(batch models.Batch) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, sample := range batch {
		ms.samples[sample.CargoID] = sample
	}
}

// Get returns the latest sample for one cargo identifier.
func (ms *MemStorage) Get(cargoID string) (models.Sample, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	sample, ok := ms.samples[cargoID]
	if !ok {
		return models.Sample{}, internalerrors.ErrMetricNotFound
	}
	return sample, nil
}

// List returns all stored samples ordered by cargo identifier.
func (ms *MemStorage) List() []models.Sample {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	result := make([]models.Sample, 0, len(ms.samples))
	for _, sample := range ms.samples {
		result = append(result, sample)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CargoID < result[j].CargoID
	})
	return result
}
