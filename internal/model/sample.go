// Package models defines the data structures shared by the agent pipeline.
package models

import (
	"encoding/json"
	"math"
	"time"
)

// WireTimeLayout is the timestamp layout used on the wire: UTC with
// millisecond precision and a trailing Z.
const WireTimeLayout = "2006-01-02T15:04:05.000Z"

// Sample represents one reading of one metric at one tick.
//
// A Sample is immutable once constructed and owned by the tick that
// produced it until it is handed to the transmitter.
type Sample struct {
	// Time is the tick timestamp shared by every sample in a batch
	Time time.Time

	// ShipID is the host identifier
	ShipID string

	// CargoID is the metric identifier
	CargoID string

	// Value is the sampled value (gauge reading or per-second rate)
	Value float64
}

// wireSample is the JSON form of a Sample.
type wireSample struct {
	Time    string  `json:"time"`
	ShipID  string  `json:"ship_id"`
	CargoID string  `json:"cargo_id"`
	Value   float64 `json:"value"`
}

// MarshalJSON serializes the sample in the wire format. Non-finite values
// are coerced to 0.0 so the payload always carries an unquoted number.
func (s Sample) MarshalJSON() ([]byte, error) {
	value := s.Value
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0.0
	}
	return json.Marshal(wireSample{
		Time:    s.Time.UTC().Format(WireTimeLayout),
		ShipID:  s.ShipID,
		CargoID: s.CargoID,
		Value:   value,
	})
}

// UnmarshalJSON parses the wire form back into a Sample.
func (s *Sample) UnmarshalJSON(data []byte) error {
	var w wireSample
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	parsed, err := time.Parse(WireTimeLayout, w.Time)
	if err != nil {
		return err
	}
	s.Time = parsed
	s.ShipID = w.ShipID
	s.CargoID = w.CargoID
	s.Value = w.Value
	return nil
}

// Batch is the ordered collection of samples produced by one tick.
//
// A batch is transient: it exists only between assembly and transmission
// and is serialized as a single JSON array, so delivery is all-or-nothing.
type Batch []Sample
