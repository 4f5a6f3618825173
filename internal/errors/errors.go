package errors

import "errors"

var (
	// Collection errors
	ErrCollectionFailed = errors.New("collection failed")
	ErrUnknownMetric    = errors.New("unknown metric")
	ErrSourceMissing    = errors.New("data source missing")

	// Delivery errors
	ErrTransmissionFailed = errors.New("transmission failed")

	// Sink errors
	ErrMetricNotFound = errors.New("metric not found")

	// Configuration errors
	ErrInvalidInterval = errors.New("invalid sampling interval")
)
