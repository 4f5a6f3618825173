package sink

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	internalerrors "github.com/harborwatch/agent/internal/errors"
	models "github.com/harborwatch/agent/internal/model"
)

// Router builds the sink HTTP surface: batch ingest plus read-back of the
// latest sample per metric.
func Router(store *MemStorage, logger *zap.SugaredLogger, key string) chi.Router {
	router := chi.NewRouter()
	router.Use(LoggingMiddleware(logger))
	router.Use(GzipMiddleware)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(15 * time.Second))

	router.Group(func(r chi.Router) {
		r.Use(APIKeyMiddleware(key))
		r.Post("/ingest", func(w http.ResponseWriter, r *http.Request) {
			IngestHandler(w, r, store, logger)
		})
	})
	router.Get("/samples", func(w http.ResponseWriter, r *http.Request) {
		ListHandler(w, r, store)
	})
	router.Get("/sample", func(w http.ResponseWriter, r *http.Request) {
		GetHandler(w, r, store)
	})
	router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return router
}

// IngestHandler accepts one agent batch and stores the latest value per
// metric. Gzip-compressed request bodies are supported.
func IngestHandler(w http.ResponseWriter, r *http.Request, store *MemStorage, logger *zap.SugaredLogger) {
	var reader io.Reader = r.Body

	if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
		gzipReader, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, "Failed to create gzip reader: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	var batch models.Batch
	if err := json.NewDecoder(reader).Decode(&batch); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	store.SetBatch(batch)
	logger.Debugw("batch ingested", "samples", len(batch))
	w.WriteHeader(http.StatusOK)
}

// ListHandler returns every stored sample ordered by cargo identifier.
func ListHandler(w http.ResponseWriter, r *http.Request, store *MemStorage) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(store.List()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetHandler returns the latest sample for the cargo identifier given in
// the "cargo" query parameter. The identifier is a query parameter rather
// than a path segment because fan-out identifiers carry mountpoints.
func GetHandler(w http.ResponseWriter, r *http.Request, store *MemStorage) {
	cargoID := r.URL.Query().Get("cargo")
	if cargoID == "" {
		http.Error(w, "missing cargo parameter", http.StatusBadRequest)
		return
	}
	sample, err := store.Get(cargoID)
	if err != nil {
		if errors.Is(err, internalerrors.ErrMetricNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sample); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
