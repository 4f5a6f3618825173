// Package collector maps metric identifiers to functions reading one
// OS-exposed counter each.
//
// The identifier set is closed and resolved to concrete collectors once at
// registry construction, including capability probes for kernel
// pseudo-files, so no per-tick probing or string branching happens on the
// hot path. Structured sources (per-core CPU, per-partition disk, detailed
// RAM) fan out into one reading per sub-key using a dotted suffix on the
// metric identifier.
package collector

import (
	"fmt"
	"os"

	internalerrors "github.com/harborwatch/agent/internal/errors"
	models "github.com/harborwatch/agent/internal/model"
)

// Reading is one value produced by a collector. Most collectors return a
// single reading whose Cargo equals the metric identifier; fan-out
// collectors return one reading per sub-key.
type Reading struct {
	// Cargo is the metric identifier carried into the sample
	Cargo string

	// Value is the raw reading (cumulative counter or gauge)
	Value float64
}

// Func reads one OS data source and returns its readings. Raw values of
// rate-based metrics are cumulative; the scheduler feeds them through the
// rate engine.
type Func func() ([]Reading, error)

type entry struct {
	collect Func
	rated   bool
}

// Registry resolves metric identifiers to collectors.
type Registry struct {
	entries map[string]entry
}

// procPaths names the kernel pseudo-files some collectors read. Kept as a
// struct so tests can point collectors at synthetic files.
type procPaths struct {
	stat    string
	fileNr  string
	entropy string
}

func defaultProcPaths() procPaths {
	return procPaths{
		stat:    "/proc/stat",
		fileNr:  "/proc/sys/fs/file-nr",
		entropy: "/proc/sys/kernel/random/entropy_avail",
	}
}

// NewRegistry builds the full registry, probing pseudo-file availability
// once. Collectors whose source is missing are memoized as unavailable.
func NewRegistry() *Registry {
	return newRegistry(defaultProcPaths())
}

func newRegistry(paths procPaths) *Registry {
	r := &Registry{entries: make(map[string]entry)}

	r.gauge(models.CargoCPUUsage, single(models.CargoCPUUsage, collectCPUUsage))
	r.gauge(models.CargoCPUPerCore, collectCPUPerCore)
	r.gauge(models.CargoRAMUsage, single(models.CargoRAMUsage, collectRAMUsage))
	r.gauge(models.CargoRAMDetailed, collectRAMDetailed)
	r.gauge(models.CargoDiskUsage, single(models.CargoDiskUsage, collectDiskUsage))
	r.gauge(models.CargoDiskUsageParts, collectDiskUsageParts)
	r.gauge(models.CargoLoadAverage1m, single(models.CargoLoadAverage1m, loadAverage(0)))
	r.gauge(models.CargoLoadAverage5m, single(models.CargoLoadAverage5m, loadAverage(1)))
	r.gauge(models.CargoLoadAverage15m, single(models.CargoLoadAverage15m, loadAverage(2)))
	r.gauge(models.CargoProcesses, single(models.CargoProcesses, collectProcesses))
	r.gauge(models.CargoZombieProcesses, single(models.CargoZombieProcesses, collectZombieProcesses))
	r.gauge(models.CargoTemperature, single(models.CargoTemperature, collectTemperature))
	r.gauge(models.CargoUptime, single(models.CargoUptime, collectUptime))
	r.gauge(models.CargoSwapUsage, single(models.CargoSwapUsage, collectSwapUsage))
	r.gauge(models.CargoTCPConnections, single(models.CargoTCPConnections, connectionCount("tcp")))
	r.gauge(models.CargoUDPConnections, single(models.CargoUDPConnections, connectionCount("udp")))
	r.gauge(models.CargoLoggedUsers, single(models.CargoLoggedUsers, collectLoggedUsers))

	r.counter(models.CargoNetworkIn, single(models.CargoNetworkIn, collectNetworkIn))
	r.counter(models.CargoNetworkOut, single(models.CargoNetworkOut, collectNetworkOut))
	r.counter(models.CargoNetworkErrors, single(models.CargoNetworkErrors, collectNetworkErrors))
	r.counter(models.CargoNetworkDrops, single(models.CargoNetworkDrops, collectNetworkDrops))
	r.counter(models.CargoDiskIO, single(models.CargoDiskIO, collectDiskIO))
	r.counter(models.CargoDiskRead, single(models.CargoDiskRead, collectDiskRead))
	r.counter(models.CargoDiskWrite, single(models.CargoDiskWrite, collectDiskWrite))

	// Pseudo-file backed collectors: probe once, memoize the outcome.
	r.probedGauge(models.CargoOpenFiles, paths.fileNr, single(models.CargoOpenFiles, func() (float64, error) {
		return readProcFirstField(paths.fileNr)
	}))
	r.probedGauge(models.CargoEntropy, paths.entropy, single(models.CargoEntropy, func() (float64, error) {
		return readProcFirstField(paths.entropy)
	}))
	r.probedCounter(models.CargoContextSwitches, paths.stat, single(models.CargoContextSwitches, func() (float64, error) {
		return readProcStatCounter(paths.stat, "ctxt")
	}))
	r.probedCounter(models.CargoInterrupts, paths.stat, single(models.CargoInterrupts, func() (float64, error) {
		return readProcStatCounter(paths.stat, "intr")
	}))

	return r
}

func (r *Registry) gauge(id string, fn Func) {
	r.entries[id] = entry{collect: fn}
}

func (r *Registry) counter(id string, fn Func) {
	r.entries[id] = entry{collect: fn, rated: true}
}

func (r *Registry) probedGauge(id, path string, fn Func) {
	r.entries[id] = entry{collect: probe(path, fn)}
}

func (r *Registry) probedCounter(id, path string, fn Func) {
	r.entries[id] = entry{collect: probe(path, fn), rated: true}
}

// probe checks the backing pseudo-file once; a missing file turns the
// collector into a memoized unavailable one.
func probe(path string, fn Func) Func {
	if _, err := os.Stat(path); err != nil {
		return unavailable(path)
	}
	return fn
}

func unavailable(path string) Func {
	return func() ([]Reading, error) {
		return nil, fmt.Errorf("%s: %w", path, internalerrors.ErrSourceMissing)
	}
}

// single adapts a scalar collector into the fan-out Func shape.
func single(id string, fn func() (float64, error)) Func {
	return func() ([]Reading, error) {
		value, err := fn()
		if err != nil {
			return nil, err
		}
		return []Reading{{Cargo: id, Value: value}}, nil
	}
}

// Collect invokes the collector registered for id.
func (r *Registry) Collect(id string) ([]Reading, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, internalerrors.ErrUnknownMetric)
	}
	readings, err := e.collect()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", id, internalerrors.ErrCollectionFailed, err)
	}
	return readings, nil
}

// RateBased reports whether id is a cumulative counter that must go
// through the rate engine.
func (r *Registry) RateBased(id string) bool {
	return r.entries[id].rated
}
