package models

// Metric identifiers understood by the collector registry. The set is
// closed: configuration naming anything else is rejected at startup.
const (
	CargoCPUUsage        = "cpu_usage"
	CargoCPUPerCore      = "cpu_per_core"
	CargoRAMUsage        = "ram_usage"
	CargoRAMDetailed     = "ram_detailed"
	CargoDiskUsage       = "disk_usage"
	CargoDiskUsageParts  = "disk_usage_parts"
	CargoLoadAverage1m   = "load_average_1m"
	CargoLoadAverage5m   = "load_average_5m"
	CargoLoadAverage15m  = "load_average_15m"
	CargoProcesses       = "processes"
	CargoZombieProcesses = "zombie_processes"
	CargoNetworkIn       = "network_in"
	CargoNetworkOut      = "network_out"
	CargoNetworkErrors   = "network_errors"
	CargoNetworkDrops    = "network_drops"
	CargoTemperature     = "temperature"
	CargoUptime          = "uptime"
	CargoSwapUsage       = "swap_usage"
	CargoDiskIO          = "disk_io"
	CargoDiskRead        = "disk_read"
	CargoDiskWrite       = "disk_write"
	CargoOpenFiles       = "open_files"
	CargoTCPConnections  = "tcp_connections"
	CargoUDPConnections  = "udp_connections"
	CargoLoggedUsers     = "logged_users"
	CargoEntropy         = "entropy"
	CargoContextSwitches = "context_switches"
	CargoInterrupts      = "interrupts"
)

// CargoIDs lists every known metric identifier in canonical order.
var CargoIDs = []string{
	CargoCPUUsage,
	CargoCPUPerCore,
	CargoRAMUsage,
	CargoRAMDetailed,
	CargoDiskUsage,
	CargoDiskUsageParts,
	CargoLoadAverage1m,
	CargoLoadAverage5m,
	CargoLoadAverage15m,
	CargoProcesses,
	CargoZombieProcesses,
	CargoNetworkIn,
	CargoNetworkOut,
	CargoNetworkErrors,
	CargoNetworkDrops,
	CargoTemperature,
	CargoUptime,
	CargoSwapUsage,
	CargoDiskIO,
	CargoDiskRead,
	CargoDiskWrite,
	CargoOpenFiles,
	CargoTCPConnections,
	CargoUDPConnections,
	CargoLoggedUsers,
	CargoEntropy,
	CargoContextSwitches,
	CargoInterrupts,
}

var knownCargo = func() map[string]struct{} {
	m := make(map[string]struct{}, len(CargoIDs))
	for _, id := range CargoIDs {
		m[id] = struct{}{}
	}
	return m
}()

// KnownCargo reports whether id belongs to the closed metric set.
func KnownCargo(id string) bool {
	_, ok := knownCargo[id]
	return ok
}
