package collector

import (
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/shirou/gopsutil/v4/sensors"

	models "github.com/harborwatch/agent/internal/model"
)

func collectCPUUsage() (float64, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, errors.New("no cpu usage reported")
	}
	return percents[0], nil
}

func collectCPUPerCore() ([]Reading, error) {
	percents, err := cpu.Percent(0, true)
	if err != nil {
		return nil, err
	}
	readings := make([]Reading, 0, len(percents))
	for i, percent := range percents {
		readings = append(readings, Reading{
			Cargo: fmt.Sprintf("%s.%d", models.CargoCPUPerCore, i),
			Value: percent,
		})
	}
	return readings, nil
}

func collectRAMUsage() (float64, error) {
	memory, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return memory.UsedPercent, nil
}

func collectRAMDetailed() ([]Reading, error) {
	memory, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}
	prefix := models.CargoRAMDetailed
	return []Reading{
		{Cargo: prefix + ".total", Value: float64(memory.Total)},
		{Cargo: prefix + ".available", Value: float64(memory.Available)},
		{Cargo: prefix + ".used", Value: float64(memory.Used)},
		{Cargo: prefix + ".free", Value: float64(memory.Free)},
		{Cargo: prefix + ".cached", Value: float64(memory.Cached)},
		{Cargo: prefix + ".buffers", Value: float64(memory.Buffers)},
	}, nil
}

func collectDiskUsage() (float64, error) {
	usage, err := disk.Usage("/")
	if err != nil {
		return 0, err
	}
	return usage.UsedPercent, nil
}

func collectDiskUsageParts() ([]Reading, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}
	var readings []Reading
	for _, partition := range partitions {
		usage, err := disk.Usage(partition.Mountpoint)
		if err != nil {
			// A single unreadable mount must not hide the others.
			continue
		}
		readings = append(readings, Reading{
			Cargo: models.CargoDiskUsageParts + "." + partition.Mountpoint,
			Value: usage.UsedPercent,
		})
	}
	return readings, nil
}

func loadAverage(index int) func() (float64, error) {
	return func() (float64, error) {
		avg, err := load.Avg()
		if err != nil {
			return 0, err
		}
		switch index {
		case 0:
			return avg.Load1, nil
		case 1:
			return avg.Load5, nil
		default:
			return avg.Load15, nil
		}
	}
}

func collectProcesses() (float64, error) {
	pids, err := process.Pids()
	if err != nil {
		return 0, err
	}
	return float64(len(pids)), nil
}

func collectZombieProcesses() (float64, error) {
	procs, err := process.Processes()
	if err != nil {
		return 0, err
	}
	var zombies int
	for _, p := range procs {
		statuses, err := p.Status()
		if err != nil {
			continue
		}
		for _, status := range statuses {
			if status == process.Zombie {
				zombies++
				break
			}
		}
	}
	return float64(zombies), nil
}

func collectNetworkIn() (float64, error) {
	counters, err := netTotals()
	if err != nil {
		return 0, err
	}
	return float64(counters.BytesRecv), nil
}

func collectNetworkOut() (float64, error) {
	counters, err := netTotals()
	if err != nil {
		return 0, err
	}
	return float64(counters.BytesSent), nil
}

func collectNetworkErrors() (float64, error) {
	counters, err := netTotals()
	if err != nil {
		return 0, err
	}
	return float64(counters.Errin + counters.Errout), nil
}

func collectNetworkDrops() (float64, error) {
	counters, err := netTotals()
	if err != nil {
		return 0, err
	}
	return float64(counters.Dropin + counters.Dropout), nil
}

func netTotals() (net.IOCountersStat, error) {
	counters, err := net.IOCounters(false)
	if err != nil {
		return net.IOCountersStat{}, err
	}
	if len(counters) == 0 {
		return net.IOCountersStat{}, errors.New("no network counters reported")
	}
	return counters[0], nil
}

func collectTemperature() (float64, error) {
	temps, err := sensors.SensorsTemperatures()
	if err != nil {
		return 0, err
	}
	if len(temps) == 0 {
		return 0, errors.New("no temperature sensors")
	}
	hottest := temps[0].Temperature
	for _, t := range temps[1:] {
		if t.Temperature > hottest {
			hottest = t.Temperature
		}
	}
	return hottest, nil
}

func collectUptime() (float64, error) {
	uptime, err := host.Uptime()
	if err != nil {
		return 0, err
	}
	return float64(uptime), nil
}

func collectSwapUsage() (float64, error) {
	swap, err := mem.SwapMemory()
	if err != nil {
		return 0, err
	}
	return swap.UsedPercent, nil
}

func collectDiskIO() (float64, error) {
	read, write, err := diskIOTotals()
	if err != nil {
		return 0, err
	}
	return read + write, nil
}

func collectDiskRead() (float64, error) {
	read, _, err := diskIOTotals()
	if err != nil {
		return 0, err
	}
	return read, nil
}

func collectDiskWrite() (float64, error) {
	_, write, err := diskIOTotals()
	if err != nil {
		return 0, err
	}
	return write, nil
}

func diskIOTotals() (read, write float64, err error) {
	counters, err := disk.IOCounters()
	if err != nil {
		return 0, 0, err
	}
	for _, c := range counters {
		read += float64(c.ReadCount)
		write += float64(c.WriteCount)
	}
	return read, write, nil
}

func connectionCount(kind string) func() (float64, error) {
	return func() (float64, error) {
		connections, err := net.Connections(kind)
		if err != nil {
			return 0, err
		}
		return float64(len(connections)), nil
	}
}

func collectLoggedUsers() (float64, error) {
	users, err := host.Users()
	if err != nil {
		return 0, err
	}
	return float64(len(users)), nil
}
