// Package sysinfo captures a point-in-time snapshot of the machine the
// benchmark runs on, for the report header.
package sysinfo

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Info is an immutable snapshot of the host, captured once per run.
type Info struct {
	OS            string
	Hostname      string
	GoVersion     string
	CPUModel      string
	CPUCount      int
	MemoryTotalGB float64
	Timestamp     time.Time
}

// Collect gathers the snapshot. Individual collection failures leave
// the corresponding fields zeroed rather than aborting the run.
func Collect() Info {
	info := Info{
		GoVersion: runtime.Version(),
		Timestamp: time.Now(),
	}

	if hostInfo, err := host.Info(); err == nil {
		info.OS = hostInfo.OS + " " + hostInfo.Platform + " " + hostInfo.PlatformVersion
		info.Hostname = hostInfo.Hostname
	}
	if info.Hostname == "" {
		if name, err := os.Hostname(); err == nil {
			info.Hostname = name
		}
	}

	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
	}
	if count, err := cpu.Counts(true); err == nil {
		info.CPUCount = count
	}

	if memInfo, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotalGB = float64(memInfo.Total) / (1024 * 1024 * 1024)
	}

	return info
}
