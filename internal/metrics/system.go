// Package metrics collects host facts for the system endpoint and the
// planner's host context.
package metrics

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemInfo represents current host state.
type SystemInfo struct {
	Hostname      string    `json:"hostname"`
	OS            string    `json:"os"`
	Platform      string    `json:"platform"`
	KernelVersion string    `json:"kernel_version"`
	Uptime        int64     `json:"uptime"` // seconds
	CPUCores      int       `json:"cpu_cores"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryTotal   uint64    `json:"memory_total"`
	MemoryUsed    uint64    `json:"memory_used"`
	MemoryPercent float64   `json:"memory_percent"`
	LoadAvg       []float64 `json:"load_avg"` // 1, 5, 15 min
}

// HostFacts is the subset embedded in the planner's system prompt.
type HostFacts struct {
	OS       string
	Platform string
}

// CollectHost returns the OS identity of this machine.
func CollectHost(ctx context.Context) HostFacts {
	facts := HostFacts{OS: "unknown", Platform: "unknown"}
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return facts
	}
	facts.OS = info.OS
	facts.Platform = info.Platform
	return facts
}

// Collect gathers a point-in-time snapshot of system resources.
func Collect(ctx context.Context) (*SystemInfo, error) {
	info := &SystemInfo{}

	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}
	info.Hostname = hostInfo.Hostname
	info.OS = hostInfo.OS
	info.Platform = hostInfo.Platform
	info.KernelVersion = hostInfo.KernelVersion
	info.Uptime = int64(hostInfo.Uptime)

	if cores, err := cpu.CountsWithContext(ctx, true); err == nil {
		info.CPUCores = cores
	}
	if percents, err := cpu.PercentWithContext(ctx, 100*time.Millisecond, false); err == nil && len(percents) > 0 {
		info.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryTotal = vm.Total
		info.MemoryUsed = vm.Used
		info.MemoryPercent = vm.UsedPercent
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		info.LoadAvg = []float64{avg.Load1, avg.Load5, avg.Load15}
	}

	return info, nil
}
