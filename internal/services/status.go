package services

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// MessageRunning is the status line of the root endpoint
const MessageRunning = "程序运行中"

// ServiceStatus is the body of GET /
type ServiceStatus struct {
	Status         string  `json:"status"`
	Uptime         int64   `json:"uptime"`
	StartedAt      int64   `json:"startedAt"`
	Hostname       string  `json:"hostname,omitempty"`
	OS             string  `json:"os"`
	Platform       string  `json:"platform,omitempty"`
	CPUCount       int     `json:"cpuCount"`
	MemUsedPercent float64 `json:"memUsedPercent,omitempty"`
	GoVersion      string  `json:"goVersion"`
}

// Status reports process uptime and basic host facts. Host lookups that fail
// leave their fields empty; the process is running either way.
func Status(ctx context.Context, startedAt time.Time) ServiceStatus {
	status := ServiceStatus{
		Status:    MessageRunning,
		Uptime:    int64(time.Since(startedAt).Seconds()),
		StartedAt: startedAt.UnixMilli(),
		OS:        runtime.GOOS,
		CPUCount:  runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		status.Hostname = info.Hostname
		status.Platform = info.Platform
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		status.MemUsedPercent = vm.UsedPercent
	}

	return status
}
