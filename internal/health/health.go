package health

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthChecker struct {
	db    Pinger
	redis func(ctx context.Context) bool
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Database ComponentHealth `json:"database"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

type DetailedStatus struct {
	HealthStatus
	Redis string    `json:"redis"`
	Host  HostStats `json:"host"`
	Time  time.Time `json:"time"`
}

type HostStats struct {
	CPUPercent  float64 `json:"cpu_percent"`
	MemPercent  float64 `json:"mem_percent"`
	MemUsed     string  `json:"mem_used"`
	MemTotal    string  `json:"mem_total"`
	DiskPercent float64 `json:"disk_percent"`
	DiskUsed    string  `json:"disk_used"`
	DiskTotal   string  `json:"disk_total"`
}

// NewHealthChecker builds a checker. redis may be nil when no cache is configured.
func NewHealthChecker(db Pinger, redis func(ctx context.Context) bool) *HealthChecker {
	return &HealthChecker{db: db, redis: redis}
}

func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	dbHealth := h.checkDatabase(ctx)

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
	}
}

// CheckDetailed adds cache and host resource usage. Redis being down only degrades.
func (h *HealthChecker) CheckDetailed(ctx context.Context) DetailedStatus {
	out := DetailedStatus{HealthStatus: h.CheckBasic(ctx), Redis: "disabled", Time: time.Now()}
	if h.redis != nil {
		if h.redis(ctx) {
			out.Redis = "healthy"
		} else {
			out.Redis = "unavailable"
			if out.Status == "healthy" {
				out.Status = "degraded"
			}
		}
	}
	out.Host = collectHost(ctx)
	return out
}

func (h *HealthChecker) checkDatabase(ctx context.Context) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return ComponentHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func collectHost(ctx context.Context) HostStats {
	var hs HostStats
	if percents, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false); err == nil && len(percents) > 0 {
		hs.CPUPercent = percents[0]
	}
	if m, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		hs.MemPercent = m.UsedPercent
		hs.MemUsed = formatBytes(m.Used)
		hs.MemTotal = formatBytes(m.Total)
	}
	if d, err := disk.UsageWithContext(ctx, "/"); err == nil {
		hs.DiskPercent = d.UsedPercent
		hs.DiskUsed = formatBytes(d.Used)
		hs.DiskTotal = formatBytes(d.Total)
	}
	return hs
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}
