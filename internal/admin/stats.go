// AngelaMos | 2026
// stats.go

package admin

import "runtime"

type SystemStatsResponse struct {
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpen      int    `json:"max_open_connections"`
	Open         int    `json:"open_connections"`
	InUse        int    `json:"in_use"`
	Idle         int    `json:"idle"`
	Waits        int64  `json:"wait_count"`
	WaitDuration string `json:"wait_duration"`
	ClosedIdle   int64  `json:"max_idle_closed"`
	ClosedAged   int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits     uint32 `json:"hits"`
	Misses   uint32 `json:"misses"`
	Timeouts uint32 `json:"timeouts"`
	Total    uint32 `json:"total_conns"`
	Idle     uint32 `json:"idle_conns"`
	Stale    uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion  string `json:"go_version"`
	Goroutines int    `json:"num_goroutine"`
	CPUs       int    `json:"num_cpu"`
	HeapAlloc  uint64 `json:"mem_alloc_bytes"`
	Sys        uint64 `json:"mem_sys_bytes"`
	GCCycles   uint32 `json:"num_gc"`
}

func (h *Handler) dbPool() *DBPoolStats {
	if h.cfg.DBStats == nil {
		return nil
	}
	s := h.cfg.DBStats()
	return &DBPoolStats{
		MaxOpen:      s.MaxOpenConnections,
		Open:         s.OpenConnections,
		InUse:        s.InUse,
		Idle:         s.Idle,
		Waits:        s.WaitCount,
		WaitDuration: s.WaitDuration.String(),
		ClosedIdle:   s.MaxIdleClosed + s.MaxIdleTimeClosed,
		ClosedAged:   s.MaxLifetimeClosed,
	}
}

func (h *Handler) redisPool() *RedisPoolStats {
	if h.cfg.RedisStats == nil {
		return nil
	}
	s := h.cfg.RedisStats()
	return &RedisPoolStats{
		Hits:     s.Hits,
		Misses:   s.Misses,
		Timeouts: s.Timeouts,
		Total:    s.TotalConns,
		Idle:     s.IdleConns,
		Stale:    s.StaleConns,
	}
}

func readRuntime() RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeStats{
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		CPUs:       runtime.NumCPU(),
		HeapAlloc:  m.Alloc,
		Sys:        m.Sys,
		GCCycles:   m.NumGC,
	}
}
