package models

import "time"

// ServerStatsResponse contains daemon runtime statistics.
type ServerStatsResponse struct {
	Uptime        string    `json:"uptime"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	StartTime     time.Time `json:"start_time"`
	GoRoutines    int       `json:"goroutines"`
	NumCPU        int       `json:"num_cpu"`

	ProcessMemoryMB float64 `json:"process_memory_mb"`
	SystemMemoryPct float64 `json:"system_memory_pct"`

	Lookups *LookupStatsResponse `json:"lookups,omitempty"`
}

// LookupStatsResponse aggregates recorded lookup outcomes.
type LookupStatsResponse struct {
	Total    int64 `json:"total"`
	Success  int64 `json:"success"`
	NotFound int64 `json:"not_found"`
	Errors   int64 `json:"errors"`
}
