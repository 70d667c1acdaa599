package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/jroosing/gordap/internal/api/models"
	"github.com/jroosing/gordap/internal/database"
)

// Health handles GET /api/v1/health.
func (h *Handler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "history store unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(c *gin.Context) {
	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfo(); err == nil && mi != nil {
			resp.ProcessMemoryMB = float64(mi.RSS) / 1024 / 1024
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		resp.SystemMemoryPct = vm.UsedPercent
	}

	if h.db != nil {
		if counts, err := h.db.CountByOutcome(c.Request.Context()); err == nil {
			stats := &models.LookupStatsResponse{
				Success:  counts[database.OutcomeSuccess],
				NotFound: counts[database.OutcomeNotFound],
				Errors:   counts[database.OutcomeError],
			}
			stats.Total = stats.Success + stats.NotFound + stats.Errors
			resp.Lookups = stats
		}
	}

	c.JSON(http.StatusOK, resp)
}
