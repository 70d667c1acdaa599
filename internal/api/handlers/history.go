package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/gordap/internal/api/models"
	"github.com/jroosing/gordap/internal/database"
)

// History handles GET /api/v1/history. Supports ?limit=N and ?query=S
// to filter on one query string.
func (h *Handler) History(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "history store not configured"})
		return
	}

	limit := 50
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 1000 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "limit must be between 1 and 1000"})
			return
		}
		limit = n
	}

	var (
		entries []database.HistoryEntry
		err     error
	)
	if q := c.Query("query"); q != "" {
		entries, err = h.db.HistoryForQuery(c.Request.Context(), q, limit)
	} else {
		entries, err = h.db.RecentHistory(c.Request.Context(), limit)
	}
	if err != nil {
		h.logger.Error("history query failed", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "history query failed"})
		return
	}

	resp := models.HistoryResponse{Entries: make([]models.HistoryEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, models.HistoryEntryResponse{
			ID:         e.ID,
			Query:      e.Query,
			Kind:       e.Kind,
			ServerURL:  e.ServerURL,
			Outcome:    e.Outcome,
			Class:      e.Class,
			DurationMS: e.DurationMS,
			CreatedAt:  e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
