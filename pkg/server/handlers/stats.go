package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nullspace/nullspace"
	"github.com/nullspace/nullspace/pkg/server/dto"
)

// StatsHandler handles platform statistics requests
type StatsHandler struct {
	explorer nullspace.Explorer
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(e nullspace.Explorer) *StatsHandler {
	return &StatsHandler{explorer: e}
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.explorer.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "stats_failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}
