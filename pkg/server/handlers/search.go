package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nullspace/nullspace"
	"github.com/nullspace/nullspace/pkg/server/dto"
)

const defaultSearchLimit = 20

// SearchHandler handles search requests
type SearchHandler struct {
	explorer nullspace.Explorer
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(e nullspace.Explorer) *SearchHandler {
	return &SearchHandler{explorer: e}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: "query parameter is required and cannot be empty",
		})
		return
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "invalid_request",
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	results, err := h.explorer.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "search_failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.SearchResponse{Results: results, Query: query})
}
