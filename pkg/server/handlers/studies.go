package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nullspace/nullspace"
	"github.com/nullspace/nullspace/pkg/server/dto"
	"github.com/nullspace/nullspace/pkg/types"
)

const defaultListLimit = 50

// StudyHandler handles study listing and detail requests
type StudyHandler struct {
	explorer nullspace.Explorer
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(e nullspace.Explorer) *StudyHandler {
	return &StudyHandler{explorer: e}
}

// List handles GET /api/experiments
func (h *StudyHandler) List(c *gin.Context) {
	limit := defaultListLimit
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

	studies, err := h.explorer.Studies(c.Request.Context(), nullspace.StudyFilter{
		Search:   c.Query("search"),
		Organism: c.Query("organism"),
		Limit:    limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "listing_failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.ExperimentsResponse{Experiments: studies})
}

// Get handles GET /api/experiments/:id
func (h *StudyHandler) Get(c *gin.Context) {
	detail, err := h.explorer.Study(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, types.ErrStudyNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "not_found",
				Message: "Experiment not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "lookup_failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}
