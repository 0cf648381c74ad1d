package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nullspace/nullspace"
	"github.com/nullspace/nullspace/pkg/server/dto"
)

// GraphHandler handles knowledge graph requests
type GraphHandler struct {
	explorer nullspace.Explorer
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(e nullspace.Explorer) *GraphHandler {
	return &GraphHandler{explorer: e}
}

// Get handles GET /api/knowledge-graph
func (h *GraphHandler) Get(c *gin.Context) {
	var ids []string
	if raw := c.Query("experiment_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	graph, err := h.explorer.KnowledgeGraph(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "graph_failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, graph)
}
