package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"
)

// ComputeStats runs the statistics engine on a caller-supplied grade
// distribution. Body: {"grades": {"A": 10, "W": 2, ...}}.
func (h *Handler) ComputeStats(c *gin.Context) {
	var req struct {
		Grades gradestats.Distribution `json:"grades"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON object with a grades map"})
		return
	}

	c.JSON(http.StatusOK, gradestats.Compute(req.Grades))
}
