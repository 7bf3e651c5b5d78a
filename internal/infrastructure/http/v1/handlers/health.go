package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Live handles the liveness probe.
// GET /health/live
func Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
