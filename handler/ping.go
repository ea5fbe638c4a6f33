package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Ping answers health checks.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
