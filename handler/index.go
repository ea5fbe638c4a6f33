package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index describes the harness and its routes.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":   "lambda-env local harness",
		"status": "running",
		"endpoints": []string{
			"/ping - health check",
			"/hello - invoke the hello function",
		},
	})
}
