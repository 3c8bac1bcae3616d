package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIIndex describes the service and its top-level endpoints.
func APIIndex() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "PERFETTO Pizza API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"pizzas":   "/pizzas",
				"users":    "/users",
				"admin":    "/admin",
				"orders":   "/orders",
				"messages": "/messages",
			},
		})
	}
}

// Health is the liveness endpoint.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// NotFound handles unmatched routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	}
}
