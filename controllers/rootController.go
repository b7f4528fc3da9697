package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// rootHandler reports service liveness.
func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetupRootRoute sets up the health route for the application.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
	router.GET("/health", rootHandler)
}
