package middlewares

import (
	"SmartHospital/apperrors"
	"log"

	"github.com/gin-gonic/gin"
)

// RespondError maps a service error onto an HTTP status and a safe message.
// Unclassified errors are logged in full but reported as an internal error.
func RespondError(c *gin.Context, err error) {
	status := apperrors.Status(err)
	if status >= 500 {
		log.Printf("HTTP %d - %s %s: %v", status, c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": apperrors.Message(err)})
}
