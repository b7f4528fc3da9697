package handlers

import (
	"SmartHospital/middlewares"
	"SmartHospital/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications *services.NotificationService
	identity      *services.IdentityService
}

func NewNotificationHandler(notifications *services.NotificationService, identity *services.IdentityService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, identity: identity}
}

// DoctorNotification returns the latest booking notification for the calling
// doctor, if any. Notifications are in-memory and lost on restart.
func (h *NotificationHandler) DoctorNotification(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	principal, err := h.identity.Resolve(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if principal.DoctorID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no doctor profile for this user"})
		return
	}

	message, found := h.notifications.Latest(*principal.DoctorID)
	if !found {
		c.JSON(http.StatusOK, gin.H{"message": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ClearDoctorNotification dismisses the calling doctor's latest notification.
func (h *NotificationHandler) ClearDoctorNotification(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	principal, err := h.identity.Resolve(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if principal.DoctorID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no doctor profile for this user"})
		return
	}

	h.notifications.Clear(*principal.DoctorID)
	c.JSON(http.StatusOK, gin.H{"message": "notification cleared"})
}
