package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/presence"
)

// HeartbeatController refreshes the caller's last-seen timestamp. Clients
// without a websocket session stay online by calling this periodically.
type HeartbeatController struct {
	tracker *presence.Tracker
}

func NewHeartbeatController(tracker *presence.Tracker) *HeartbeatController {
	return &HeartbeatController{tracker: tracker}
}

func (h *HeartbeatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}
		if err := h.tracker.OnHeartbeat(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	}
}
