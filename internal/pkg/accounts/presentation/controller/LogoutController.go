package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/presence"
)

// LogoutController flips the caller offline. Tokens are stateless, so the
// client simply discards its copy afterwards.
type LogoutController struct {
	tracker *presence.Tracker
}

func NewLogoutController(tracker *presence.Tracker) *LogoutController {
	return &LogoutController{tracker: tracker}
}

func (h *LogoutController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}
		if err := h.tracker.OnLogout(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "logged out"})
	}
}
