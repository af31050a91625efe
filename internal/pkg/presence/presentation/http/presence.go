package http

import (
	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/presence"
	"github.com/1mmey/SecurityChat/internal/pkg/presence/presentation/controller"
)

// RegisterRoutes registers the heartbeat endpoint under the given router group.
func RegisterRoutes(g *gin.RouterGroup, tracker *presence.Tracker, issuer *auth.TokenIssuer) {
	heartbeatCtl := controller.NewHeartbeatController(tracker)

	authed := g.Group("", auth.Middleware(issuer))
	authed.POST("/heartbeat", heartbeatCtl.Handle())
}
