package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	queueport "github.com/1mmey/SecurityChat/internal/infrastructure/queue/port"
	userAdapter "github.com/1mmey/SecurityChat/internal/pkg/accounts/persistence/repository/adapter"
	"github.com/1mmey/SecurityChat/internal/pkg/messaging/application/usecase"
	repoAdapter "github.com/1mmey/SecurityChat/internal/pkg/messaging/persistence/repository/adapter"
	"github.com/1mmey/SecurityChat/internal/pkg/messaging/presentation/controller"
	"github.com/1mmey/SecurityChat/internal/pkg/presence"
)

// RegisterRoutes registers message endpoints and the websocket under the
// given router group. All of them require authentication.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, tracker *presence.Tracker, policy usecase.Policy, queueClient queueport.Client, issuer *auth.TokenIssuer) {
	repo := repoAdapter.NewPgMessageRepository(pool)
	users := userAdapter.NewPgUserRepository(pool)
	deliverer := controller.RegistryDeliverer{Registry: tracker.Registry()}

	sendUC := usecase.NewSendMessageUseCase(users, policy, deliverer, repo)
	offlineUC := usecase.NewFetchOfflineUseCase(repo)

	sendCtl := controller.NewSendMessageController(sendUC)
	enqueueCtl := controller.NewEnqueueMessageController(queueClient)
	peerCtl := controller.NewSavePeerMessageController(usecase.NewSavePeerMessageUseCase(repo))
	offlineCtl := controller.NewFetchOfflineController(offlineUC)
	historyCtl := controller.NewGetHistoryController(usecase.NewGetHistoryUseCase(repo))
	socketCtl := controller.NewSocketController(tracker, sendUC, offlineUC)

	authed := g.Group("", auth.Middleware(issuer))
	authed.POST("/messages", sendCtl.Handle())
	authed.POST("/messages/async", enqueueCtl.Handle())
	authed.POST("/messages/peer", peerCtl.Handle())
	authed.GET("/messages/offline", offlineCtl.Handle())
	authed.GET("/messages/history/:id", historyCtl.Handle())
	authed.GET("/ws", socketCtl.Handle())
}

// NewSendMessageUseCase wires the background-worker variant of the send use
// case; workers share the same live path as the HTTP handlers.
func NewSendMessageUseCase(pool *pgxpool.Pool, tracker *presence.Tracker, policy usecase.Policy) *usecase.SendMessageUseCase {
	repo := repoAdapter.NewPgMessageRepository(pool)
	users := userAdapter.NewPgUserRepository(pool)
	deliverer := controller.RegistryDeliverer{Registry: tracker.Registry()}
	return usecase.NewSendMessageUseCase(users, policy, deliverer, repo)
}
