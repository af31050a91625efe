package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	cacheport "github.com/1mmey/SecurityChat/internal/infrastructure/cache/port"
	userAdapter "github.com/1mmey/SecurityChat/internal/pkg/accounts/persistence/repository/adapter"
	"github.com/1mmey/SecurityChat/internal/pkg/contacts/application/usecase"
	repoAdapter "github.com/1mmey/SecurityChat/internal/pkg/contacts/persistence/repository/adapter"
	"github.com/1mmey/SecurityChat/internal/pkg/contacts/presentation/controller"
)

// RegisterRoutes registers contact endpoints under the given router group.
// All of them require authentication.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, issuer *auth.TokenIssuer) {
	repo := repoAdapter.NewPgContactRepository(pool)
	users := userAdapter.NewPgUserRepository(pool)

	listUC := usecase.NewListContactsUseCase(repo, cache)

	requestCtl := controller.NewRequestContactController(usecase.NewRequestContactUseCase(repo, users))
	acceptCtl := controller.NewAcceptContactController(usecase.NewAcceptContactUseCase(repo, listUC))
	removeCtl := controller.NewRemoveContactController(usecase.NewRemoveContactUseCase(repo, listUC))
	listCtl := controller.NewListContactsController(listUC)
	pendingCtl := controller.NewListContactsController(usecase.NewListPendingUseCase(repo))
	onlineCtl := controller.NewListContactsController(usecase.NewListOnlineContactsUseCase(listUC))
	endpointCtl := controller.NewGetEndpointController(usecase.NewGetContactEndpointUseCase(repo, users))

	authed := g.Group("/contacts", auth.Middleware(issuer))
	authed.GET("", listCtl.Handle())
	authed.POST("/request", requestCtl.Handle())
	authed.POST("/:id/accept", acceptCtl.Handle())
	authed.DELETE("/:id", removeCtl.Handle())
	authed.GET("/pending", pendingCtl.Handle())
	authed.GET("/online", onlineCtl.Handle())
	authed.GET("/:id/endpoint", endpointCtl.Handle())
}
