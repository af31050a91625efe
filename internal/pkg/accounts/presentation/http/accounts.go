package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/accounts/application/usecase"
	repoAdapter "github.com/1mmey/SecurityChat/internal/pkg/accounts/persistence/repository/adapter"
	"github.com/1mmey/SecurityChat/internal/pkg/accounts/presentation/controller"
	"github.com/1mmey/SecurityChat/internal/pkg/presence"
)

// RegisterRoutes registers account and auth endpoints under the given router
// group. It constructs per-endpoint controllers and binds them directly to
// routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, issuer *auth.TokenIssuer, tracker *presence.Tracker) {
	repo := repoAdapter.NewPgUserRepository(pool)

	registerCtl := controller.NewRegisterController(usecase.NewRegisterUserUseCase(repo))
	loginCtl := controller.NewLoginController(usecase.NewLoginUseCase(repo, issuer, tracker))
	logoutCtl := controller.NewLogoutController(tracker)
	getUserCtl := controller.NewGetUserController(usecase.NewGetUserUseCase(repo))
	searchCtl := controller.NewSearchUsersController(usecase.NewSearchUsersUseCase(repo))
	endpointCtl := controller.NewUpdateEndpointController(usecase.NewUpdateEndpointUseCase(repo))

	g.POST("/auth/register", registerCtl.Handle())
	g.POST("/auth/login", loginCtl.Handle())

	authed := g.Group("", auth.Middleware(issuer))
	authed.POST("/auth/logout", logoutCtl.Handle())
	authed.GET("/users/me", getUserCtl.HandleMe())
	authed.PUT("/users/me/endpoint", endpointCtl.Handle())
	authed.GET("/users/search", searchCtl.Handle())
	authed.GET("/users/:id", getUserCtl.HandleByID())
	authed.GET("/users/:id/public_key", getUserCtl.HandlePublicKey())
}
