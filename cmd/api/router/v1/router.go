package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	cacheport "github.com/1mmey/SecurityChat/internal/infrastructure/cache/port"
	qport "github.com/1mmey/SecurityChat/internal/infrastructure/queue/port"
	accountsHTTP "github.com/1mmey/SecurityChat/internal/pkg/accounts/presentation/http"
	contactsHTTP "github.com/1mmey/SecurityChat/internal/pkg/contacts/presentation/http"
	msgusecase "github.com/1mmey/SecurityChat/internal/pkg/messaging/application/usecase"
	messagingHTTP "github.com/1mmey/SecurityChat/internal/pkg/messaging/presentation/http"
	"github.com/1mmey/SecurityChat/internal/pkg/presence"
	presenceHTTP "github.com/1mmey/SecurityChat/internal/pkg/presence/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(
	r *gin.Engine,
	pool *pgxpool.Pool,
	cache cacheport.Cache,
	queueClient qport.Client,
	issuer *auth.TokenIssuer,
	tracker *presence.Tracker,
	policy msgusecase.Policy,
) {
	v1 := r.Group("/api/v1")
	accountsHTTP.RegisterRoutes(v1, pool, issuer, tracker)
	contactsHTTP.RegisterRoutes(v1, pool, cache, issuer)
	messagingHTTP.RegisterRoutes(v1, pool, tracker, policy, queueClient, issuer)
	presenceHTTP.RegisterRoutes(v1, tracker, issuer)
}
