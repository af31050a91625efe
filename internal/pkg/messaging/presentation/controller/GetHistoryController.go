package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/messaging/application/usecase"
	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
)

// GetHistoryController serves the paginated two-way conversation with a
// peer, oldest first.
type GetHistoryController struct {
	uc *usecase.GetHistoryUseCase
}

func NewGetHistoryController(uc *usecase.GetHistoryUseCase) *GetHistoryController {
	return &GetHistoryController{uc: uc}
}

func (h *GetHistoryController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		peerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || peerID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		msgs, err := h.uc.Execute(c.Request.Context(), usecase.GetHistoryInput{
			UserID: userID,
			PeerID: peerID,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		if msgs == nil {
			msgs = []messaging.Message{}
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs})
	}
}
