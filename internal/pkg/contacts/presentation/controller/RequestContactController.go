package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/contacts/application/usecase"
)

// RequestContactController handles sending a friend request only (one
// controller per endpoint)
type RequestContactController struct {
	uc *usecase.RequestContactUseCase
}

func NewRequestContactController(uc *usecase.RequestContactUseCase) *RequestContactController {
	return &RequestContactController{uc: uc}
}

type requestContactRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

func (h *RequestContactController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		var req requestContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := h.uc.Execute(c.Request.Context(), usecase.RequestContactInput{
			OwnerID:  userID,
			TargetID: req.UserID,
		})
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "request sent"})
	}
}
