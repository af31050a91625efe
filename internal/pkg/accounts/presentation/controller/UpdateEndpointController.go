package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/accounts/application/usecase"
)

// UpdateEndpointController stores the caller's advertised peer address.
type UpdateEndpointController struct {
	uc *usecase.UpdateEndpointUseCase
}

func NewUpdateEndpointController(uc *usecase.UpdateEndpointUseCase) *UpdateEndpointController {
	return &UpdateEndpointController{uc: uc}
}

type updateEndpointRequest struct {
	IP   string `json:"ip" binding:"required"`
	Port int    `json:"port" binding:"required"`
}

func (h *UpdateEndpointController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		var req updateEndpointRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := h.uc.Execute(c.Request.Context(), usecase.UpdateEndpointInput{
			UserID: userID,
			IP:     req.IP,
			Port:   req.Port,
		})
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "endpoint updated"})
	}
}
