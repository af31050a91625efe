package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/pkg/accounts/application/usecase"
)

// RegisterController handles account creation only (one controller per endpoint)
type RegisterController struct {
	uc *usecase.RegisterUserUseCase
}

func NewRegisterController(uc *usecase.RegisterUserUseCase) *RegisterController {
	return &RegisterController{uc: uc}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	PublicKey string `json:"public_key"`
}

func (h *RegisterController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := h.uc.Execute(c.Request.Context(), usecase.RegisterUserInput{
			Username:  req.Username,
			Email:     req.Email,
			Password:  req.Password,
			PublicKey: req.PublicKey,
		})
		if err != nil {
			handleUseCaseError(c, err)
			return
		}

		c.JSON(http.StatusCreated, toUserResponse(user))
	}
}
