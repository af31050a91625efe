package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/pkg/accounts/application/usecase"
)

// LoginController exchanges credentials for an access token.
type LoginController struct {
	uc *usecase.LoginUseCase
}

func NewLoginController(uc *usecase.LoginUseCase) *LoginController {
	return &LoginController{uc: uc}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		out, err := h.uc.Execute(c.Request.Context(), usecase.LoginInput{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			handleUseCaseError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": out.Token,
			"token_type":   "bearer",
			"user":         toUserResponse(out.User),
		})
	}
}
