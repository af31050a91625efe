package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/accounts/application/usecase"
)

// GetUserController serves the caller's own profile, another user's profile
// and the public-key lookup.
type GetUserController struct {
	uc *usecase.GetUserUseCase
}

func NewGetUserController(uc *usecase.GetUserUseCase) *GetUserController {
	return &GetUserController{uc: uc}
}

// HandleMe returns the authenticated user's profile.
func (h *GetUserController) HandleMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}
		user, err := h.uc.Execute(c.Request.Context(), userID)
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// HandleByID returns any user's public profile.
func (h *GetUserController) HandleByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c)
		if err != nil {
			return
		}
		user, err := h.uc.Execute(c.Request.Context(), id)
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// HandlePublicKey returns only the key material of a user.
func (h *GetUserController) HandlePublicKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c)
		if err != nil {
			return
		}
		user, err := h.uc.Execute(c.Request.Context(), id)
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID, "public_key": user.PublicKey})
	}
}

// parseIDParam reads the :id path parameter; on failure it writes the 400
// itself and returns a non-nil error so callers just bail out.
func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, errBadIDParam
	}
	return id, nil
}

var errBadIDParam = errors.New("invalid id parameter")
