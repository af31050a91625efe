package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/accounts/application/usecase"
)

// SearchUsersController finds users by username fragment.
type SearchUsersController struct {
	uc *usecase.SearchUsersUseCase
}

func NewSearchUsersController(uc *usecase.SearchUsersUseCase) *SearchUsersController {
	return &SearchUsersController{uc: uc}
}

func (h *SearchUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		limit := 20
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		users, err := h.uc.Execute(c.Request.Context(), usecase.SearchUsersInput{
			Query:     c.Query("q"),
			Requestor: userID,
			Limit:     limit,
		})
		if err != nil {
			handleUseCaseError(c, err)
			return
		}

		results := make([]userResponse, 0, len(users))
		for i := range users {
			u := users[i]
			results = append(results, toUserResponse(&u))
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}
