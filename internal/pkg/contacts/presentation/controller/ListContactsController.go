package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	contacts "github.com/1mmey/SecurityChat/internal/pkg/contacts/domain"
)

// contactLister is satisfied by the accepted, pending and online-only list
// use cases; one controller serves all three list shapes.
type contactLister interface {
	Execute(ctx context.Context, userID int64) ([]contacts.View, error)
}

// ListContactsController renders a contact list endpoint.
type ListContactsController struct {
	uc contactLister
}

func NewListContactsController(uc contactLister) *ListContactsController {
	return &ListContactsController{uc: uc}
}

func (h *ListContactsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		views, err := h.uc.Execute(c.Request.Context(), userID)
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		if views == nil {
			views = []contacts.View{}
		}
		c.JSON(http.StatusOK, gin.H{"contacts": views})
	}
}
