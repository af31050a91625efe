package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/contacts/application/usecase"
)

// GetEndpointController returns the peer address hint of an accepted
// contact, for clients that dial each other directly.
type GetEndpointController struct {
	uc *usecase.GetContactEndpointUseCase
}

func NewGetEndpointController(uc *usecase.GetContactEndpointUseCase) *GetEndpointController {
	return &GetEndpointController{uc: uc}
}

func (h *GetEndpointController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		contactID, err := parseIDParam(c)
		if err != nil {
			return
		}

		ep, err := h.uc.Execute(c.Request.Context(), usecase.GetContactEndpointInput{
			OwnerID:   userID,
			ContactID: contactID,
		})
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		if ep == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact has not advertised an endpoint"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ip": ep.IP, "port": ep.Port})
	}
}
