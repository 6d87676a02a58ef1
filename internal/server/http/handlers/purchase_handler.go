package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/server/http/dto"
)

// PurchaseHandler starts checkouts.
type PurchaseHandler struct {
	facade PurchaseFacade
}

// NewPurchaseHandler constructs PurchaseHandler.
func NewPurchaseHandler(facade PurchaseFacade) *PurchaseHandler {
	return &PurchaseHandler{facade: facade}
}

// Create handles POST /api/user/purchases.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CourseID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	intent, err := h.facade.InitiateCheckout(c.Request.Context(), CurrentUserID(c), req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrGatewayUnavailable):
			c.Status(http.StatusBadGateway)
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewCheckoutResponse(intent))
}
