package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/opticart/checkout/internal/domain/errors"
	"github.com/opticart/checkout/internal/domain/model"
	"github.com/opticart/checkout/internal/gateway"
	"github.com/opticart/checkout/internal/server/http/dto"
)

// GatewayHandler receives the hosted gateway's callbacks. Each checkout
// accepts exactly one callback; later ones are rejected with 409.
type GatewayHandler struct {
	facade CheckoutFacade
}

// NewGatewayHandler constructs GatewayHandler.
func NewGatewayHandler(facade CheckoutFacade) *GatewayHandler {
	return &GatewayHandler{facade: facade}
}

// Success handles POST /api/checkout/:id/gateway/success.
func (h *GatewayHandler) Success(c *gin.Context) {
	var req dto.GatewaySuccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	h.resolve(c, gateway.Result{
		Kind: gateway.ResultSuccess,
		Assertion: model.PaymentAssertion{
			OrderID:   req.RazorpayOrderID,
			PaymentID: req.RazorpayPaymentID,
			Signature: req.RazorpaySignature,
		},
	})
}

// Failure handles POST /api/checkout/:id/gateway/failure.
func (h *GatewayHandler) Failure(c *gin.Context) {
	var req dto.GatewayFailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	h.resolve(c, gateway.Result{Kind: gateway.ResultFailure, Reason: req.Reason})
}

// Dismiss handles POST /api/checkout/:id/gateway/dismiss.
func (h *GatewayHandler) Dismiss(c *gin.Context) {
	h.resolve(c, gateway.Result{Kind: gateway.ResultDismissed})
}

func (h *GatewayHandler) resolve(c *gin.Context, result gateway.Result) {
	outcome, err := h.facade.ResolveGateway(c.Request.Context(), c.Param("id"), result)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrSessionResolved):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toOutcomeDTO(outcome))
}
