package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/opticart/checkout/internal/domain/errors"
	"github.com/opticart/checkout/internal/server/http/dto"
	"github.com/opticart/checkout/internal/usecase"
)

// CheckoutHandler manages checkout submission endpoints.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Start handles POST /api/checkout.
func (h *CheckoutHandler) Start(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.StartCheckout(
		c.Request.Context(),
		toCartItems(req.Items),
		toCustomer(req.Customer),
		paymentMethod(req.PaymentMethod),
		req.Reference,
	)
	if err != nil {
		var verr *usecase.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: toFieldErrorDTOs(verr.Fields)})
		case errors.Is(err, domainErrors.ErrEmptyCart),
			errors.Is(err, domainErrors.ErrInvalidAmount),
			errors.Is(err, domainErrors.ErrInvalidMethod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrSubmissionInFlight):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	resp := dto.CheckoutResponse{CheckoutID: result.CheckoutID}
	if result.Outcome != nil {
		resp.Outcome = toOutcomeDTO(*result.Outcome)
	}
	if result.Gateway != nil {
		resp.Gateway = toGatewaySessionDTO(*result.Gateway)
	}
	c.JSON(http.StatusOK, resp)
}

// Status handles GET /api/checkout/:id.
func (h *CheckoutHandler) Status(c *gin.Context) {
	id := c.Param("id")
	state, outcome, err := h.facade.CheckoutStatus(id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	resp := dto.CheckoutStatusResponse{CheckoutID: id, State: string(state)}
	if outcome != nil {
		resp.Outcome = toOutcomeDTO(*outcome)
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateDraft handles PUT /api/checkout/draft/:id.
func (h *CheckoutHandler) UpdateDraft(c *gin.Context) {
	var req dto.CustomerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.facade.UpdateDraft(c.Param("id"), toCustomer(req))
	c.Status(http.StatusNoContent)
}

// Draft handles GET /api/checkout/draft/:id.
func (h *CheckoutHandler) Draft(c *gin.Context) {
	details, hint, fields, err := h.facade.Draft(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.DraftResponse{
		Customer: toCustomerDTO(details),
		Hint:     hint,
		Errors:   toFieldErrorDTOs(fields),
	})
}

// Attempts handles GET /api/checkout/attempts.
func (h *CheckoutHandler) Attempts(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	attempts, err := h.facade.Attempts(c.Request.Context(), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		resp = append(resp, dto.AttemptResponse{
			ID:        a.ID,
			Method:    string(a.Method),
			Total:     a.Total,
			State:     string(a.State),
			OrderID:   a.OrderID,
			Reason:    a.Reason,
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
