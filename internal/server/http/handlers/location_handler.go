package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/opticart/checkout/internal/domain/errors"
	"github.com/opticart/checkout/internal/server/http/dto"
)

// LocationHandler serves postal-code autofill lookups.
type LocationHandler struct {
	facade CheckoutFacade
}

// NewLocationHandler constructs LocationHandler.
func NewLocationHandler(facade CheckoutFacade) *LocationHandler {
	return &LocationHandler{facade: facade}
}

// Lookup handles GET /api/location/:code.
func (h *LocationHandler) Lookup(c *gin.Context) {
	loc, err := h.facade.LookupLocation(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, dto.LocationResponse{City: loc.City, State: loc.State})
}
