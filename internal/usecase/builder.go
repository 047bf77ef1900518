package usecase

import (
	domainErrors "github.com/opticart/checkout/internal/domain/errors"
	"github.com/opticart/checkout/internal/domain/model"
)

// BuildOrderRequest normalises cart and customer input into the backend
// order-creation payload. Pure: no I/O, no mutation of inputs. The total is
// always re-derived from the line items rather than trusted from the caller.
func BuildOrderRequest(cart []model.CartItem, customer model.CustomerDetails, method model.PaymentMethod) (*model.OrderCreationRequest, error) {
	if len(cart) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}
	if !method.Valid() {
		return nil, domainErrors.ErrInvalidMethod
	}

	// Lines are checked individually: a negative quantity or negative line
	// total must not offset other lines into a plausible aggregate.
	for _, item := range cart {
		if item.Quantity < 1 || item.LineTotal() < 0 {
			return nil, domainErrors.ErrInvalidAmount
		}
	}

	items := make([]model.CartItem, len(cart))
	copy(items, cart)

	total := model.CartTotal(items)
	if total <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	return &model.OrderCreationRequest{
		Total:    total,
		Items:    items,
		Method:   method,
		Customer: customer,
	}, nil
}
