package handlers

import (
	"context"

	"github.com/opticart/checkout/internal/app"
	"github.com/opticart/checkout/internal/domain/model"
	"github.com/opticart/checkout/internal/gateway"
	"github.com/opticart/checkout/internal/usecase"
)

// CheckoutFacade aggregates the operations exposed via HTTP.
type CheckoutFacade interface {
	StartCheckout(ctx context.Context, cart []model.CartItem, customer model.CustomerDetails, method model.PaymentMethod, reference string) (app.StartResult, error)
	ResolveGateway(ctx context.Context, id string, result gateway.Result) (model.CheckoutOutcome, error)
	CheckoutStatus(id string) (model.CheckoutState, *model.CheckoutOutcome, error)
	UpdateDraft(id string, details model.CustomerDetails)
	Draft(id string) (model.CustomerDetails, string, []usecase.FieldError, error)
	LookupLocation(ctx context.Context, code string) (*model.Location, error)
	Attempts(ctx context.Context, limit int) ([]model.CheckoutAttempt, error)
}
