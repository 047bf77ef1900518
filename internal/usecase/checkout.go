package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/opticart/checkout/internal/domain/model"
	"github.com/opticart/checkout/internal/gateway"
)

// User-facing failure reasons. Verification failures are worded distinctly
// from gateway failures: a rejected signature indicates potential tampering,
// not a declined card.
const (
	ReasonGatewayUnavailable = "Could not load payment gateway."
	ReasonVerifyServerError  = "verification server error"
	ReasonVerifyRejected     = "payment verification failed"
	ReasonOrderCreateFailed  = "order could not be created"
	ReasonPaymentFailed      = "payment failed"
	ReasonInterrupted        = "checkout interrupted"
)

// OrderService is the backend contract the orchestrator drives.
type OrderService interface {
	CreateOrder(ctx context.Context, req model.OrderCreationRequest, idempotencyKey string) (*model.OrderCreationResult, error)
	VerifyPayment(ctx context.Context, assertion model.PaymentAssertion) (*model.VerificationResult, error)
}

// Submission is one checkout attempt. The reference identifies the attempt
// across the gateway round trip and doubles as the order-create idempotency
// key, so an accidental double-submit cannot create two backend orders.
type Submission struct {
	Reference string
	Cart      []model.CartItem
	Customer  model.CustomerDetails
	Method    model.PaymentMethod
}

// CheckoutUseCase drives one submission through the payment state machine:
//
//	IDLE -> CREATING_ORDER -> {COD_CONFIRMED | AWAITING_GATEWAY}
//	     -> {VERIFYING -> SUCCESS | FAILED} | CANCELLED | FAILED
//
// Every failure is converted into a terminal CheckoutOutcome; nothing
// propagates to the HTTP layer as an unhandled fault.
type CheckoutUseCase struct {
	orders OrderService
	loader gateway.Loader
	gate   gateway.Gateway
	theme  gateway.Theme
	logger *slog.Logger
}

// NewCheckoutUseCase constructs the orchestrator.
func NewCheckoutUseCase(orders OrderService, loader gateway.Loader, gate gateway.Gateway, themeColor string, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{
		orders: orders,
		loader: loader,
		gate:   gate,
		theme:  gateway.Theme{Color: themeColor},
		logger: logger,
	}
}

// Submit runs the state machine to its terminal outcome. The error return
// covers only pre-flight validation (empty cart, bad method); once the
// order-create call is issued every path ends in an outcome. The observe
// hook, when non-nil, sees every state the submission passes through.
func (u *CheckoutUseCase) Submit(ctx context.Context, sub Submission, observe func(model.CheckoutState)) (model.CheckoutOutcome, error) {
	transition := func(s model.CheckoutState) {
		if observe != nil {
			observe(s)
		}
	}

	req, err := BuildOrderRequest(sub.Cart, sub.Customer, sub.Method)
	if err != nil {
		return model.CheckoutOutcome{}, err
	}

	transition(model.CheckoutStateCreatingOrder)
	created, err := u.orders.CreateOrder(ctx, *req, sub.Reference)
	if err != nil {
		u.logger.Error("order creation failed",
			slog.String("checkout", sub.Reference),
			slog.String("error", err.Error()),
		)
		return u.terminate(transition, model.Failed(ReasonOrderCreateFailed)), nil
	}
	if !created.Success {
		reason := created.Message
		if reason == "" {
			reason = ReasonOrderCreateFailed
		}
		return u.terminate(transition, model.Failed(reason)), nil
	}

	if sub.Method == model.PaymentMethodCOD {
		transition(model.CheckoutStateCODConfirmed)
		return u.terminate(transition, model.Success(created.InternalOrderID)), nil
	}

	if !u.loader.EnsureLoaded(ctx) {
		return u.terminate(transition, model.Failed(ReasonGatewayUnavailable)), nil
	}

	transition(model.CheckoutStateAwaitingGateway)
	result, err := u.gate.Open(ctx, gateway.SessionOptions{
		Reference: sub.Reference,
		KeyID:     created.KeyID,
		OrderID:   created.GatewayOrderID,
		Amount:    created.Amount,
		Currency:  created.Currency,
		Prefill: gateway.Prefill{
			Name:    sub.Customer.FullName(),
			Email:   sub.Customer.Email,
			Contact: sub.Customer.Phone,
		},
		Theme: u.theme,
	})
	if err != nil {
		// Session wait timeout means the customer walked away from the
		// gateway without dismissing it; treat it like a dismissal.
		if errors.Is(err, context.DeadlineExceeded) {
			return u.terminate(transition, model.Cancelled()), nil
		}
		return u.terminate(transition, model.Failed(ReasonInterrupted)), nil
	}

	switch result.Kind {
	case gateway.ResultDismissed:
		return u.terminate(transition, model.Cancelled()), nil
	case gateway.ResultFailure:
		reason := result.Reason
		if reason == "" {
			reason = ReasonPaymentFailed
		}
		return u.terminate(transition, model.Failed(reason)), nil
	}

	// Only a success callback reaches verification; the callback alone is
	// never proof of payment until the backend checks the signature.
	transition(model.CheckoutStateVerifying)
	verified, err := u.orders.VerifyPayment(ctx, result.Assertion)
	if err != nil {
		u.logger.Error("payment verification unreachable",
			slog.String("checkout", sub.Reference),
			slog.String("error", err.Error()),
		)
		return u.terminate(transition, model.Failed(ReasonVerifyServerError)), nil
	}
	if !verified.Success {
		return u.terminate(transition, model.Failed(ReasonVerifyRejected)), nil
	}

	return u.terminate(transition, model.Success(verified.OrderID)), nil
}

func (u *CheckoutUseCase) terminate(transition func(model.CheckoutState), outcome model.CheckoutOutcome) model.CheckoutOutcome {
	switch outcome.Status {
	case model.CheckoutStatusSuccess:
		transition(model.CheckoutStateSucceeded)
	case model.CheckoutStatusCancelled:
		transition(model.CheckoutStateCancelled)
	default:
		transition(model.CheckoutStateFailed)
	}
	return outcome
}
