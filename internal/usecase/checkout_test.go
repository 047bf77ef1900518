package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/opticart/checkout/internal/domain/model"
	"github.com/opticart/checkout/internal/gateway"
	"github.com/opticart/checkout/internal/test"
)

func newCheckout(orders *test.OrderServiceStub, loader *test.LoaderStub, gate *test.GatewayStub) *CheckoutUseCase {
	return NewCheckoutUseCase(orders, loader, gate, "#10847e", test.Logger())
}

func submission(method model.PaymentMethod) Submission {
	return Submission{
		Reference: "chk-1",
		Cart:      test.Cart(),
		Customer:  test.Customer(),
		Method:    method,
	}
}

func TestSubmitCODSkipsGateway(t *testing.T) {
	orders := &test.OrderServiceStub{
		CreateFn: func(_ context.Context, _ model.OrderCreationRequest, _ string) (*model.OrderCreationResult, error) {
			return &model.OrderCreationResult{Success: true, InternalOrderID: "ORD123"}, nil
		},
	}
	loader := &test.LoaderStub{Loaded: true}
	gate := &test.GatewayStub{}

	var states []model.CheckoutState
	outcome, err := newCheckout(orders, loader, gate).Submit(context.Background(), submission(model.PaymentMethodCOD), func(s model.CheckoutState) {
		states = append(states, s)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != model.CheckoutStatusSuccess || outcome.OrderID != "ORD123" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if loader.CallCount() != 0 {
		t.Fatal("loader must not run for cash on delivery")
	}
	if gate.OpenCount() != 0 {
		t.Fatal("gateway must not open for cash on delivery")
	}
	if orders.VerifyCount() != 0 {
		t.Fatal("verification must not run for cash on delivery")
	}
	want := []model.CheckoutState{
		model.CheckoutStateCreatingOrder,
		model.CheckoutStateCODConfirmed,
		model.CheckoutStateSucceeded,
	}
	if len(states) != len(want) {
		t.Fatalf("unexpected states %v", states)
	}
	for i, s := range want {
		if states[i] != s {
			t.Fatalf("state %d: got %s, want %s", i, states[i], s)
		}
	}
}

func TestSubmitOnlineSuccess(t *testing.T) {
	orders := &test.OrderServiceStub{
		CreateFn: func(_ context.Context, _ model.OrderCreationRequest, _ string) (*model.OrderCreationResult, error) {
			return &model.OrderCreationResult{
				Success:        true,
				GatewayOrderID: "order_x1",
				Amount:         249900,
				Currency:       "INR",
				KeyID:          "rzp_test_key",
			}, nil
		},
		VerifyFn: func(_ context.Context, assertion model.PaymentAssertion) (*model.VerificationResult, error) {
			if assertion.PaymentID != "pay_9" {
				return nil, errors.New("unexpected assertion")
			}
			return &model.VerificationResult{Success: true, OrderID: "ORD456"}, nil
		},
	}
	loader := &test.LoaderStub{Loaded: true}
	gate := &test.GatewayStub{
		Result: gateway.Result{
			Kind: gateway.ResultSuccess,
			Assertion: model.PaymentAssertion{
				OrderID:   "order_x1",
				PaymentID: "pay_9",
				Signature: "sig",
			},
		},
	}

	outcome, err := newCheckout(orders, loader, gate).Submit(context.Background(), submission(model.PaymentMethodOnline), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != model.CheckoutStatusSuccess || outcome.OrderID != "ORD456" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if loader.CallCount() != 1 {
		t.Fatalf("loader calls = %d, want 1", loader.CallCount())
	}
	if len(gate.Opens) != 1 {
		t.Fatalf("gateway opens = %d, want 1", len(gate.Opens))
	}
	opts := gate.Opens[0]
	if opts.OrderID != "order_x1" || opts.KeyID != "rzp_test_key" || opts.Amount != 249900 || opts.Currency != "INR" {
		t.Fatalf("unexpected session options %+v", opts)
	}
	if opts.Prefill.Name != "Asha Nair" || opts.Prefill.Contact != "9876543210" {
		t.Fatalf("unexpected prefill %+v", opts.Prefill)
	}
	if opts.Theme.Color != "#10847e" {
		t.Fatalf("unexpected theme %+v", opts.Theme)
	}
}

func TestSubmitOnlineLoaderFailure(t *testing.T) {
	orders := &test.OrderServiceStub{}
	loader := &test.LoaderStub{Loaded: false}
	gate := &test.GatewayStub{}

	outcome, err := newCheckout(orders, loader, gate).Submit(context.Background(), submission(model.PaymentMethodOnline), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != model.CheckoutStatusFailed {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if outcome.Reason != ReasonGatewayUnavailable {
		t.Fatalf("reason = %q, want %q", outcome.Reason, ReasonGatewayUnavailable)
	}
	if gate.OpenCount() != 0 {
		t.Fatal("gateway must not open when the script is unavailable")
	}
}

func TestSubmitOrderCreateTransportError(t *testing.T) {
	orders := &test.OrderServiceStub{
		CreateFn: func(context.Context, model.OrderCreationRequest, string) (*model.OrderCreationResult, error) {
			return nil, errors.New("connection refused")
		},
	}
	loader := &test.LoaderStub{Loaded: true}
	gate := &test.GatewayStub{}

	outcome, err := newCheckout(orders, loader, gate).Submit(context.Background(), submission(model.PaymentMethodOnline), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != model.CheckoutStatusFailed || outcome.Reason != ReasonOrderCreateFailed {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if loader.CallCount() != 0 {
		t.Fatal("loader must not run after a failed order create")
	}
}

func TestSubmitOrderCreateBusinessRefusal(t *testing.T) {
	orders := &test.OrderServiceStub{
		CreateFn: func(context.Context, model.OrderCreationRequest, string) (*model.OrderCreationResult, error) {
			return &model.OrderCreationResult{Success: false, Message: "item out of stock"}, nil
		},
	}

	outcome, err := newCheckout(orders, &test.LoaderStub{Loaded: true}, &test.GatewayStub{}).Submit(context.Background(), submission(model.PaymentMethodOnline), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != model.CheckoutStatusFailed || outcome.Reason != "item out of stock" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestSubmitDismissCancels(t *testing.T) {
	orders := &test.OrderServiceStub{
		CreateFn: func(context.Context, model.OrderCreationRequest, string) (*model.OrderCreationResult, error) {
			return &model.OrderCreationResult{Success: true, GatewayOrderID: "order_x1", KeyID: "k"}, nil
		},
	}
	gate := &test.GatewayStub{Result: gateway.Result{Kind: gateway.ResultDismissed}}

	outcome, err := newCheckout(orders, &test.LoaderStub{Loaded: true}, gate).Submit(context.Background(), submission(model.PaymentMethodOnline), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != model.CheckoutStatusCancelled {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if outcome.Reason != "" || outcome.OrderID != "" {
		t.Fatalf("cancellation must carry no reason or order, got %+v", outcome)
	}
	if orders.VerifyCount() != 0 {
		t.Fatal("verification must not run after a dismissal")
	}
}

func TestSubmitGatewayFailureCallback(t *testing.T) {
	orders := &test.OrderServiceStub{
		CreateFn: func(context.Context, model.OrderCreationRequest, string) (*model.OrderCreationResult, error) {
			return &model.OrderCreationResult{Success: true, GatewayOrderID: "order_x1", KeyID: "k"}, nil
		},
	}
	gate := &test.GatewayStub{Result: gateway.Result{Kind: gateway.ResultFailure, Reason: "card declined"}}

	outcome, err := newCheckout(orders, &test.LoaderStub{Loaded: true}, gate).Submit(context.Background(), submission(model.PaymentMethodOnline), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != model.CheckoutStatusFailed || outcome.Reason != "card declined" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if orders.VerifyCount() != 0 {
		t.Fatal("verification must not run after a failure callback")
	}
}

func TestSubmitGatewayTimeoutCancels(t *testing.T) {
	orders := &test.OrderServiceStub{
		CreateFn: func(context.Context, model.OrderCreationRequest, string) (*model.OrderCreationResult, error) {
			return &model.OrderCreationResult{Success: true, GatewayOrderID: "order_x1", KeyID: "k"}, nil
		},
	}
	gate := &test.GatewayStub{Err: context.DeadlineExceeded}

	outcome, err := newCheckout(orders, &test.LoaderStub{Loaded: true}, gate).Submit(context.Background(), submission(model.PaymentMethodOnline), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != model.CheckoutStatusCancelled {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestSubmitVerifyRejected(t *testing.T) {
	orders := &test.OrderServiceStub{
		CreateFn: func(context.Context, model.OrderCreationRequest, string) (*model.OrderCreationResult, error) {
			return &model.OrderCreationResult{Success: true, GatewayOrderID: "order_x1", KeyID: "k"}, nil
		},
		VerifyFn: func(context.Context, model.PaymentAssertion) (*model.VerificationResult, error) {
			return &model.VerificationResult{Success: false, Message: "signature mismatch"}, nil
		},
	}
	gate := &test.GatewayStub{
		Result: gateway.Result{Kind: gateway.ResultSuccess, Assertion: model.PaymentAssertion{OrderID: "order_x1", PaymentID: "pay_9", Signature: "bad"}},
	}

	outcome, err := newCheckout(orders, &test.LoaderStub{Loaded: true}, gate).Submit(context.Background(), submission(model.PaymentMethodOnline), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != model.CheckoutStatusFailed || outcome.Reason != ReasonVerifyRejected {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestSubmitVerifyServerError(t *testing.T) {
	orders := &test.OrderServiceStub{
		CreateFn: func(context.Context, model.OrderCreationRequest, string) (*model.OrderCreationResult, error) {
			return &model.OrderCreationResult{Success: true, GatewayOrderID: "order_x1", KeyID: "k"}, nil
		},
		VerifyFn: func(context.Context, model.PaymentAssertion) (*model.VerificationResult, error) {
			return nil, errors.New("502 bad gateway")
		},
	}
	gate := &test.GatewayStub{
		Result: gateway.Result{Kind: gateway.ResultSuccess, Assertion: model.PaymentAssertion{OrderID: "order_x1", PaymentID: "pay_9", Signature: "sig"}},
	}

	outcome, err := newCheckout(orders, &test.LoaderStub{Loaded: true}, gate).Submit(context.Background(), submission(model.PaymentMethodOnline), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != model.CheckoutStatusFailed || outcome.Reason != ReasonVerifyServerError {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestSubmitPassesIdempotencyKey(t *testing.T) {
	orders := &test.OrderServiceStub{}

	_, err := newCheckout(orders, &test.LoaderStub{Loaded: true}, &test.GatewayStub{}).Submit(context.Background(), submission(model.PaymentMethodCOD), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders.CreateKeys) != 1 || orders.CreateKeys[0] != "chk-1" {
		t.Fatalf("unexpected idempotency keys %v", orders.CreateKeys)
	}
}

func TestSubmitRejectsInvalidInputBeforeAnyCall(t *testing.T) {
	orders := &test.OrderServiceStub{}
	sub := submission(model.PaymentMethodOnline)
	sub.Cart = nil

	_, err := newCheckout(orders, &test.LoaderStub{Loaded: true}, &test.GatewayStub{}).Submit(context.Background(), sub, nil)
	if err == nil {
		t.Fatal("expected a pre-flight error")
	}
	if len(orders.CreateCalls) != 0 {
		t.Fatal("order create must not run for an invalid submission")
	}
}

func TestSubmitOnlineStateSequence(t *testing.T) {
	orders := &test.OrderServiceStub{
		CreateFn: func(context.Context, model.OrderCreationRequest, string) (*model.OrderCreationResult, error) {
			return &model.OrderCreationResult{Success: true, GatewayOrderID: "order_x1", KeyID: "k"}, nil
		},
		VerifyFn: func(context.Context, model.PaymentAssertion) (*model.VerificationResult, error) {
			return &model.VerificationResult{Success: true, OrderID: "ORD456"}, nil
		},
	}
	gate := &test.GatewayStub{
		Result: gateway.Result{Kind: gateway.ResultSuccess, Assertion: model.PaymentAssertion{OrderID: "order_x1", PaymentID: "pay_9", Signature: "sig"}},
	}

	var states []model.CheckoutState
	_, err := newCheckout(orders, &test.LoaderStub{Loaded: true}, gate).Submit(context.Background(), submission(model.PaymentMethodOnline), func(s model.CheckoutState) {
		states = append(states, s)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.CheckoutState{
		model.CheckoutStateCreatingOrder,
		model.CheckoutStateAwaitingGateway,
		model.CheckoutStateVerifying,
		model.CheckoutStateSucceeded,
	}
	if len(states) != len(want) {
		t.Fatalf("unexpected states %v", states)
	}
	for i, s := range want {
		if states[i] != s {
			t.Fatalf("state %d: got %s, want %s", i, states[i], s)
		}
	}
}
