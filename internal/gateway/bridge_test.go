package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/opticart/checkout/internal/domain/errors"
	"github.com/opticart/checkout/internal/domain/model"
)

func TestBridgeDeliversResultToOpen(t *testing.T) {
	bridge := NewCallbackBridge()

	done := make(chan struct{})
	var got Result
	var openErr error
	go func() {
		defer close(done)
		got, openErr = bridge.Open(context.Background(), SessionOptions{Reference: "chk-1"})
	}()

	// Wait until the session is registered before delivering.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := bridge.WaitForSession(ctx, "chk-1"); err != nil {
		t.Fatalf("session never opened: %v", err)
	}

	want := Result{Kind: ResultSuccess, Assertion: model.PaymentAssertion{OrderID: "order_x1", PaymentID: "pay_9", Signature: "sig"}}
	if err := bridge.Deliver("chk-1", want); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	<-done
	if openErr != nil {
		t.Fatalf("open returned error: %v", openErr)
	}
	if got.Kind != ResultSuccess || got.Assertion.PaymentID != "pay_9" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestBridgeSecondDeliveryRejected(t *testing.T) {
	bridge := NewCallbackBridge()

	opened := make(chan struct{})
	release := make(chan struct{})
	go func() {
		close(opened)
		_, _ = bridge.Open(context.Background(), SessionOptions{Reference: "chk-1"})
		close(release)
	}()
	<-opened

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := bridge.WaitForSession(ctx, "chk-1"); err != nil {
		t.Fatalf("session never opened: %v", err)
	}

	if err := bridge.Deliver("chk-1", Result{Kind: ResultDismissed}); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	err := bridge.Deliver("chk-1", Result{Kind: ResultFailure, Reason: "late"})
	if err == nil {
		t.Fatal("second delivery must be rejected")
	}
	if !errors.Is(err, domainErrors.ErrSessionResolved) && !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("unexpected error %v", err)
	}
	<-release
}

func TestBridgeDeliverUnknownReference(t *testing.T) {
	bridge := NewCallbackBridge()
	if err := bridge.Deliver("ghost", Result{Kind: ResultDismissed}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestBridgeOpenRespectsContext(t *testing.T) {
	bridge := NewCallbackBridge()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := bridge.Open(ctx, SessionOptions{Reference: "chk-1"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("unexpected error %v", err)
	}

	// The session must be gone after Open returns.
	if err := bridge.Deliver("chk-1", Result{Kind: ResultDismissed}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestBridgeRejectsDuplicateReference(t *testing.T) {
	bridge := NewCallbackBridge()

	go func() {
		_, _ = bridge.Open(context.Background(), SessionOptions{Reference: "chk-1"})
	}()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := bridge.WaitForSession(ctx, "chk-1"); err != nil {
		t.Fatalf("session never opened: %v", err)
	}

	_, err := bridge.Open(context.Background(), SessionOptions{Reference: "chk-1"})
	if !errors.Is(err, domainErrors.ErrSubmissionInFlight) {
		t.Fatalf("unexpected error %v", err)
	}

	if err := bridge.Deliver("chk-1", Result{Kind: ResultDismissed}); err != nil {
		t.Fatalf("cleanup delivery failed: %v", err)
	}
}

func TestBridgeWaitForSessionReturnsOptions(t *testing.T) {
	bridge := NewCallbackBridge()

	go func() {
		_, _ = bridge.Open(context.Background(), SessionOptions{
			Reference: "chk-1",
			KeyID:     "rzp_test_key",
			OrderID:   "order_x1",
			Amount:    249900,
			Currency:  "INR",
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	opts, err := bridge.WaitForSession(ctx, "chk-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.KeyID != "rzp_test_key" || opts.OrderID != "order_x1" || opts.Amount != 249900 {
		t.Fatalf("unexpected options %+v", opts)
	}

	if err := bridge.Deliver("chk-1", Result{Kind: ResultDismissed}); err != nil {
		t.Fatalf("cleanup delivery failed: %v", err)
	}
}

func TestBridgeWaitForSessionContextCancelled(t *testing.T) {
	bridge := NewCallbackBridge()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := bridge.WaitForSession(ctx, "never"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("unexpected error %v", err)
	}
}
