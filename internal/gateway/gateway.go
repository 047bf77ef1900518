// Package gateway abstracts the third-party hosted payment UI. The gateway
// is an injected capability: the orchestrator opens a session and suspends
// until exactly one of three outcomes arrives (payment assertion, gateway
// failure, user dismissal).
package gateway

import (
	"context"

	"github.com/opticart/checkout/internal/domain/model"
)

// ResultKind tags the single-shot outcome of a gateway session.
type ResultKind int

const (
	// ResultSuccess carries the payment assertion from the success callback.
	ResultSuccess ResultKind = iota
	// ResultFailure carries the gateway's error description.
	ResultFailure
	// ResultDismissed means the user closed the gateway without paying.
	ResultDismissed
)

// Result is the tagged outcome of one gateway session.
type Result struct {
	Kind      ResultKind
	Assertion model.PaymentAssertion
	Reason    string
}

// Prefill seeds the gateway form with customer contact details.
type Prefill struct {
	Name    string
	Email   string
	Contact string
}

// Theme customises the gateway UI.
type Theme struct {
	Color string
}

// SessionOptions parameterise one gateway session. All monetary and identity
// fields come from the backend order-create response, never from the cart.
type SessionOptions struct {
	Reference string
	KeyID     string
	OrderID   string
	Amount    int64
	Currency  string
	Prefill   Prefill
	Theme     Theme
}

// Gateway opens a payment session and blocks until it resolves. Exactly one
// Result is produced per Open call; a non-nil error means the session ended
// without any gateway event (timeout or shutdown).
type Gateway interface {
	Open(ctx context.Context, opts SessionOptions) (Result, error)
}

// Loader ensures the gateway client resource is available. Implementations
// must be idempotent: at most one successful fetch per process lifetime.
type Loader interface {
	EnsureLoaded(ctx context.Context) bool
}
