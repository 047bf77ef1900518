package model

// PaymentMethod selects how an order is paid. Immutable once an order-create
// request is in flight.
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "ONLINE"
	PaymentMethodCOD    PaymentMethod = "CASH_ON_DELIVERY"
)

// Valid reports whether the method is one of the supported values.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodOnline || m == PaymentMethodCOD
}

// OrderCreationRequest is the backend order-create payload. Built once per
// submission attempt and never mutated after construction.
type OrderCreationRequest struct {
	Total    int64
	Items    []CartItem
	Method   PaymentMethod
	Customer CustomerDetails
}

// OrderCreationResult mirrors the backend order-create response. On ONLINE
// success it carries the gateway session parameters; on COD success it
// carries the internal order identifier directly.
type OrderCreationResult struct {
	Success         bool
	Message         string
	InternalOrderID string
	GatewayOrderID  string
	Amount          int64
	Currency        string
	KeyID           string
}

// PaymentAssertion is the gateway-issued proof-of-payment tuple. It is opaque
// to this service until the backend verifies the signature.
type PaymentAssertion struct {
	OrderID   string
	PaymentID string
	Signature string
}

// VerificationResult mirrors the backend payment-verify response.
type VerificationResult struct {
	Success bool
	OrderID string
	Message string
}
