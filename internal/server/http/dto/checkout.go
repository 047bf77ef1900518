package dto

import "time"

// AddOnDTO is an optional product extra on a cart line.
type AddOnDTO struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// CartItemDTO is one cart line of a checkout request.
type CartItemDTO struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unitPrice"`
	Quantity  int64     `json:"quantity"`
	AddOn     *AddOnDTO `json:"addOn,omitempty"`
}

// CustomerDTO carries the checkout form fields.
type CustomerDTO struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// CheckoutRequest starts a submission. Reference is optional; the server
// assigns one when absent.
type CheckoutRequest struct {
	Reference     string        `json:"reference,omitempty"`
	Items         []CartItemDTO `json:"items"`
	Customer      CustomerDTO   `json:"customer"`
	PaymentMethod string        `json:"paymentMethod"`
}

// GatewaySessionDTO hands the hosted-gateway parameters to the UI.
type GatewaySessionDTO struct {
	KeyID    string `json:"key"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	OrderID  string `json:"orderId"`
	Prefill  struct {
		Name    string `json:"name"`
		Email   string `json:"email,omitempty"`
		Contact string `json:"contact"`
	} `json:"prefill"`
	Theme struct {
		Color string `json:"color"`
	} `json:"theme"`
}

// OutcomeDTO is the terminal result of a submission.
type OutcomeDTO struct {
	Status  string `json:"status"`
	OrderID string `json:"orderId,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// CheckoutResponse is returned by POST /api/checkout: either Outcome or
// Gateway is set, never both.
type CheckoutResponse struct {
	CheckoutID string             `json:"checkoutId"`
	Outcome    *OutcomeDTO        `json:"outcome,omitempty"`
	Gateway    *GatewaySessionDTO `json:"gateway,omitempty"`
}

// CheckoutStatusResponse reports the live state of a submission.
type CheckoutStatusResponse struct {
	CheckoutID string      `json:"checkoutId"`
	State      string      `json:"state"`
	Outcome    *OutcomeDTO `json:"outcome,omitempty"`
}

// GatewaySuccessRequest mirrors the gateway success callback payload.
type GatewaySuccessRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// GatewayFailureRequest mirrors the gateway failure callback payload.
type GatewayFailureRequest struct {
	Reason string `json:"reason"`
}

// FieldErrorDTO names one invalid form field.
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse lists all invalid fields of a request.
type ValidationErrorResponse struct {
	Errors []FieldErrorDTO `json:"errors"`
}

// DraftResponse returns the current draft details and autofill status.
type DraftResponse struct {
	Customer CustomerDTO     `json:"customer"`
	Hint     string          `json:"hint,omitempty"`
	Errors   []FieldErrorDTO `json:"errors,omitempty"`
}

// LocationResponse is the postal-code lookup result.
type LocationResponse struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// AttemptResponse is one journal entry.
type AttemptResponse struct {
	ID        string    `json:"id"`
	Method    string    `json:"paymentMethod"`
	Total     int64     `json:"total"`
	State     string    `json:"state"`
	OrderID   string    `json:"orderId,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
