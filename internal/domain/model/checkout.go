package model

import "time"

// CheckoutState describes the orchestration lifecycle of one submission.
type CheckoutState string

const (
	CheckoutStateIdle            CheckoutState = "IDLE"
	CheckoutStateCreatingOrder   CheckoutState = "CREATING_ORDER"
	CheckoutStateCODConfirmed    CheckoutState = "COD_CONFIRMED"
	CheckoutStateAwaitingGateway CheckoutState = "AWAITING_GATEWAY"
	CheckoutStateVerifying       CheckoutState = "VERIFYING"
	CheckoutStateSucceeded       CheckoutState = "SUCCESS"
	CheckoutStateFailed          CheckoutState = "FAILED"
	CheckoutStateCancelled       CheckoutState = "CANCELLED"
)

// Terminal reports whether no further transition can occur from the state.
func (s CheckoutState) Terminal() bool {
	switch s {
	case CheckoutStateSucceeded, CheckoutStateFailed, CheckoutStateCancelled:
		return true
	}
	return false
}

// CheckoutStatus is the terminal classification of a submission.
type CheckoutStatus string

const (
	CheckoutStatusSuccess   CheckoutStatus = "SUCCESS"
	CheckoutStatusFailed    CheckoutStatus = "FAILED"
	CheckoutStatusCancelled CheckoutStatus = "CANCELLED"
)

// CheckoutOutcome is the terminal value of the whole flow. Created only at
// flow termination and never mutated afterwards.
type CheckoutOutcome struct {
	Status  CheckoutStatus
	OrderID string
	Reason  string
}

// Success builds a SUCCESS outcome for the confirmed order.
func Success(orderID string) CheckoutOutcome {
	return CheckoutOutcome{Status: CheckoutStatusSuccess, OrderID: orderID}
}

// Failed builds a FAILED outcome with an actionable reason.
func Failed(reason string) CheckoutOutcome {
	return CheckoutOutcome{Status: CheckoutStatusFailed, Reason: reason}
}

// Cancelled builds a CANCELLED outcome. Distinct from FAILED: the user
// dismissed the gateway without an error occurring.
func Cancelled() CheckoutOutcome {
	return CheckoutOutcome{Status: CheckoutStatusCancelled}
}

// Invoice is the structured payload handed to the document emitter after a
// successful checkout.
type Invoice struct {
	OrderID  string
	Amount   int64
	Method   PaymentMethod
	Customer CustomerDetails
	Items    []CartItem
	IssuedAt time.Time
}

// CheckoutAttempt is a journal record of one submission.
type CheckoutAttempt struct {
	ID        string
	Method    PaymentMethod
	Total     int64
	State     CheckoutState
	OrderID   string
	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
