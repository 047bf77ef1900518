package errors

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrNotFound           = errors.New("not found")
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrSessionResolved    = errors.New("gateway session already resolved")
)
