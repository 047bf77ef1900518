package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/opticart/checkout/internal/adapter/location"
	domainErrors "github.com/opticart/checkout/internal/domain/errors"
	"github.com/opticart/checkout/internal/domain/model"
)

// HintManualEntry is surfaced when the postal-code lookup cannot resolve a
// location. Lookup failure is never fatal to checkout.
const HintManualEntry = "could not look up postal code, please enter city and state manually"

const defaultDebounce = 400 * time.Millisecond

// CheckoutForm accumulates customer details while the user is still typing.
// When the postal code reaches 6 digits it schedules a debounced lookup and
// autofills city and state from the result. One form per checkout draft; no
// state is shared between forms.
type CheckoutForm struct {
	lookup   location.Lookup
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	details model.CustomerDetails
	hint    string
	timer   *time.Timer
	pending string
}

// NewCheckoutForm constructs a form with the given lookup collaborator.
// A non-positive debounce falls back to the default.
func NewCheckoutForm(lookup location.Lookup, debounce time.Duration, logger *slog.Logger) *CheckoutForm {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &CheckoutForm{lookup: lookup, debounce: debounce, logger: logger}
}

// Update replaces the form's details. A postal code reaching 6 digits
// triggers the address lookup after the debounce window; edits inside the
// window reset the timer so only the final code is looked up.
func (f *CheckoutForm) Update(details model.CustomerDetails) {
	f.mu.Lock()
	defer f.mu.Unlock()

	previous := f.details.PostalCode
	f.details = details

	code := details.PostalCode
	if code == previous {
		return
	}
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
		f.pending = ""
	}
	if len(code) != 6 || !allDigits(code) {
		return
	}

	f.pending = code
	f.timer = time.AfterFunc(f.debounce, func() {
		f.resolve(code)
	})
}

// Snapshot returns the current details and any lookup hint.
func (f *CheckoutForm) Snapshot() (model.CustomerDetails, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.details, f.hint
}

// Validate checks the current details for submission readiness.
func (f *CheckoutForm) Validate() *ValidationError {
	f.mu.Lock()
	details := f.details
	f.mu.Unlock()
	return ValidateDetails(details)
}

// Flush cancels any pending lookup timer and runs the lookup immediately.
func (f *CheckoutForm) Flush() {
	f.mu.Lock()
	code := f.pending
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.pending = ""
	f.mu.Unlock()

	if code != "" {
		f.resolve(code)
	}
}

func (f *CheckoutForm) resolve(code string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loc, err := f.lookup.Resolve(ctx, code)

	f.mu.Lock()
	defer f.mu.Unlock()

	// The user may have edited the code again while the lookup ran.
	if f.details.PostalCode != code {
		return
	}
	f.pending = ""

	if err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			f.logger.Warn("postal code lookup failed",
				slog.String("code", code),
				slog.String("error", err.Error()),
			)
		}
		f.hint = HintManualEntry
		return
	}

	f.details.City = loc.City
	f.details.State = loc.State
	f.hint = ""
}
