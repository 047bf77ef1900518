package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/opticart/checkout/internal/adapter/location"
	domainErrors "github.com/opticart/checkout/internal/domain/errors"
	"github.com/opticart/checkout/internal/domain/model"
	"github.com/opticart/checkout/internal/domain/repository"
	"github.com/opticart/checkout/internal/gateway"
	"github.com/opticart/checkout/internal/usecase"
)

// InvoiceQueue accepts invoices for asynchronous rendering.
type InvoiceQueue interface {
	Enqueue(invoice model.Invoice)
}

// StartResult is what a checkout submission returns to the UI: either the
// terminal outcome (COD, early failure) or the gateway session parameters
// when the flow suspended in AWAITING_GATEWAY.
type StartResult struct {
	CheckoutID string
	Outcome    *model.CheckoutOutcome
	Gateway    *gateway.SessionOptions
}

// CheckoutFacade coordinates concurrent checkout submissions: it enforces
// the single-flight rule per checkout reference, runs the orchestrator in
// the background across the gateway round trip, journals attempts, and
// feeds successful orders to the invoice queue. No state survives a
// submission beyond its journal record; a fresh attempt under the same
// reference discards the prior terminal entry.
type CheckoutFacade struct {
	appCtx       context.Context
	checkout     *usecase.CheckoutUseCase
	bridge       *gateway.CallbackBridge
	journal      repository.AttemptJournal
	invoices     InvoiceQueue
	lookup       location.Lookup
	waitTimeout  time.Duration
	formDebounce time.Duration
	logger       *slog.Logger

	mu    sync.Mutex
	subs  map[string]*submission
	forms map[string]*usecase.CheckoutForm
}

type submission struct {
	mu      sync.Mutex
	state   model.CheckoutState
	outcome model.CheckoutOutcome
	done    chan struct{}
}

func newSubmission() *submission {
	return &submission{state: model.CheckoutStateIdle, done: make(chan struct{})}
}

func (s *submission) setState(state model.CheckoutState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *submission) finish(outcome model.CheckoutOutcome) {
	s.mu.Lock()
	s.outcome = outcome
	s.mu.Unlock()
	close(s.done)
}

func (s *submission) snapshot() (model.CheckoutState, *model.CheckoutOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		outcome := s.outcome
		return s.state, &outcome
	default:
		return s.state, nil
	}
}

// NewCheckoutFacade constructs the facade.
func NewCheckoutFacade(
	appCtx context.Context,
	checkout *usecase.CheckoutUseCase,
	bridge *gateway.CallbackBridge,
	journal repository.AttemptJournal,
	invoices InvoiceQueue,
	lookup location.Lookup,
	waitTimeout, formDebounce time.Duration,
	logger *slog.Logger,
) *CheckoutFacade {
	return &CheckoutFacade{
		appCtx:       appCtx,
		checkout:     checkout,
		bridge:       bridge,
		journal:      journal,
		invoices:     invoices,
		lookup:       lookup,
		waitTimeout:  waitTimeout,
		formDebounce: formDebounce,
		logger:       logger,
		subs:         make(map[string]*submission),
		forms:        make(map[string]*usecase.CheckoutForm),
	}
}

// StartCheckout validates the input and launches one submission. It returns
// when the flow either terminates or suspends waiting for the gateway.
func (f *CheckoutFacade) StartCheckout(ctx context.Context, cart []model.CartItem, customer model.CustomerDetails, method model.PaymentMethod, reference string) (StartResult, error) {
	if verr := usecase.ValidateDetails(customer); verr != nil {
		return StartResult{}, verr
	}
	// Fail fast on cart problems so an invalid attempt never registers.
	if _, err := usecase.BuildOrderRequest(cart, customer, method); err != nil {
		return StartResult{}, err
	}

	id := reference
	if id == "" {
		id = uuid.NewString()
	}

	sub := newSubmission()
	f.mu.Lock()
	if existing, ok := f.subs[id]; ok {
		if _, outcome := existing.snapshot(); outcome == nil {
			f.mu.Unlock()
			return StartResult{}, domainErrors.ErrSubmissionInFlight
		}
	}
	f.subs[id] = sub
	delete(f.forms, id)
	f.mu.Unlock()

	if err := f.journal.RecordSubmission(ctx, id, method, model.CartTotal(cart)); err != nil {
		f.logger.Warn("journal submission failed", slog.String("checkout", id), slog.String("error", err.Error()))
	}

	runCtx, cancelRun := context.WithTimeout(f.appCtx, f.waitTimeout)
	go f.run(runCtx, cancelRun, id, sub, usecase.Submission{
		Reference: id,
		Cart:      cart,
		Customer:  customer,
		Method:    method,
	})

	waitCtx, cancelWait := context.WithCancel(ctx)
	defer cancelWait()

	opened := make(chan gateway.SessionOptions, 1)
	go func() {
		if opts, err := f.bridge.WaitForSession(waitCtx, id); err == nil {
			opened <- opts
		}
	}()

	select {
	case <-sub.done:
		_, outcome := sub.snapshot()
		return StartResult{CheckoutID: id, Outcome: outcome}, nil
	case opts := <-opened:
		return StartResult{CheckoutID: id, Gateway: &opts}, nil
	case <-ctx.Done():
		return StartResult{}, ctx.Err()
	}
}

func (f *CheckoutFacade) run(ctx context.Context, cancel context.CancelFunc, id string, sub *submission, s usecase.Submission) {
	defer cancel()

	outcome, err := f.checkout.Submit(ctx, s, sub.setState)
	if err != nil {
		// Validation was done up front, so this is a programming error; keep
		// the submission terminal instead of leaving it dangling.
		f.logger.Error("checkout submit rejected", slog.String("checkout", id), slog.String("error", err.Error()))
		outcome = model.Failed(usecase.ReasonOrderCreateFailed)
	}
	sub.finish(outcome)

	journalCtx, cancelJournal := context.WithTimeout(context.WithoutCancel(f.appCtx), 5*time.Second)
	defer cancelJournal()
	if err := f.journal.RecordOutcome(journalCtx, id, outcome); err != nil {
		f.logger.Warn("journal outcome failed", slog.String("checkout", id), slog.String("error", err.Error()))
	}

	if outcome.Status == model.CheckoutStatusSuccess {
		f.invoices.Enqueue(model.Invoice{
			OrderID:  outcome.OrderID,
			Amount:   model.CartTotal(s.Cart),
			Method:   s.Method,
			Customer: s.Customer,
			Items:    s.Cart,
			IssuedAt: time.Now().UTC(),
		})
	}

	f.logger.Info("checkout finished",
		slog.String("checkout", id),
		slog.String("status", string(outcome.Status)),
		slog.String("order", outcome.OrderID),
	)
}

// ResolveGateway bridges one gateway callback into the suspended submission
// and waits for the resulting terminal outcome.
func (f *CheckoutFacade) ResolveGateway(ctx context.Context, id string, result gateway.Result) (model.CheckoutOutcome, error) {
	f.mu.Lock()
	sub, ok := f.subs[id]
	f.mu.Unlock()
	if !ok {
		return model.CheckoutOutcome{}, domainErrors.ErrNotFound
	}

	if err := f.bridge.Deliver(id, result); err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			return model.CheckoutOutcome{}, err
		}
		// The session is already gone, so the wait timeout (or a COD flow)
		// won the race. The checkout still exists; report its terminal
		// outcome instead of an unknown reference.
	}

	return awaitOutcome(ctx, sub)
}

func awaitOutcome(ctx context.Context, sub *submission) (model.CheckoutOutcome, error) {
	select {
	case <-sub.done:
		_, outcome := sub.snapshot()
		return *outcome, nil
	case <-ctx.Done():
		return model.CheckoutOutcome{}, ctx.Err()
	}
}

// CheckoutStatus reports the current state and, when terminal, the outcome.
func (f *CheckoutFacade) CheckoutStatus(id string) (model.CheckoutState, *model.CheckoutOutcome, error) {
	f.mu.Lock()
	sub, ok := f.subs[id]
	f.mu.Unlock()
	if !ok {
		return "", nil, domainErrors.ErrNotFound
	}
	state, outcome := sub.snapshot()
	return state, outcome, nil
}

// UpdateDraft applies customer details to the draft form for a checkout.
func (f *CheckoutFacade) UpdateDraft(id string, details model.CustomerDetails) {
	f.mu.Lock()
	form, ok := f.forms[id]
	if !ok {
		form = usecase.NewCheckoutForm(f.lookup, f.formDebounce, f.logger)
		f.forms[id] = form
	}
	f.mu.Unlock()

	form.Update(details)
}

// Draft returns the draft details, any lookup hint, and outstanding field
// errors.
func (f *CheckoutFacade) Draft(id string) (model.CustomerDetails, string, []usecase.FieldError, error) {
	f.mu.Lock()
	form, ok := f.forms[id]
	f.mu.Unlock()
	if !ok {
		return model.CustomerDetails{}, "", nil, domainErrors.ErrNotFound
	}

	details, hint := form.Snapshot()
	var fields []usecase.FieldError
	if verr := form.Validate(); verr != nil {
		fields = verr.Fields
	}
	return details, hint, fields, nil
}

// LookupLocation resolves a postal code for UI autofill.
func (f *CheckoutFacade) LookupLocation(ctx context.Context, code string) (*model.Location, error) {
	return f.lookup.Resolve(ctx, code)
}

// Attempts lists recent journal entries.
func (f *CheckoutFacade) Attempts(ctx context.Context, limit int) ([]model.CheckoutAttempt, error) {
	return f.journal.ListRecent(ctx, limit)
}
