package test

import (
	"context"
	"sync"

	"github.com/opticart/checkout/internal/domain/model"
	"github.com/opticart/checkout/internal/gateway"
)

// OrderServiceStub provides controllable behaviour for the backend order
// endpoints. It records calls so tests can assert ordering invariants, e.g.
// that verify never runs before a gateway success callback.
type OrderServiceStub struct {
	CreateFn func(context.Context, model.OrderCreationRequest, string) (*model.OrderCreationResult, error)
	VerifyFn func(context.Context, model.PaymentAssertion) (*model.VerificationResult, error)

	mu          sync.Mutex
	CreateCalls []model.OrderCreationRequest
	CreateKeys  []string
	VerifyCalls []model.PaymentAssertion
}

// CreateOrder delegates to CreateFn or reports a COD success by default.
func (s *OrderServiceStub) CreateOrder(ctx context.Context, req model.OrderCreationRequest, idempotencyKey string) (*model.OrderCreationResult, error) {
	s.mu.Lock()
	s.CreateCalls = append(s.CreateCalls, req)
	s.CreateKeys = append(s.CreateKeys, idempotencyKey)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req, idempotencyKey)
	}
	return &model.OrderCreationResult{Success: true, InternalOrderID: "ORD1"}, nil
}

// VerifyPayment delegates to VerifyFn or accepts the assertion by default.
func (s *OrderServiceStub) VerifyPayment(ctx context.Context, assertion model.PaymentAssertion) (*model.VerificationResult, error) {
	s.mu.Lock()
	s.VerifyCalls = append(s.VerifyCalls, assertion)
	s.mu.Unlock()
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, assertion)
	}
	return &model.VerificationResult{Success: true, OrderID: "ORD1"}, nil
}

// VerifyCount returns how many verify calls were made.
func (s *OrderServiceStub) VerifyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.VerifyCalls)
}

// LoaderStub implements gateway.Loader with a fixed answer.
type LoaderStub struct {
	Loaded bool

	mu    sync.Mutex
	Calls int
}

// EnsureLoaded records the call and returns the configured answer.
func (s *LoaderStub) EnsureLoaded(context.Context) bool {
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()
	return s.Loaded
}

// CallCount returns how many times EnsureLoaded ran.
func (s *LoaderStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}

// GatewayStub implements gateway.Gateway with a scripted result.
type GatewayStub struct {
	Result gateway.Result
	Err    error
	OpenFn func(context.Context, gateway.SessionOptions) (gateway.Result, error)

	mu    sync.Mutex
	Opens []gateway.SessionOptions
}

// Open records the session options and resolves with the scripted result.
func (s *GatewayStub) Open(ctx context.Context, opts gateway.SessionOptions) (gateway.Result, error) {
	s.mu.Lock()
	s.Opens = append(s.Opens, opts)
	s.mu.Unlock()
	if s.OpenFn != nil {
		return s.OpenFn(ctx, opts)
	}
	if s.Err != nil {
		return gateway.Result{}, s.Err
	}
	return s.Result, nil
}

// OpenCount returns how many sessions were opened.
func (s *GatewayStub) OpenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Opens)
}

// LookupStub resolves postal codes from a fixed table.
type LookupStub struct {
	Locations map[string]model.Location
	Err       error
	ResolveFn func(context.Context, string) (*model.Location, error)

	mu    sync.Mutex
	Codes []string
}

// Resolve returns the stubbed location or the configured error.
func (s *LookupStub) Resolve(ctx context.Context, code string) (*model.Location, error) {
	s.mu.Lock()
	s.Codes = append(s.Codes, code)
	s.mu.Unlock()
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, code)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if loc, ok := s.Locations[code]; ok {
		return &loc, nil
	}
	return &model.Location{City: "Mumbai", State: "Maharashtra"}, nil
}

// ResolveCount returns how many lookups ran.
func (s *LookupStub) ResolveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Codes)
}

// JournalStub records journal writes in memory.
type JournalStub struct {
	SubmissionErr error
	OutcomeErr    error

	mu          sync.Mutex
	Submissions []string
	Outcomes    map[string]model.CheckoutOutcome
	Recent      []model.CheckoutAttempt
}

// RecordSubmission stores the attempt id.
func (s *JournalStub) RecordSubmission(_ context.Context, id string, _ model.PaymentMethod, _ int64) error {
	if s.SubmissionErr != nil {
		return s.SubmissionErr
	}
	s.mu.Lock()
	s.Submissions = append(s.Submissions, id)
	s.mu.Unlock()
	return nil
}

// RecordOutcome stores the terminal outcome.
func (s *JournalStub) RecordOutcome(_ context.Context, id string, outcome model.CheckoutOutcome) error {
	if s.OutcomeErr != nil {
		return s.OutcomeErr
	}
	s.mu.Lock()
	if s.Outcomes == nil {
		s.Outcomes = make(map[string]model.CheckoutOutcome)
	}
	s.Outcomes[id] = outcome
	s.mu.Unlock()
	return nil
}

// ListRecent returns the configured history.
func (s *JournalStub) ListRecent(context.Context, int) ([]model.CheckoutAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Recent, nil
}

// Outcome returns the recorded outcome for an attempt, if any.
func (s *JournalStub) Outcome(id string) (model.CheckoutOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	outcome, ok := s.Outcomes[id]
	return outcome, ok
}

// InvoiceQueueStub captures enqueued invoices.
type InvoiceQueueStub struct {
	mu       sync.Mutex
	Invoices []model.Invoice
}

// Enqueue stores the invoice.
func (s *InvoiceQueueStub) Enqueue(invoice model.Invoice) {
	s.mu.Lock()
	s.Invoices = append(s.Invoices, invoice)
	s.mu.Unlock()
}

// Count returns how many invoices were enqueued.
func (s *InvoiceQueueStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Invoices)
}
