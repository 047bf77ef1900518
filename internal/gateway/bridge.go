package gateway

import (
	"context"
	"sync"

	domainErrors "github.com/opticart/checkout/internal/domain/errors"
)

// CallbackBridge implements Gateway for the HTTP rendition of the checkout:
// the browser drives the hosted gateway UI and the gateway's success,
// failure, and dismiss callbacks come back as HTTP requests. Open registers
// the session and suspends until Deliver feeds it exactly one Result.
type CallbackBridge struct {
	mu       sync.Mutex
	sessions map[string]*session
	waiters  map[string][]chan SessionOptions
}

type session struct {
	opts     SessionOptions
	result   chan Result
	resolved bool
}

// NewCallbackBridge constructs an empty bridge.
func NewCallbackBridge() *CallbackBridge {
	return &CallbackBridge{
		sessions: make(map[string]*session),
		waiters:  make(map[string][]chan SessionOptions),
	}
}

// Open registers a session under opts.Reference and blocks until Deliver
// resolves it or the context ends. The session is always deregistered on
// return, so a late callback cannot touch a finished submission.
func (b *CallbackBridge) Open(ctx context.Context, opts SessionOptions) (Result, error) {
	b.mu.Lock()
	if _, exists := b.sessions[opts.Reference]; exists {
		b.mu.Unlock()
		return Result{}, domainErrors.ErrSubmissionInFlight
	}
	s := &session{opts: opts, result: make(chan Result, 1)}
	b.sessions[opts.Reference] = s
	for _, w := range b.waiters[opts.Reference] {
		w <- opts
	}
	delete(b.waiters, opts.Reference)
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.sessions, opts.Reference)
		b.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case res := <-s.result:
		return res, nil
	}
}

// Deliver resolves the session registered under ref. The first delivery
// wins; later deliveries and unknown references are rejected.
func (b *CallbackBridge) Deliver(ref string, res Result) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sessions[ref]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if s.resolved {
		return domainErrors.ErrSessionResolved
	}
	s.resolved = true
	s.result <- res
	return nil
}

// WaitForSession blocks until a session with the given reference opens and
// returns its options, so the HTTP layer can hand the gateway parameters to
// the UI. Returns immediately when the session is already open.
func (b *CallbackBridge) WaitForSession(ctx context.Context, ref string) (SessionOptions, error) {
	b.mu.Lock()
	if s, ok := b.sessions[ref]; ok {
		opts := s.opts
		b.mu.Unlock()
		return opts, nil
	}
	w := make(chan SessionOptions, 1)
	b.waiters[ref] = append(b.waiters[ref], w)
	b.mu.Unlock()

	select {
	case <-ctx.Done():
		b.mu.Lock()
		remaining := b.waiters[ref][:0]
		for _, c := range b.waiters[ref] {
			if c != w {
				remaining = append(remaining, c)
			}
		}
		if len(remaining) == 0 {
			delete(b.waiters, ref)
		} else {
			b.waiters[ref] = remaining
		}
		b.mu.Unlock()
		return SessionOptions{}, ctx.Err()
	case opts := <-w:
		return opts, nil
	}
}
