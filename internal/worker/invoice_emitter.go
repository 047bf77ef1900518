package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/opticart/checkout/internal/document"
	"github.com/opticart/checkout/internal/domain/model"
)

// InvoiceEmitter renders invoices for successful checkouts on a worker pool
// so document generation never blocks the checkout response path.
type InvoiceEmitter struct {
	sink    document.Emitter
	workers int
	logger  *slog.Logger

	jobs   chan model.Invoice
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewInvoiceEmitter constructs the invoice worker pool.
func NewInvoiceEmitter(sink document.Emitter, workers, queueSize int, logger *slog.Logger) *InvoiceEmitter {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers * 4
	}
	return &InvoiceEmitter{
		sink:    sink,
		workers: workers,
		logger:  logger,
		jobs:    make(chan model.Invoice, queueSize),
	}
}

// Start launches background rendering.
func (e *InvoiceEmitter) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker(runCtx)
	}
}

// Stop waits for all workers to finish.
func (e *InvoiceEmitter) Stop() {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()

	e.wg.Wait()
}

// Enqueue submits an invoice for rendering. When the queue is full the
// invoice is dropped with a log entry rather than stalling checkout.
func (e *InvoiceEmitter) Enqueue(invoice model.Invoice) {
	select {
	case e.jobs <- invoice:
	default:
		e.logger.Warn("invoice queue full, dropping", slog.String("order", invoice.OrderID))
	}
}

func (e *InvoiceEmitter) worker(ctx context.Context) {
	defer e.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case invoice, ok := <-e.jobs:
			if !ok {
				return
			}
			path, err := e.sink.Emit(ctx, invoice)
			if err != nil {
				e.logger.Error("invoice generation failed",
					slog.String("order", invoice.OrderID),
					slog.String("error", err.Error()),
				)
				continue
			}
			e.logger.Info("invoice generated",
				slog.String("order", invoice.OrderID),
				slog.String("path", path),
			)
		}
	}
}
