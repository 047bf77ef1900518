package repository

import (
	"context"

	"github.com/opticart/checkout/internal/domain/model"
)

// AttemptJournal records checkout submissions and their terminal outcomes.
// Append-only audit data; no flow state is read back into the orchestration.
type AttemptJournal interface {
	RecordSubmission(ctx context.Context, id string, method model.PaymentMethod, total int64) error
	RecordOutcome(ctx context.Context, id string, outcome model.CheckoutOutcome) error
	ListRecent(ctx context.Context, limit int) ([]model.CheckoutAttempt, error)
}
