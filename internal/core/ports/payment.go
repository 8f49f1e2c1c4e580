package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"uybor/internal/core/domain"
)

// PaymentRepository defines the persistence operations for Payments.
// GetByID returns (nil, nil) when the payment does not exist.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	// Complete marks a pending payment completed and applies its side
	// effect (listing premium flag or balance credit) in one transaction.
	// Returns domain.ErrAlreadyProcessed when the payment is not pending.
	Complete(ctx context.Context, id uuid.UUID, transactionID string, now time.Time) error

	// Close marks a pending payment failed or cancelled.
	Close(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error
}
