package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

type paymentRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.PaymentRepository = (*paymentRepository)(nil)

// NewPaymentRepository creates a new repository for payment operations.
func NewPaymentRepository(db *DB, baseLogger *zerolog.Logger) ports.PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: baseLogger.With().Str("component", "payment_repo").Logger(),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.Status == "" {
		payment.Status = domain.PaymentPending
	}

	query := `
		INSERT INTO payments (id, user_id, amount, method, service, status, listing_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.pool.QueryRow(ctx, query,
		payment.ID, payment.UserID, payment.Amount, payment.Method,
		payment.Service, payment.Status, payment.ListingID,
	).Scan(&payment.CreatedAt)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to create payment")
	}
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `
		SELECT id, user_id, amount, method, service, status,
			transaction_id, listing_id, created_at, completed_at
		FROM payments WHERE id = $1
	`
	var p domain.Payment
	err := r.db.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Amount, &p.Method, &p.Service, &p.Status,
		&p.TransactionID, &p.ListingID, &p.CreatedAt, &p.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error().Err(err).Str("payment_id", id.String()).Msg("Failed to get payment")
		return nil, err
	}
	return &p, nil
}

// Complete marks the payment completed and applies its side effect in the
// same transaction. A webhook retrying after success hits the conditional
// UPDATE's zero-row path and gets ErrAlreadyProcessed.
func (r *paymentRepository) Complete(ctx context.Context, id uuid.UUID, transactionID string, now time.Time) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE payments SET
			status = 'completed', transaction_id = $2, completed_at = $3
		WHERE id = $1 AND status = 'pending'
		RETURNING user_id, amount, service, listing_id
	`
	var (
		userID    uuid.UUID
		amount    int64
		service   domain.ServiceType
		listingID *int64
	)
	err = tx.QueryRow(ctx, query, id, transactionID, now).Scan(&userID, &amount, &service, &listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.completeConflict(ctx, id)
		}
		r.log.Error().Err(err).Str("payment_id", id.String()).Msg("Failed to complete payment")
		return err
	}

	switch service {
	case domain.ServicePremium:
		if listingID != nil {
			_, err = tx.Exec(ctx,
				`UPDATE listings SET is_premium = TRUE, updated_at = now() WHERE id = $1`, *listingID)
		}
	case domain.ServiceTopUp:
		_, err = tx.Exec(ctx,
			`UPDATE users SET balance = balance + $1, updated_at = now() WHERE id = $2`, amount, userID)
	}
	if err != nil {
		r.log.Error().Err(err).Str("payment_id", id.String()).Msg("Failed to apply payment effect")
		return err
	}

	return tx.Commit(ctx)
}

func (r *paymentRepository) completeConflict(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrAlreadyProcessed
}

func (r *paymentRepository) Close(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error {
	query := `UPDATE payments SET status = $2 WHERE id = $1 AND status = 'pending'`

	tag, err := r.db.pool.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error().Err(err).Str("payment_id", id.String()).Msg("Failed to close payment")
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.completeConflict(ctx, id)
	}
	return nil
}
