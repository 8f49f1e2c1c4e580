package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

type userRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.UserRepository = (*userRepository)(nil)

// NewUserRepository creates a new repository for user operations.
func NewUserRepository(db *DB, baseLogger *zerolog.Logger) ports.UserRepository {
	return &userRepository{
		db:  db,
		log: baseLogger.With().Str("component", "user_repo").Logger(),
	}
}

const userQueryCols = `
	id, telegram_id, username, first_name, last_name, language,
	is_blocked, balance, is_premium, premium_expires_at, created_at, updated_at
`

// Upsert creates the user on first contact or refreshes display names.
// Language and balance are never clobbered by the upsert.
func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Language == "" {
		user.Language = domain.DefaultLanguage
	}

	query := `
		INSERT INTO users (id, telegram_id, username, first_name, last_name, language)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (telegram_id) DO UPDATE SET
			username   = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			updated_at = now()
	`
	_, err := r.db.pool.Exec(ctx, query,
		user.ID, user.TelegramID, user.Username, user.FirstName, user.LastName, user.Language)
	if err != nil {
		r.log.Error().Err(err).Int64("telegram_id", user.TelegramID).Msg("Failed to upsert user")
	}
	return err
}

func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Language,
		&user.IsBlocked,
		&user.Balance,
		&user.IsPremium,
		&user.PremiumExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.log.Error().Err(err).Msg("Failed to scan user row")
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	query := `SELECT ` + userQueryCols + ` FROM users WHERE telegram_id = $1`

	user, err := r.scanUser(r.db.pool.QueryRow(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userQueryCols + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.db.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) UpdateLanguage(ctx context.Context, telegramID int64, lang domain.Language) error {
	query := `UPDATE users SET language = $1, updated_at = now() WHERE telegram_id = $2`

	tag, err := r.db.pool.Exec(ctx, query, lang, telegramID)
	if err != nil {
		r.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("Failed to update language")
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	query := `UPDATE users SET is_blocked = $1, updated_at = now() WHERE id = $2`

	tag, err := r.db.pool.Exec(ctx, query, blocked, id)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", id.String()).Msg("Failed to set blocked flag")
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
