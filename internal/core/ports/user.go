package ports

import (
	"context"

	"github.com/google/uuid"

	"uybor/internal/core/domain"
)

// UserRepository defines the persistence operations for Users.
// Get methods return (nil, nil) when the user does not exist.
type UserRepository interface {
	// Upsert creates the user on first interaction or refreshes the
	// display names on subsequent ones. Language is preserved on conflict.
	Upsert(ctx context.Context, user *domain.User) error

	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	UpdateLanguage(ctx context.Context, telegramID int64, lang domain.Language) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
}
