package ports

import (
	"context"

	"github.com/google/uuid"

	"uybor/internal/core/domain"
)

// FavoriteRepository defines the persistence operations for Favorites.
type FavoriteRepository interface {
	// Add records the (user, listing) pair. A duplicate add is a no-op;
	// added reports whether a new row was created.
	Add(ctx context.Context, userID uuid.UUID, listingID int64) (added bool, err error)

	// Remove deletes the pair, returning domain.ErrNotFound when it does
	// not exist.
	Remove(ctx context.Context, userID uuid.UUID, listingID int64) error

	// ListByUser returns the user's favorited listings that are still
	// approved and active.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Listing, error)

	// UsersForListing returns the Telegram ids of users who favorited the
	// listing, for deactivation/deletion notifications.
	UsersForListing(ctx context.Context, listingID int64) ([]int64, error)
}
