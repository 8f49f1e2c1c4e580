package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"uybor/internal/core/domain"
)

// ListingFilter narrows public listing queries. Zero values mean "no
// constraint". Query matches title, description and full address.
type ListingFilter struct {
	RegionKey    string
	DistrictKey  string
	PropertyType domain.PropertyType
	Purpose      domain.Purpose
	MinPrice     *int64
	MaxPrice     *int64
	MinArea      *float64
	MaxArea      *float64
	Query        string
	Limit        int
	Offset       int
}

// ListingStats is the aggregate snapshot shown to administrators.
type ListingStats struct {
	Total         int
	Pending       int
	Approved      int
	Declined      int
	Users         int
	Today         int
	TodayApproved int
}

// ListingRepository defines the persistence operations for Listings.
// GetByID returns (nil, nil) when the listing does not exist.
type ListingRepository interface {
	// Create persists a new pending listing and fills in its id.
	Create(ctx context.Context, listing *domain.Listing) error

	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Update(ctx context.Context, listing *domain.Listing) error

	// ListPublic returns approved+active listings, premium first, newest
	// next, honoring the filter.
	ListPublic(ctx context.Context, filter ListingFilter) ([]*domain.Listing, error)
	ListPending(ctx context.Context) ([]*domain.Listing, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Listing, error)

	// Approve and Decline transition a pending listing to its terminal
	// state. Both return domain.ErrAlreadyProcessed when the listing has
	// already left pending, and domain.ErrNotFound when it does not exist.
	Approve(ctx context.Context, id int64, adminID int64, now time.Time) error
	Decline(ctx context.Context, id int64, adminID int64, feedback string) error

	SetActive(ctx context.Context, id int64, active bool) error
	SetPremium(ctx context.Context, id int64, premium bool) error
	SetChannelMessage(ctx context.Context, id int64, messageID int) error

	// IncrementViews bumps the view counter atomically in the store.
	IncrementViews(ctx context.Context, id int64) error

	// Delete removes the listing and cascades its favorites in one
	// transaction, returning the Telegram ids of users who had it
	// favorited, captured before the delete commits.
	Delete(ctx context.Context, id int64) ([]int64, error)

	Stats(ctx context.Context) (*ListingStats, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (total int, approved int, err error)
}
