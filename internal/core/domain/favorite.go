package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a (user, listing) pair. Uniqueness is enforced by the store;
// favorites are cascade-deleted with their listing.
type Favorite struct {
	UserID    uuid.UUID
	ListingID int64
	CreatedAt time.Time
}
