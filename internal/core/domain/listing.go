package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PropertyType is the kind of property a listing offers.
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyCommercial PropertyType = "commercial"
	PropertyLand       PropertyType = "land"
)

// ValidPropertyType reports whether t is a known property type.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyCommercial, PropertyLand:
		return true
	}
	return false
}

// Purpose is what the listing is for.
type Purpose string

const (
	PurposeSale Purpose = "sale"
	PurposeRent Purpose = "rent"
)

// ValidPurpose reports whether p is a known purpose.
func ValidPurpose(p Purpose) bool {
	return p == PurposeSale || p == PurposeRent
}

// ApprovalStatus is the tri-state moderation outcome. It is independent of
// the is_active visibility flag.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalDeclined ApprovalStatus = "declined"
)

// Listing is a persisted property advertisement.
type Listing struct {
	ID           int64
	OwnerID      uuid.UUID
	Title        string
	Description  string
	PropertyType PropertyType
	Purpose      Purpose
	RegionKey    string
	DistrictKey  string
	FullAddress  string
	Price        int64  // normalized, for filtering and sorting
	PriceText    string // as the user typed it, for display
	Area         float64
	AreaText     string
	Rooms        int
	ContactInfo  string
	PhotoFileIDs []string

	IsPremium        bool
	IsActive         bool
	ApprovalStatus   ApprovalStatus
	AdminFeedback    *string // set only on decline
	ReviewedBy       *int64  // Telegram id of the deciding admin
	ChannelMessageID *int    // set only after a successful channel post

	ViewsCount     int
	FavoritesCount int

	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// IsPublic reports whether the listing is visible in the public feed and
// eligible for the channel.
func (l *Listing) IsPublic() bool {
	return l.ApprovalStatus == ApprovalApproved && l.IsActive
}

// DisplayTitle returns the stored title, deriving one from the description
// when it was never set.
func (l *Listing) DisplayTitle() string {
	if l.Title != "" {
		return l.Title
	}
	return TitleFromDescription(l.Description)
}

// TitleFromDescription derives a listing title: the first line of the
// description, capped at 50 characters.
func TitleFromDescription(description string) string {
	line := description
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	runes := []rune(line)
	if len(runes) > 50 {
		return string(runes[:50]) + "..."
	}
	if len(description) > len(line) {
		return line + "..."
	}
	return line
}

// Hashtags returns the channel post hashtag suffix, e.g. "#apartment #sale".
func (l *Listing) Hashtags() string {
	return "#" + string(l.PropertyType) + " #" + string(l.Purpose)
}
