package domain

import (
	"time"

	"github.com/google/uuid"
)

// Language is a user's preferred display language.
type Language string

const (
	LangUz Language = "uz"
	LangRu Language = "ru"
	LangEn Language = "en"
)

// DefaultLanguage is the fallback for unknown users and missing translations.
const DefaultLanguage = LangUz

// ValidLanguage reports whether l is one of the supported languages.
func ValidLanguage(l Language) bool {
	return l == LangUz || l == LangRu || l == LangEn
}

// User represents a Telegram user of the marketplace. Created on first
// interaction, never hard-deleted.
type User struct {
	ID               uuid.UUID
	TelegramID       int64
	Username         *string
	FirstName        *string
	LastName         *string
	Language         Language
	IsBlocked        bool
	Balance          int64 // in so'm
	IsPremium        bool
	PremiumExpiresAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DisplayName returns the best human-readable name for review cards.
func (u *User) DisplayName() string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.Username != nil && *u.Username != "" {
		if name != "" {
			return name + " (@" + *u.Username + ")"
		}
		return "@" + *u.Username
	}
	return name
}

// PremiumActive reports whether the premium flag is currently in effect.
func (u *User) PremiumActive(now time.Time) bool {
	if !u.IsPremium {
		return false
	}
	if u.PremiumExpiresAt == nil {
		return true
	}
	return now.Before(*u.PremiumExpiresAt)
}
