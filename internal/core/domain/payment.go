package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is the gateway a payment came through.
type PaymentMethod string

const (
	MethodClick PaymentMethod = "click"
	MethodPayme PaymentMethod = "payme"
)

// ServiceType is what the payment buys.
type ServiceType string

const (
	ServicePremium ServiceType = "premium" // mark a listing premium
	ServiceTopUp   ServiceType = "top_up"  // credit the user's balance
)

// PaymentStatus tracks a payment through the webhook lifecycle.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment records a premium purchase or balance top-up. On completion its
// side effect (premium flag or balance credit) is applied by the store.
type Payment struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Amount        int64 // in so'm
	Method        PaymentMethod
	Service       ServiceType
	Status        PaymentStatus
	TransactionID *string // gateway-side transaction reference
	ListingID     *int64  // target listing for premium purchases
	CreatedAt     time.Time
	CompletedAt   *time.Time
}
