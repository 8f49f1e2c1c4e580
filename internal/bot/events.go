package bot

import "uybor/internal/core/domain"

// Event topics. Moderation and lifecycle decisions publish these; the
// notifier delivers the resulting messages best-effort, off the handler's
// critical path.
const (
	TopicListingSubmitted   = "listing:submitted"
	TopicListingApproved    = "listing:approved"
	TopicListingDeclined    = "listing:declined"
	TopicListingDeactivated = "listing:deactivated"
	TopicListingDeleted     = "listing:deleted"
)

// ListingEvent is the payload for submitted/approved events.
type ListingEvent struct {
	Listing *domain.Listing
}

// ListingDeclinedEvent carries the admin's feedback to the owner.
type ListingDeclinedEvent struct {
	Listing  *domain.Listing
	Feedback string
}

// ListingGoneEvent notifies favoriters that a listing they saved was
// deleted or paused. Favoriter ids are captured before the rows change.
type ListingGoneEvent struct {
	Listing    *domain.Listing
	Favoriters []int64 // Telegram ids
	Deleted    bool    // false means deactivated
}
