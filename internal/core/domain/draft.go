package domain

import (
	"time"

	"github.com/google/uuid"
)

// Step identifies where a user's conversation currently is. StepNone means
// no flow is in progress.
type Step string

const (
	StepNone Step = "none"

	// Listing draft flow, in order.
	StepPropertyType Step = "property_type"
	StepPurpose      Step = "purpose"
	StepRegion       Step = "region"
	StepDistrict     Step = "district"
	StepPrice        Step = "price"
	StepArea         Step = "area"
	StepDescription  Step = "description"
	StepConfirmation Step = "confirmation"
	StepContactInfo  Step = "contact_info"
	StepPhotos       Step = "photos"

	// Search flow.
	StepSearchKeyword  Step = "search_keyword"
	StepSearchRegion   Step = "search_region"
	StepSearchDistrict Step = "search_district"

	// Admin decline sub-conversation.
	StepAdminFeedback Step = "admin_feedback"
)

// MaxListingPhotos caps the photo set at finalization time. Collection never
// rejects excess photos; the cap is applied when the draft is submitted.
const MaxListingPhotos = 10

// ListingDraft accumulates the fields collected by the conversation state
// machine. It lives only in the session store and is discarded on completion
// or cancellation.
type ListingDraft struct {
	PropertyType PropertyType
	Purpose      Purpose
	RegionKey    string
	DistrictKey  string
	Price        int64
	PriceText    string
	Area         float64
	AreaText     string
	Description  string
	ContactInfo  string
	PhotoFileIDs []string
}

// Finalize assembles a pending Listing from the draft. fullAddress is the
// localized "district, region" string resolved by the caller. Unset numeric
// fields default to zero; the photo set is truncated to MaxListingPhotos.
func (d *ListingDraft) Finalize(ownerID uuid.UUID, fullAddress string, now time.Time) *Listing {
	description := d.Description
	if description == "" {
		description = "No description provided"
	}
	contact := d.ContactInfo
	if contact == "" {
		contact = "Not provided"
	}
	photos := d.PhotoFileIDs
	if len(photos) > MaxListingPhotos {
		photos = photos[:MaxListingPhotos]
	}

	return &Listing{
		OwnerID:        ownerID,
		Title:          TitleFromDescription(description),
		Description:    description,
		PropertyType:   d.PropertyType,
		Purpose:        d.Purpose,
		RegionKey:      d.RegionKey,
		DistrictKey:    d.DistrictKey,
		FullAddress:    fullAddress,
		Price:          d.Price,
		PriceText:      d.PriceText,
		Area:           d.Area,
		AreaText:       d.AreaText,
		ContactInfo:    contact,
		PhotoFileIDs:   photos,
		IsActive:       true,
		ApprovalStatus: ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
