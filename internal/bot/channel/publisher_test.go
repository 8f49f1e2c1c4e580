package channel

import (
	"strings"
	"testing"

	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func sampleListing() *domain.Listing {
	return &domain.Listing{
		ID:           42,
		Description:  "2-room apartment in Chilonzor\nBright, renovated.",
		PropertyType: domain.PropertyApartment,
		Purpose:      domain.PurposeSale,
		FullAddress:  "Chilonzor, Toshkent shahri",
		PriceText:    "50 000$",
		AreaText:     "65",
		ContactInfo:  "+998901234567",
	}
}

func TestPostText(t *testing.T) {
	text := PostText(sampleListing())

	for _, want := range []string{
		"2-room apartment in Chilonzor",
		"📞 +998901234567",
		"📍 Chilonzor, Toshkent shahri",
		"#apartment #sale",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("PostText missing %q:\n%s", want, text)
		}
	}

	// Hashtags close the post.
	if !strings.HasSuffix(text, "#apartment #sale") {
		t.Errorf("hashtags are not at the end:\n%s", text)
	}
}

func TestPostText_NoAddress(t *testing.T) {
	l := sampleListing()
	l.FullAddress = ""

	if strings.Contains(PostText(l), "📍") {
		t.Errorf("PostText includes an address line for a listing without one")
	}
}

func TestReviewCard(t *testing.T) {
	card := ReviewCard(sampleListing())

	for _, want := range []string{"#42", "apartment / sale", "50 000$", "+998901234567"} {
		if !strings.Contains(card, want) {
			t.Errorf("ReviewCard missing %q:\n%s", want, card)
		}
	}
}

func TestStatsText(t *testing.T) {
	text := StatsText(&ports.ListingStats{
		Total: 10, Pending: 2, Approved: 7, Declined: 1,
		Users: 5, Today: 3, TodayApproved: 2,
	})

	for _, want := range []string{"10", "⏳ Kutilmoqda: 2", "✅ Tasdiqlangan: 7", "👥 Foydalanuvchilar: 5"} {
		if !strings.Contains(text, want) {
			t.Errorf("StatsText missing %q:\n%s", want, text)
		}
	}
}
