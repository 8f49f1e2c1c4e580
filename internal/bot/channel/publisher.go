// Package channel posts approved listings to the public channel and
// formats the review cards shown to administrators.
package channel

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

// Publisher sends approved listings to the configured channel.
type Publisher struct {
	bot       ports.BotClient
	channelID int64
	log       zerolog.Logger
}

// NewPublisher creates a channel publisher.
func NewPublisher(bot ports.BotClient, channelID int64, baseLogger *zerolog.Logger) *Publisher {
	return &Publisher{
		bot:       bot,
		channelID: channelID,
		log:       baseLogger.With().Str("component", "channel_publisher").Logger(),
	}
}

// Publish posts the listing to the channel and returns the message id of
// the post (the first message for albums). Photo count decides the shape:
// none is a text post, one is a photo with caption, several are an album.
func (p *Publisher) Publish(ctx context.Context, listing *domain.Listing) (int, error) {
	caption := PostText(listing)

	photos := listing.PhotoFileIDs
	if len(photos) > domain.MaxListingPhotos {
		photos = photos[:domain.MaxListingPhotos]
	}

	var (
		messageID int
		err       error
	)
	switch len(photos) {
	case 0:
		messageID, err = p.bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: p.channelID,
			Text:   caption,
		})
	case 1:
		messageID, err = p.bot.SendPhoto(ctx, ports.SendPhotoParams{
			ChatID:  p.channelID,
			FileID:  photos[0],
			Caption: caption,
		})
	default:
		messageID, err = p.bot.SendMediaGroup(ctx, ports.SendMediaGroupParams{
			ChatID:  p.channelID,
			FileIDs: photos,
			Caption: caption,
		})
	}
	if err != nil {
		p.log.Error().Err(err).Int64("listing_id", listing.ID).Msg("Failed to publish listing to channel")
		return 0, err
	}

	p.log.Info().Int64("listing_id", listing.ID).Int("message_id", messageID).Msg("Listing published to channel")
	return messageID, nil
}

// PostText assembles the channel post: description, contact, address and
// the type/purpose hashtags.
func PostText(listing *domain.Listing) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(listing.Description))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "📞 %s\n", listing.ContactInfo)
	if listing.FullAddress != "" {
		fmt.Fprintf(&b, "📍 %s\n", listing.FullAddress)
	}
	b.WriteString("\n")
	b.WriteString(listing.Hashtags())
	return b.String()
}

// ReviewCard formats the moderation card sent to administrators when a new
// listing is submitted. Admin-facing text is Uzbek only.
func ReviewCard(listing *domain.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 Yangi e'lon #%d\n\n", listing.ID)
	fmt.Fprintf(&b, "🏠 Turi: %s / %s\n", listing.PropertyType, listing.Purpose)
	if listing.FullAddress != "" {
		fmt.Fprintf(&b, "📍 Manzil: %s\n", listing.FullAddress)
	}
	fmt.Fprintf(&b, "💰 Narx: %s\n", listing.PriceText)
	fmt.Fprintf(&b, "📐 Maydon: %s\n", listing.AreaText)
	fmt.Fprintf(&b, "📞 Aloqa: %s\n", listing.ContactInfo)
	fmt.Fprintf(&b, "📷 Rasmlar: %d ta\n\n", len(listing.PhotoFileIDs))
	b.WriteString(strings.TrimSpace(listing.Description))
	return b.String()
}

// DetailsText formats the expanded admin view of a listing.
func DetailsText(listing *domain.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 E'lon #%d tafsilotlari\n\n", listing.ID)
	fmt.Fprintf(&b, "Holati: %s\n", listing.ApprovalStatus)
	fmt.Fprintf(&b, "Faol: %v\n", listing.IsActive)
	fmt.Fprintf(&b, "Premium: %v\n", listing.IsPremium)
	fmt.Fprintf(&b, "Ko'rishlar: %d\n", listing.ViewsCount)
	fmt.Fprintf(&b, "Sevimlilar: %d\n", listing.FavoritesCount)
	fmt.Fprintf(&b, "Yaratilgan: %s\n", listing.CreatedAt.Format("2006-01-02 15:04"))
	if listing.ReviewedBy != nil {
		fmt.Fprintf(&b, "Ko'rib chiqqan: %d\n", *listing.ReviewedBy)
	}
	if listing.AdminFeedback != nil {
		fmt.Fprintf(&b, "Fikr-mulohaza: %s\n", *listing.AdminFeedback)
	}
	return b.String()
}

// StatsText formats the aggregate snapshot for the admin stats button.
func StatsText(stats *ports.ListingStats) string {
	var b strings.Builder
	b.WriteString("📊 Statistika\n\n")
	fmt.Fprintf(&b, "Jami e'lonlar: %d\n", stats.Total)
	fmt.Fprintf(&b, "⏳ Kutilmoqda: %d\n", stats.Pending)
	fmt.Fprintf(&b, "✅ Tasdiqlangan: %d\n", stats.Approved)
	fmt.Fprintf(&b, "❌ Rad etilgan: %d\n", stats.Declined)
	fmt.Fprintf(&b, "👥 Foydalanuvchilar: %d\n", stats.Users)
	fmt.Fprintf(&b, "📅 Bugun: %d (tasdiqlangan: %d)\n", stats.Today, stats.TodayApproved)
	return b.String()
}
