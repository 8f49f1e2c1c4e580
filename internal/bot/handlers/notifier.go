package handlers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"uybor/internal/bot"
	"uybor/internal/bot/i18n"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func init() {
	bot.RegisterSubscriber(NewNotifier)
}

// notifier delivers the messages that follow moderation and lifecycle
// decisions: review cards to admins, verdicts to owners, and heads-up
// messages to favoriters. All delivery is best-effort; a blocked user or a
// dead chat only logs.
type notifier struct {
	deps *bot.Deps
	log  zerolog.Logger
}

// NewNotifier subscribes the notifier to the listing event topics.
func NewNotifier(deps *bot.Deps) {
	n := &notifier{
		deps: deps,
		log:  deps.Log.With().Str("component", "notifier").Logger(),
	}
	deps.Bus.Subscribe(bot.TopicListingSubmitted, n.onSubmitted)
	deps.Bus.Subscribe(bot.TopicListingApproved, n.onApproved)
	deps.Bus.Subscribe(bot.TopicListingDeclined, n.onDeclined)
	deps.Bus.Subscribe(bot.TopicListingDeactivated, n.onGone)
	deps.Bus.Subscribe(bot.TopicListingDeleted, n.onGone)
}

// onSubmitted fans the review card out to every configured admin.
func (n *notifier) onSubmitted(ctx context.Context, event ports.Event) error {
	payload, ok := event.Data.(*bot.ListingEvent)
	if !ok || payload.Listing == nil {
		return nil
	}
	for _, adminID := range n.deps.Cfg.AdminIDs() {
		if err := sendReviewCard(ctx, n.deps, adminID, payload.Listing); err != nil {
			n.log.Warn().Err(err).Int64("admin_id", adminID).Int64("listing_id", payload.Listing.ID).
				Msg("Failed to deliver review card")
		}
	}
	return nil
}

func (n *notifier) onApproved(ctx context.Context, event ports.Event) error {
	payload, ok := event.Data.(*bot.ListingEvent)
	if !ok || payload.Listing == nil {
		return nil
	}
	return n.notifyOwner(ctx, payload.Listing, func(lang domain.Language) string {
		return i18n.T(lang, i18n.KeyListingApproved)
	})
}

func (n *notifier) onDeclined(ctx context.Context, event ports.Event) error {
	payload, ok := event.Data.(*bot.ListingDeclinedEvent)
	if !ok || payload.Listing == nil {
		return nil
	}
	return n.notifyOwner(ctx, payload.Listing, func(lang domain.Language) string {
		return fmt.Sprintf(i18n.T(lang, i18n.KeyListingDeclined), payload.Feedback)
	})
}

// onGone tells each favoriter, in their own language, that a saved listing
// was deleted or paused.
func (n *notifier) onGone(ctx context.Context, event ports.Event) error {
	payload, ok := event.Data.(*bot.ListingGoneEvent)
	if !ok || payload.Listing == nil {
		return nil
	}
	key := i18n.KeyFavGoneInactive
	if payload.Deleted {
		key = i18n.KeyFavGoneDeleted
	}

	title := payload.Listing.DisplayTitle()
	for _, telegramID := range payload.Favoriters {
		lang := domain.DefaultLanguage
		if u, err := n.deps.Users.GetByTelegramID(ctx, telegramID); err == nil && u != nil {
			lang = u.Language
		}
		if _, err := n.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: telegramID,
			Text:   fmt.Sprintf(i18n.T(lang, key), title),
		}); err != nil {
			n.log.Warn().Err(err).Int64("telegram_id", telegramID).Int64("listing_id", payload.Listing.ID).
				Msg("Failed to notify favoriter")
		}
	}
	return nil
}

func (n *notifier) notifyOwner(ctx context.Context, listing *domain.Listing, text func(domain.Language) string) error {
	owner, err := n.deps.Users.GetByID(ctx, listing.OwnerID)
	if err != nil {
		return err
	}
	if owner == nil {
		n.log.Warn().Int64("listing_id", listing.ID).Msg("Listing owner not found, verdict not delivered")
		return nil
	}
	if _, err := n.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: owner.TelegramID,
		Text:   text(owner.Language),
	}); err != nil {
		n.log.Warn().Err(err).Int64("telegram_id", owner.TelegramID).Int64("listing_id", listing.ID).
			Msg("Failed to deliver moderation verdict")
	}
	return nil
}
