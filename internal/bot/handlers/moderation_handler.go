package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"uybor/internal/bot"
	"uybor/internal/bot/callback"
	"uybor/internal/bot/channel"
	"uybor/internal/bot/i18n"
	"uybor/internal/bot/messages"
	"uybor/internal/bot/session"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func init() {
	bot.RegisterCommand(NewAdminHandler)
	bot.RegisterCallback(NewModerationCallbackHandler)
}

// adminHandler serves the /admin review queue. Admin-facing text is Uzbek
// only, matching the channel posts.
type adminHandler struct {
	deps *bot.Deps
}

// NewAdminHandler creates the admin queue handler.
func NewAdminHandler(deps *bot.Deps) ports.CommandHandler {
	return &adminHandler{deps: deps}
}

func (h *adminHandler) Command() string { return "admin" }

func (h *adminHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	if !h.deps.Cfg.IsAdmin(update.UserID) {
		_, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(user.Language, i18n.KeyErrNotAdmin),
		})
		return err
	}

	pending, err := h.deps.Listings.ListPending(ctx)
	if err != nil {
		return err
	}

	statsButton := [][]ports.Button{{
		{Text: "📊 Statistika", Data: callback.Encode(callback.VerbStats, "")},
	}}
	if len(pending) == 0 {
		_, err := h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
			WithText("✅ Ko'rib chiqilmagan e'lonlar yo'q.").
			WithInlineButtons(statsButton).
			Build())
		return err
	}

	for _, l := range pending {
		if err := sendReviewCard(ctx, h.deps, update.ChatID, l); err != nil {
			return err
		}
	}
	_, err = h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
		WithText("📋 Jami kutilmoqda: "+strconv.Itoa(len(pending))).
		WithInlineButtons(statsButton).
		Build())
	return err
}

// sendReviewCard sends one moderation card with its decision buttons. Used
// both by the /admin queue and by the submission notifier.
func sendReviewCard(ctx context.Context, deps *bot.Deps, chatID int64, listing *domain.Listing) error {
	params := messages.NewBuilder(chatID).
		WithText(channel.ReviewCard(listing)).
		WithInlineButtons(reviewButtons(listing.ID)).
		Build()

	if len(listing.PhotoFileIDs) > 0 {
		_, err := deps.Bot.SendPhoto(ctx, ports.SendPhotoParams{
			ChatID:      chatID,
			FileID:      listing.PhotoFileIDs[0],
			Caption:     params.Text,
			ReplyMarkup: params.ReplyMarkup,
		})
		return err
	}
	_, err := deps.Bot.SendMessage(ctx, params)
	return err
}

func reviewButtons(listingID int64) [][]ports.Button {
	id := strconv.FormatInt(listingID, 10)
	return [][]ports.Button{
		{
			{Text: "✅ Tasdiqlash", Data: callback.Encode(callback.VerbApprove, id)},
			{Text: "❌ Rad etish", Data: callback.Encode(callback.VerbDecline, id)},
		},
		{
			{Text: "📊 Tafsilotlar", Data: callback.Encode(callback.VerbDetails, id)},
		},
	}
}

// moderationCallbackHandler applies approve/decline decisions. Both paths
// are idempotent: a second press on an already-processed card only gets an
// alert, it never publishes or notifies twice.
type moderationCallbackHandler struct {
	deps *bot.Deps
	log  zerolog.Logger
}

// NewModerationCallbackHandler creates the moderation callback handler.
func NewModerationCallbackHandler(deps *bot.Deps) ports.CallbackHandler {
	return &moderationCallbackHandler{
		deps: deps,
		log:  deps.Log.With().Str("component", "moderation_callbacks").Logger(),
	}
}

func (h *moderationCallbackHandler) Verbs() []string {
	return []string{
		callback.VerbApprove,
		callback.VerbDecline,
		callback.VerbDetails,
		callback.VerbStats,
	}
}

func (h *moderationCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate, action ports.Action, user *domain.User) error {
	if !h.deps.Cfg.IsAdmin(update.UserID) {
		answer(ctx, h.deps, update.CallbackQueryID, i18n.T(user.Language, i18n.KeyErrNotAdmin))
		return nil
	}

	if action.Verb == callback.VerbStats {
		stats, err := h.deps.Listings.Stats(ctx)
		if err != nil {
			return err
		}
		answer(ctx, h.deps, update.CallbackQueryID, "")
		_, err = h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   channel.StatsText(stats),
		})
		return err
	}

	listingID, err := parseListingArg(action.Arg)
	if err != nil {
		answer(ctx, h.deps, update.CallbackQueryID, i18n.T(user.Language, i18n.KeyErrGeneric))
		return nil
	}

	switch action.Verb {
	case callback.VerbApprove:
		return h.approve(ctx, update, listingID)
	case callback.VerbDecline:
		return h.askFeedback(ctx, update, listingID)
	case callback.VerbDetails:
		listing, err := h.deps.Listings.GetByID(ctx, listingID)
		if err != nil {
			return err
		}
		if listing == nil {
			answer(ctx, h.deps, update.CallbackQueryID, "E'lon topilmadi.")
			return nil
		}
		answer(ctx, h.deps, update.CallbackQueryID, "")
		_, err = h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   channel.DetailsText(listing),
		})
		return err
	}
	return nil
}

func (h *moderationCallbackHandler) approve(ctx context.Context, update *ports.BotUpdate, listingID int64) error {
	err := h.deps.Listings.Approve(ctx, listingID, update.UserID, time.Now())
	switch {
	case errors.Is(err, domain.ErrAlreadyProcessed):
		answer(ctx, h.deps, update.CallbackQueryID, "ℹ️ Bu e'lon allaqachon ko'rib chiqilgan.")
		return nil
	case errors.Is(err, domain.ErrNotFound):
		answer(ctx, h.deps, update.CallbackQueryID, "E'lon topilmadi.")
		return nil
	case err != nil:
		return err
	}

	listing, err := h.deps.Listings.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		return domain.ErrNotFound
	}

	messageID, err := h.deps.Publisher.Publish(ctx, listing)
	if err != nil {
		// Approval stands even when the channel post fails; the admin can
		// repost from the details view.
		h.log.Error().Err(err).Int64("listing_id", listingID).Msg("Channel publish failed after approval")
	} else if err := h.deps.Listings.SetChannelMessage(ctx, listingID, messageID); err != nil {
		h.log.Error().Err(err).Int64("listing_id", listingID).Msg("Failed to record channel message id")
	}

	h.deps.Bus.Publish(ctx, bot.TopicListingApproved, &bot.ListingEvent{Listing: listing})

	answer(ctx, h.deps, update.CallbackQueryID, "✅ E'lon tasdiqlandi!")
	return h.retireCard(ctx, update, "✅ Tasdiqlandi: e'lon #"+strconv.FormatInt(listingID, 10))
}

// askFeedback switches the admin's own chat into feedback-entry mode; the
// typed reason arrives through the message handler.
func (h *moderationCallbackHandler) askFeedback(ctx context.Context, update *ports.BotUpdate, listingID int64) error {
	listing, err := h.deps.Listings.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		answer(ctx, h.deps, update.CallbackQueryID, "E'lon topilmadi.")
		return nil
	}
	if listing.ApprovalStatus != domain.ApprovalPending {
		answer(ctx, h.deps, update.CallbackQueryID, "ℹ️ Bu e'lon allaqachon ko'rib chiqilgan.")
		return nil
	}

	sess := h.deps.Sessions.Get(update.ChatID)
	sess.Step = domain.StepAdminFeedback
	sess.ReviewListingID = listingID
	sess.ReviewMessageID = update.MessageID
	h.deps.Sessions.Put(update.ChatID, sess)

	answer(ctx, h.deps, update.CallbackQueryID, "")
	_, err = h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   "📝 Rad etish sababini yozing:",
	})
	return err
}

func (h *moderationCallbackHandler) retireCard(ctx context.Context, update *ports.BotUpdate, text string) error {
	if update.MessageID == 0 {
		return nil
	}
	// Best effort: photo cards cannot have their text edited.
	if err := h.deps.Bot.EditMessageText(ctx, ports.EditMessageParams{
		ChatID:    update.ChatID,
		MessageID: update.MessageID,
		Text:      text,
	}); err != nil {
		h.log.Debug().Err(err).Int("message_id", update.MessageID).Msg("Could not retire review card")
	}
	return nil
}

// handleAdminFeedback finishes a decline started from a review card: the
// admin's next message is the feedback shown to the listing owner.
func (h *messageHandler) handleAdminFeedback(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User) error {
	listingID := sess.ReviewListingID
	sess.Step = domain.StepNone
	sess.ReviewListingID = 0
	sess.ReviewMessageID = 0
	h.deps.Sessions.Put(update.ChatID, sess)

	if !h.deps.Cfg.IsAdmin(update.UserID) || listingID == 0 || update.Text == "" {
		return nil
	}

	err := h.deps.Listings.Decline(ctx, listingID, update.UserID, update.Text)
	switch {
	case errors.Is(err, domain.ErrAlreadyProcessed):
		_, serr := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   "ℹ️ Bu e'lon allaqachon ko'rib chiqilgan.",
		})
		return serr
	case errors.Is(err, domain.ErrNotFound):
		_, serr := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   "E'lon topilmadi.",
		})
		return serr
	case err != nil:
		return err
	}

	listing, err := h.deps.Listings.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing != nil {
		h.deps.Bus.Publish(ctx, bot.TopicListingDeclined, &bot.ListingDeclinedEvent{
			Listing:  listing,
			Feedback: update.Text,
		})
	}

	_, err = h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   "❌ E'lon rad etildi, muallifga xabar yuborildi.",
	})
	return err
}
