package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"uybor/internal/bot"
	"uybor/internal/bot/callback"
	"uybor/internal/bot/i18n"
	"uybor/internal/bot/messages"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func init() {
	bot.RegisterCommand(NewPostingsHandler)
	bot.RegisterCallback(NewPostingsCallbackHandler)
}

// postingsHandler lists the user's own listings with lifecycle buttons.
type postingsHandler struct {
	deps *bot.Deps
}

// NewPostingsHandler creates the "my listings" handler.
func NewPostingsHandler(deps *bot.Deps) ports.CommandHandler {
	return &postingsHandler{deps: deps}
}

func (h *postingsHandler) Command() string { return i18n.MenuMine }

func (h *postingsHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	lang := user.Language
	listings, err := h.deps.Listings.ListByOwner(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		_, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(lang, i18n.KeyNoPostings),
		})
		return err
	}

	if _, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(lang, i18n.KeyMyPostingsHead),
	}); err != nil {
		return err
	}

	for _, l := range listings {
		_, err := h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
			WithText(ownListingCard(l, lang)).
			WithInlineButtons(ownListingButtons(l, lang)).
			Build())
		if err != nil {
			return err
		}
	}
	return nil
}

// ownListingCard shows the owner's view: status and counters included.
func ownListingCard(l *domain.Listing, lang domain.Language) string {
	var status i18n.Key
	switch l.ApprovalStatus {
	case domain.ApprovalApproved:
		status = i18n.KeyStatusApproved
	case domain.ApprovalDeclined:
		status = i18n.KeyStatusDeclined
	default:
		status = i18n.KeyStatusPending
	}
	active := i18n.KeyStatusActive
	if !l.IsActive {
		active = i18n.KeyStatusInactive
	}

	card := fmt.Sprintf("#%d %s\n\n%s | %s\n💰 %s\n👁 %d  ❤️ %d",
		l.ID, l.DisplayTitle(),
		i18n.T(lang, status), i18n.T(lang, active),
		l.PriceText, l.ViewsCount, l.FavoritesCount)
	if l.AdminFeedback != nil {
		card += "\n📝 " + *l.AdminFeedback
	}
	return card
}

func ownListingButtons(l *domain.Listing, lang domain.Language) [][]ports.Button {
	id := strconv.FormatInt(l.ID, 10)
	var row []ports.Button
	if l.ApprovalStatus == domain.ApprovalApproved {
		if l.IsActive {
			row = append(row, ports.Button{Text: i18n.T(lang, i18n.KeyBtnDeactivate), Data: callback.Encode(callback.VerbDeactivate, id)})
		} else {
			row = append(row, ports.Button{Text: i18n.T(lang, i18n.KeyBtnActivate), Data: callback.Encode(callback.VerbActivate, id)})
		}
	}
	row = append(row, ports.Button{Text: i18n.T(lang, i18n.KeyBtnDelete), Data: callback.Encode(callback.VerbDelete, id)})
	return [][]ports.Button{row}
}

// postingsCallbackHandler applies activate/deactivate/delete decisions.
type postingsCallbackHandler struct {
	deps *bot.Deps
	log  zerolog.Logger
}

// NewPostingsCallbackHandler creates the listing lifecycle callback handler.
func NewPostingsCallbackHandler(deps *bot.Deps) ports.CallbackHandler {
	return &postingsCallbackHandler{
		deps: deps,
		log:  deps.Log.With().Str("component", "postings_callbacks").Logger(),
	}
}

func (h *postingsCallbackHandler) Verbs() []string {
	return []string{
		callback.VerbActivate,
		callback.VerbDeactivate,
		callback.VerbDelete,
		callback.VerbDeleteYes,
		callback.VerbDeleteNo,
	}
}

func (h *postingsCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate, action ports.Action, user *domain.User) error {
	lang := user.Language

	if action.Verb == callback.VerbDeleteNo {
		answer(ctx, h.deps, update.CallbackQueryID, "")
		return nil
	}

	listingID, err := parseListingArg(action.Arg)
	if err != nil {
		answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyErrGeneric))
		return nil
	}

	// Every lifecycle action requires the owner or an administrator.
	listing, err := h.deps.Listings.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing == nil || (listing.OwnerID != user.ID && !h.deps.Cfg.IsAdmin(update.UserID)) {
		answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyErrGeneric))
		return nil
	}

	switch action.Verb {
	case callback.VerbActivate:
		if err := h.deps.Listings.SetActive(ctx, listingID, true); err != nil {
			return err
		}
		answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyActivated))
		return nil

	case callback.VerbDeactivate:
		// Favoriters are captured before the flip so they can be told.
		favoriters, err := h.deps.Favorites.UsersForListing(ctx, listingID)
		if err != nil {
			return err
		}
		if err := h.deps.Listings.SetActive(ctx, listingID, false); err != nil {
			return err
		}
		h.deps.Bus.Publish(ctx, bot.TopicListingDeactivated, &bot.ListingGoneEvent{
			Listing:    listing,
			Favoriters: favoriters,
		})
		answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyDeactivated))
		return nil

	case callback.VerbDelete:
		id := strconv.FormatInt(listingID, 10)
		buttons := [][]ports.Button{{
			{Text: i18n.T(lang, i18n.KeyBtnYes), Data: callback.Encode(callback.VerbDeleteYes, id)},
			{Text: i18n.T(lang, i18n.KeyBtnNo), Data: callback.Encode(callback.VerbDeleteNo, "")},
		}}
		answer(ctx, h.deps, update.CallbackQueryID, "")
		_, err := h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
			WithText(i18n.T(lang, i18n.KeyDeleteConfirm)).
			WithInlineButtons(buttons).
			Build())
		return err

	case callback.VerbDeleteYes:
		favoriters, err := h.deps.Listings.Delete(ctx, listingID)
		if err != nil {
			return err
		}
		h.log.Info().Int64("listing_id", listingID).Int("favoriters", len(favoriters)).Msg("Listing deleted by owner")
		h.deps.Bus.Publish(ctx, bot.TopicListingDeleted, &bot.ListingGoneEvent{
			Listing:    listing,
			Favoriters: favoriters,
			Deleted:    true,
		})
		answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyDeleteDone))
		return nil
	}
	return nil
}
