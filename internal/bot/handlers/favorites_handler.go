package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"uybor/internal/bot"
	"uybor/internal/bot/callback"
	"uybor/internal/bot/i18n"
	"uybor/internal/bot/messages"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func init() {
	bot.RegisterCommand(NewFavoritesHandler)
	bot.RegisterCallback(NewFavoritesCallbackHandler)
}

// favoritesHandler lists the user's saved listings.
type favoritesHandler struct {
	deps *bot.Deps
}

// NewFavoritesHandler creates the favorites menu handler.
func NewFavoritesHandler(deps *bot.Deps) ports.CommandHandler {
	return &favoritesHandler{deps: deps}
}

func (h *favoritesHandler) Command() string { return i18n.MenuFavorites }

func (h *favoritesHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	lang := user.Language
	listings, err := h.deps.Favorites.ListByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		_, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(lang, i18n.KeyFavEmpty),
		})
		return err
	}

	if _, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(lang, i18n.KeyFavoritesHead),
	}); err != nil {
		return err
	}

	for _, l := range listings {
		id := strconv.FormatInt(l.ID, 10)
		buttons := [][]ports.Button{{
			{Text: i18n.T(lang, i18n.KeyBtnFavRemove), Data: callback.Encode(callback.VerbFavDel, id)},
			{Text: i18n.T(lang, i18n.KeyBtnContact), Data: callback.Encode(callback.VerbContact, id)},
		}}
		if len(l.PhotoFileIDs) > 0 {
			h.deps.Bot.SendPhoto(ctx, ports.SendPhotoParams{
				ChatID:      update.ChatID,
				FileID:      l.PhotoFileIDs[0],
				Caption:     listingCard(l, lang),
				ReplyMarkup: &ports.ReplyMarkup{IsInline: true, Buttons: buttons},
			})
		} else {
			h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
				WithText(listingCard(l, lang)).
				WithInlineButtons(buttons).
				Build())
		}
	}
	return nil
}

// favoritesCallbackHandler handles add/remove/contact buttons on cards.
type favoritesCallbackHandler struct {
	deps *bot.Deps
}

// NewFavoritesCallbackHandler creates the favorites callback handler.
func NewFavoritesCallbackHandler(deps *bot.Deps) ports.CallbackHandler {
	return &favoritesCallbackHandler{deps: deps}
}

func (h *favoritesCallbackHandler) Verbs() []string {
	return []string{callback.VerbFavAdd, callback.VerbFavDel, callback.VerbContact}
}

func (h *favoritesCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate, action ports.Action, user *domain.User) error {
	lang := user.Language
	listingID, err := parseListingArg(action.Arg)
	if err != nil {
		answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyErrGeneric))
		return nil
	}

	switch action.Verb {
	case callback.VerbFavAdd:
		// Stale ❤️ buttons outlive the listing; only approved+active
		// listings may be favorited.
		listing, err := h.deps.Listings.GetByID(ctx, listingID)
		if err != nil {
			return err
		}
		if listing == nil || !listing.IsPublic() {
			answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyFavGone))
			return nil
		}

		added, err := h.deps.Favorites.Add(ctx, user.ID, listingID)
		if err != nil {
			return err
		}
		if added {
			answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyFavAdded))
		} else {
			answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyFavExists))
		}
		return nil

	case callback.VerbFavDel:
		err := h.deps.Favorites.Remove(ctx, user.ID, listingID)
		if errors.Is(err, domain.ErrNotFound) {
			answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyFavNotFound))
			return nil
		}
		if err != nil {
			return err
		}
		answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyFavRemoved))
		return nil

	case callback.VerbContact:
		listing, err := h.deps.Listings.GetByID(ctx, listingID)
		if err != nil {
			return err
		}
		if listing == nil {
			answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyErrGeneric))
			return nil
		}
		answer(ctx, h.deps, update.CallbackQueryID, "")
		_, err = h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   fmt.Sprintf(i18n.T(lang, i18n.KeyContactInfo), listing.ContactInfo),
		})
		return err
	}
	return nil
}
