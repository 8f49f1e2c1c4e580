package handlers

import (
	"context"
	"fmt"

	"uybor/internal/bot"
	"uybor/internal/bot/callback"
	"uybor/internal/bot/i18n"
	"uybor/internal/bot/messages"
	"uybor/internal/bot/session"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func init() {
	bot.RegisterCommand(NewSearchHandler)
	bot.RegisterCallback(NewSearchCallbackHandler)
}

// searchPageSize caps how many results one query renders.
const searchPageSize = 10

// searchHandler opens the search type picker.
type searchHandler struct {
	deps *bot.Deps
}

// NewSearchHandler creates the search menu handler.
func NewSearchHandler(deps *bot.Deps) ports.CommandHandler {
	return &searchHandler{deps: deps}
}

func (h *searchHandler) Command() string { return i18n.MenuSearch }

func (h *searchHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	lang := user.Language
	buttons := [][]ports.Button{
		{{Text: i18n.T(lang, i18n.KeySearchByKeyword), Data: callback.Encode(callback.VerbSearchKeyword, "")}},
		{{Text: i18n.T(lang, i18n.KeySearchByLocation), Data: callback.Encode(callback.VerbSearchLocation, "")}},
	}
	_, err := h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
		WithText(i18n.T(lang, i18n.KeyChooseSearchType)).
		WithInlineButtons(buttons).
		Build())
	return err
}

// searchCallbackHandler walks the location picker and runs searches.
type searchCallbackHandler struct {
	deps *bot.Deps
}

// NewSearchCallbackHandler creates the search flow callback handler.
func NewSearchCallbackHandler(deps *bot.Deps) ports.CallbackHandler {
	return &searchCallbackHandler{deps: deps}
}

func (h *searchCallbackHandler) Verbs() []string {
	return []string{
		callback.VerbSearchKeyword,
		callback.VerbSearchLocation,
		callback.VerbSearchRegion,
		callback.VerbSearchDistrict,
		callback.VerbSearchAll,
		callback.VerbSearchBack,
	}
}

func (h *searchCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate, action ports.Action, user *domain.User) error {
	answer(ctx, h.deps, update.CallbackQueryID, "")
	sess := h.deps.Sessions.Get(update.ChatID)
	lang := user.Language

	switch action.Verb {
	case callback.VerbSearchKeyword:
		sess.Step = domain.StepSearchKeyword
		h.deps.Sessions.Put(update.ChatID, sess)
		_, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(lang, i18n.KeySearchPrompt),
		})
		return err

	case callback.VerbSearchLocation, callback.VerbSearchBack:
		sess.Step = domain.StepSearchRegion
		sess.SearchRegion = ""
		h.deps.Sessions.Put(update.ChatID, sess)

		buttons, err := regionButtons(ctx, h.deps, lang, callback.VerbSearchRegion)
		if err != nil {
			return err
		}
		_, err = h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
			WithText(i18n.T(lang, i18n.KeySearchRegion)).
			WithInlineGrid(buttons, 2).
			Build())
		return err

	case callback.VerbSearchRegion:
		region, err := h.deps.Regions.GetRegion(ctx, action.Arg)
		if err != nil {
			return err
		}
		if region == nil {
			return nil
		}
		sess.Step = domain.StepSearchDistrict
		sess.SearchRegion = region.Key
		h.deps.Sessions.Put(update.ChatID, sess)

		buttons, err := districtButtons(ctx, h.deps, lang, region.Key, callback.VerbSearchDistrict)
		if err != nil {
			return err
		}
		buttons = append(buttons,
			ports.Button{Text: i18n.T(lang, i18n.KeyAllRegion), Data: callback.Encode(callback.VerbSearchAll, region.Key)},
			ports.Button{Text: i18n.T(lang, i18n.KeyBack), Data: callback.Encode(callback.VerbSearchBack, "")},
		)
		_, err = h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
			WithText(i18n.T(lang, i18n.KeySearchDistrictAll)).
			WithInlineGrid(buttons, 2).
			Build())
		return err

	case callback.VerbSearchAll:
		return h.runSearch(ctx, update, sess, user, ports.ListingFilter{
			RegionKey: action.Arg,
			Limit:     searchPageSize,
		})

	case callback.VerbSearchDistrict:
		return h.runSearch(ctx, update, sess, user, ports.ListingFilter{
			RegionKey:   sess.SearchRegion,
			DistrictKey: action.Arg,
			Limit:       searchPageSize,
		})
	}
	return nil
}

func (h *searchCallbackHandler) runSearch(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User, filter ports.ListingFilter) error {
	sess.Step = domain.StepNone
	sess.SearchRegion = ""
	h.deps.Sessions.Put(update.ChatID, sess)
	return renderSearchResults(ctx, h.deps, update.ChatID, user.Language, filter)
}

// handleSearchKeyword runs the keyword search typed after the prompt.
func (h *messageHandler) handleSearchKeyword(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User) error {
	if update.Text == "" {
		return nil
	}
	sess.Step = domain.StepNone
	h.deps.Sessions.Put(update.ChatID, sess)

	return renderSearchResults(ctx, h.deps, update.ChatID, user.Language, ports.ListingFilter{
		Query: update.Text,
		Limit: searchPageSize,
	})
}

func renderSearchResults(ctx context.Context, deps *bot.Deps, chatID int64, lang domain.Language, filter ports.ListingFilter) error {
	listings, err := deps.Listings.ListPublic(ctx, filter)
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		_, err := deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: chatID,
			Text:   i18n.T(lang, i18n.KeyNoSearchResults),
		})
		return err
	}

	if _, err := deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf(i18n.T(lang, i18n.KeySearchResults), len(listings)),
	}); err != nil {
		return err
	}
	sendListingFeed(ctx, deps, chatID, lang, listings)
	return nil
}
