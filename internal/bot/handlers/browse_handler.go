package handlers

import (
	"context"

	"uybor/internal/bot"
	"uybor/internal/bot/i18n"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func init() {
	bot.RegisterCommand(NewBrowseHandler)
}

// browsePageSize is how many listings the feed shows at once.
const browsePageSize = 5

// browseHandler serves the public feed: premium listings first, newest
// after that.
type browseHandler struct {
	deps *bot.Deps
}

// NewBrowseHandler creates the browse feed handler.
func NewBrowseHandler(deps *bot.Deps) ports.CommandHandler {
	return &browseHandler{deps: deps}
}

func (h *browseHandler) Command() string { return i18n.MenuBrowse }

func (h *browseHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	listings, err := h.deps.Listings.ListPublic(ctx, ports.ListingFilter{Limit: browsePageSize})
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		_, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(user.Language, i18n.KeyNoListings),
		})
		return err
	}

	sendListingFeed(ctx, h.deps, update.ChatID, user.Language, listings)
	return nil
}
