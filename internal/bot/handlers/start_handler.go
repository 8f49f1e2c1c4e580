package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"uybor/internal/bot"
	"uybor/internal/bot/i18n"
	"uybor/internal/bot/messages"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func init() {
	bot.RegisterCommand(NewStartHandler)
	bot.RegisterCommand(NewMenuHandler)
	bot.RegisterCommand(NewInfoHandler)
	bot.RegisterCommand(NewHelpHandler)
}

// startHandler greets the user, creating the account on first contact.
type startHandler struct {
	deps *bot.Deps
	log  zerolog.Logger
}

// NewStartHandler creates the /start handler.
func NewStartHandler(deps *bot.Deps) ports.CommandHandler {
	return &startHandler{
		deps: deps,
		log:  deps.Log.With().Str("component", "start_handler").Logger(),
	}
}

func (h *startHandler) Command() string { return "start" }

func (h *startHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	// A stale flow is abandoned by /start.
	h.deps.Sessions.Clear(update.ChatID)

	upserted := &domain.User{
		TelegramID: update.UserID,
	}
	if user != nil {
		upserted.ID = user.ID
		upserted.Language = user.Language
	}
	if update.Username != "" {
		upserted.Username = &update.Username
	}
	if update.FirstName != "" {
		upserted.FirstName = &update.FirstName
	}
	if update.LastName != "" {
		upserted.LastName = &update.LastName
	}
	if err := h.deps.Users.Upsert(ctx, upserted); err != nil {
		return err
	}

	if user == nil {
		h.log.Info().Int64("telegram_id", update.UserID).Msg("New user registered")
		// First contact: language selection before anything else.
		_, err := h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
			WithText(i18n.T(domain.DefaultLanguage, i18n.KeyWelcome)+"\n\n"+i18n.T(domain.DefaultLanguage, i18n.KeyChooseLanguage)).
			WithInlineButtons(languageButtons()).
			Build())
		return err
	}

	if _, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(user.Language, i18n.KeyWelcome),
	}); err != nil {
		return err
	}
	return sendMainMenu(ctx, h.deps, update.ChatID, user.Language)
}

// menuHandler re-shows the main menu and resets any flow in progress.
type menuHandler struct {
	deps *bot.Deps
}

// NewMenuHandler creates the /menu handler.
func NewMenuHandler(deps *bot.Deps) ports.CommandHandler {
	return &menuHandler{deps: deps}
}

func (h *menuHandler) Command() string { return "menu" }

func (h *menuHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	h.deps.Sessions.Clear(update.ChatID)
	return sendMainMenu(ctx, h.deps, update.ChatID, user.Language)
}

// infoHandler serves the info menu button.
type infoHandler struct {
	deps *bot.Deps
}

// NewInfoHandler creates the info handler.
func NewInfoHandler(deps *bot.Deps) ports.CommandHandler {
	return &infoHandler{deps: deps}
}

func (h *infoHandler) Command() string { return i18n.MenuInfo }

func (h *infoHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	_, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(user.Language, i18n.KeyInfo),
	})
	return err
}

// helpHandler aliases /help to the info text.
type helpHandler struct {
	deps *bot.Deps
}

// NewHelpHandler creates the /help handler.
func NewHelpHandler(deps *bot.Deps) ports.CommandHandler {
	return &helpHandler{deps: deps}
}

func (h *helpHandler) Command() string { return "help" }

func (h *helpHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	_, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(user.Language, i18n.KeyInfo),
	})
	return err
}
