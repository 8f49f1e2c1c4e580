package handlers

import (
	"context"

	"uybor/internal/bot"
	"uybor/internal/bot/callback"
	"uybor/internal/bot/i18n"
	"uybor/internal/bot/messages"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func init() {
	bot.RegisterCommand(NewLanguageCommandHandler)
	bot.RegisterCallback(NewLanguageCallbackHandler)
}

func languageButtons() [][]ports.Button {
	return [][]ports.Button{
		{{Text: "🇺🇿 O'zbekcha", Data: callback.Encode(callback.VerbLanguage, "uz")}},
		{{Text: "🇷🇺 Русский", Data: callback.Encode(callback.VerbLanguage, "ru")}},
		{{Text: "🇺🇸 English", Data: callback.Encode(callback.VerbLanguage, "en")}},
	}
}

// languageCommandHandler serves /language and the menu button.
type languageCommandHandler struct {
	deps *bot.Deps
}

// NewLanguageCommandHandler creates the language picker handler.
func NewLanguageCommandHandler(deps *bot.Deps) ports.CommandHandler {
	return &languageCommandHandler{deps: deps}
}

func (h *languageCommandHandler) Command() string { return i18n.MenuLanguage }

func (h *languageCommandHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	_, err := h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
		WithText(i18n.T(user.Language, i18n.KeyChooseLanguage)).
		WithInlineButtons(languageButtons()).
		Build())
	return err
}

// languageCallbackHandler applies the picked language.
type languageCallbackHandler struct {
	deps *bot.Deps
}

// NewLanguageCallbackHandler creates the language selection callback.
func NewLanguageCallbackHandler(deps *bot.Deps) ports.CallbackHandler {
	return &languageCallbackHandler{deps: deps}
}

func (h *languageCallbackHandler) Verbs() []string {
	return []string{callback.VerbLanguage}
}

func (h *languageCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate, action ports.Action, user *domain.User) error {
	lang := domain.Language(action.Arg)
	if !domain.ValidLanguage(lang) {
		answer(ctx, h.deps, update.CallbackQueryID, i18n.T(user.Language, i18n.KeyErrGeneric))
		return nil
	}

	if err := h.deps.Users.UpdateLanguage(ctx, user.TelegramID, lang); err != nil {
		return err
	}
	answer(ctx, h.deps, update.CallbackQueryID, i18n.T(lang, i18n.KeyLanguageSet))
	return sendMainMenu(ctx, h.deps, update.ChatID, lang)
}
