package bot

import (
	"context"

	"github.com/rs/zerolog"

	"uybor/internal/bot/callback"
	"uybor/internal/bot/i18n"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

// Router holds all handler "plugins" and routes each normalized update to
// the right one. Menu-keyboard labels are resolved to their stable menu
// key and dispatched like commands, so /search and the "🔍" button share a
// handler.
type Router struct {
	log              zerolog.Logger
	userRepo         ports.UserRepository
	botClient        ports.BotClient
	commandHandlers  map[string]ports.CommandHandler
	callbackHandlers map[string]ports.CallbackHandler
	messageHandler   ports.MessageHandler
}

// NewRouter creates a new bot router.
func NewRouter(
	userRepo ports.UserRepository,
	botClient ports.BotClient,
	baseLogger *zerolog.Logger,
) *Router {
	return &Router{
		log:              baseLogger.With().Str("component", "bot_router").Logger(),
		userRepo:         userRepo,
		botClient:        botClient,
		commandHandlers:  make(map[string]ports.CommandHandler),
		callbackHandlers: make(map[string]ports.CallbackHandler),
	}
}

// RegisterCommandHandler adds a command (or menu key) handler.
func (r *Router) RegisterCommandHandler(handler ports.CommandHandler) {
	cmd := handler.Command()
	r.commandHandlers[cmd] = handler
	r.log.Info().Str("command", cmd).Msg("Registered command handler")
}

// RegisterCallbackHandler adds a callback handler for each verb it claims.
func (r *Router) RegisterCallbackHandler(handler ports.CallbackHandler) {
	for _, verb := range handler.Verbs() {
		r.callbackHandlers[verb] = handler
		r.log.Info().Str("verb", verb).Msg("Registered callback handler")
	}
}

// SetMessageHandler registers the single free-form message handler.
func (r *Router) SetMessageHandler(handler ports.MessageHandler) {
	r.messageHandler = handler
}

// Dispatch is the entry point for a normalized update.
func (r *Router) Dispatch(ctx context.Context, update *ports.BotUpdate) {
	ctxLogger := r.log.With().
		Int64("user_id", update.UserID).
		Int64("chat_id", update.ChatID).
		Logger()
	ctx = ctxLogger.WithContext(ctx)

	// The user is fetched once; handlers receive it. A nil user means
	// first contact, which only /start handles.
	user, err := r.userRepo.GetByTelegramID(ctx, update.UserID)
	if err != nil {
		ctxLogger.Error().Err(err).Msg("Failed to get user for handling")
		r.botClient.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(domain.DefaultLanguage, i18n.KeyErrGeneric),
		})
		return
	}
	if user != nil && user.IsBlocked {
		ctxLogger.Warn().Msg("Dropping update from blocked user")
		return
	}

	if update.Command != "" {
		r.dispatchCommand(ctx, ctxLogger, update.Command, update, user)
		return
	}

	if update.CallbackData != nil {
		r.dispatchCallback(ctx, ctxLogger, update, user)
		return
	}

	// Menu button presses arrive as plain text in a localized label.
	if update.Text != "" && update.Photo == nil {
		if key, ok := i18n.MenuKeyForLabel(update.Text); ok {
			r.dispatchCommand(ctx, ctxLogger, key, update, user)
			return
		}
	}

	if user == nil {
		r.botClient.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   "Please type /start to begin.",
		})
		return
	}

	if r.messageHandler != nil {
		if err := r.messageHandler.Handle(ctx, update, user); err != nil {
			ctxLogger.Error().Err(err).Msg("Message handler failed")
		}
		return
	}

	ctxLogger.Info().Str("text", update.Text).Msg("Received unhandled message (no handler)")
}

func (r *Router) dispatchCommand(ctx context.Context, log zerolog.Logger, command string, update *ports.BotUpdate, user *domain.User) {
	handler, ok := r.commandHandlers[command]
	if !ok {
		log.Warn().Str("command", command).Msg("No command handler found")
		return
	}

	// Only /start may run for an unknown user; it creates the account.
	if user == nil && command != "start" {
		r.botClient.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   "Please type /start to begin.",
		})
		return
	}

	log.Info().Str("handler", command).Msg("Routing to command handler")
	if err := handler.Handle(ctx, update, user); err != nil {
		log.Error().Err(err).Str("command", command).Msg("Command handler failed")
		r.sendGenericError(ctx, update, user)
	}
}

func (r *Router) dispatchCallback(ctx context.Context, log zerolog.Logger, update *ports.BotUpdate, user *domain.User) {
	action := callback.Decode(*update.CallbackData)

	// Stop the button spinner even when nothing will handle the press.
	handler, ok := r.callbackHandlers[action.Verb]
	if !ok || user == nil {
		log.Warn().Str("verb", action.Verb).Msg("No callback handler found")
		r.botClient.AnswerCallbackQuery(ctx, ports.AnswerCallbackParams{
			CallbackQueryID: update.CallbackQueryID,
		})
		return
	}

	log.Info().Str("verb", action.Verb).Str("arg", action.Arg).Msg("Routing to callback handler")
	if err := handler.Handle(ctx, update, action, user); err != nil {
		log.Error().Err(err).Str("verb", action.Verb).Msg("Callback handler failed")
		r.botClient.AnswerCallbackQuery(ctx, ports.AnswerCallbackParams{
			CallbackQueryID: update.CallbackQueryID,
			Text:            i18n.T(user.Language, i18n.KeyErrGeneric),
			ShowAlert:       true,
		})
	}
}

func (r *Router) sendGenericError(ctx context.Context, update *ports.BotUpdate, user *domain.User) {
	lang := domain.DefaultLanguage
	if user != nil {
		lang = user.Language
	}
	r.botClient.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(lang, i18n.KeyErrGeneric),
	})
}
