package handlers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"uybor/internal/bot"
	"uybor/internal/bot/callback"
	"uybor/internal/bot/i18n"
	"uybor/internal/bot/input"
	"uybor/internal/bot/messages"
	"uybor/internal/bot/session"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func init() {
	bot.RegisterMessage(NewMessageHandler)
}

// messageHandler is the single free-form message handler. It dispatches on
// the chat's conversation step; text outside any flow just gets the menu.
type messageHandler struct {
	deps *bot.Deps
	log  zerolog.Logger
}

// NewMessageHandler creates the conversation step dispatcher.
func NewMessageHandler(deps *bot.Deps) ports.MessageHandler {
	return &messageHandler{
		deps: deps,
		log:  deps.Log.With().Str("component", "message_handler").Logger(),
	}
}

func (h *messageHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	sess := h.deps.Sessions.Get(update.ChatID)

	switch sess.Step {
	case domain.StepPrice:
		return h.handlePrice(ctx, update, sess, user)
	case domain.StepArea:
		return h.handleArea(ctx, update, sess, user)
	case domain.StepDescription:
		return h.handleDescription(ctx, update, sess, user)
	case domain.StepContactInfo:
		return h.handleContact(ctx, update, sess, user)
	case domain.StepPhotos:
		return h.handlePhoto(ctx, update, sess, user)
	case domain.StepSearchKeyword:
		return h.handleSearchKeyword(ctx, update, sess, user)
	case domain.StepAdminFeedback:
		return h.handleAdminFeedback(ctx, update, sess, user)
	}

	// Free text outside any flow: nudge back to the menu.
	return sendMainMenu(ctx, h.deps, update.ChatID, user.Language)
}

func (h *messageHandler) handlePrice(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User) error {
	if sess.Draft == nil {
		return nil
	}
	value, text, err := input.ParsePrice(update.Text)
	if err != nil {
		_, serr := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(user.Language, i18n.KeyInvalidPrice),
		})
		return serr
	}
	sess.Draft.Price = value
	sess.Draft.PriceText = text
	sess.Step = domain.StepArea
	h.deps.Sessions.Put(update.ChatID, sess)

	_, err = h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(user.Language, i18n.KeyAskArea),
	})
	return err
}

func (h *messageHandler) handleArea(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User) error {
	if sess.Draft == nil {
		return nil
	}
	value, text, err := input.ParseArea(update.Text)
	if err != nil {
		_, serr := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(user.Language, i18n.KeyInvalidArea),
		})
		return serr
	}
	sess.Draft.Area = value
	sess.Draft.AreaText = text
	sess.Step = domain.StepDescription
	h.deps.Sessions.Put(update.ChatID, sess)

	// Show the pre-filled sample so the user writes in the expected shape.
	lang := user.Language
	address := fullAddress(ctx, h.deps, lang, sess.Draft.RegionKey, sess.Draft.DistrictKey)
	template := i18n.ListingTemplate(lang, sess.Draft.PropertyType, sess.Draft.Purpose,
		sess.Draft.PriceText, sess.Draft.AreaText, address)

	if _, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(lang, i18n.KeyTemplateShown),
	}); err != nil {
		return err
	}
	_, err = h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   template,
	})
	return err
}

func (h *messageHandler) handleDescription(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User) error {
	if sess.Draft == nil || update.Text == "" {
		return nil
	}
	if sess.Draft.Description == "" {
		sess.Draft.Description = update.Text
	} else {
		sess.Draft.Description += "\n" + update.Text
	}
	sess.Step = domain.StepConfirmation
	h.deps.Sessions.Put(update.ChatID, sess)

	lang := user.Language
	buttons := [][]ports.Button{{
		{Text: i18n.T(lang, i18n.KeyBtnDescDone), Data: callback.Encode(callback.VerbDescDone, "")},
		{Text: i18n.T(lang, i18n.KeyBtnDescMore), Data: callback.Encode(callback.VerbDescMore, "")},
	}}
	_, err := h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
		WithText(i18n.T(lang, i18n.KeyConfirmDescription)).
		WithInlineButtons(buttons).
		Build())
	return err
}

func (h *messageHandler) handleContact(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User) error {
	if sess.Draft == nil || update.Text == "" {
		return nil
	}
	sess.Draft.ContactInfo = update.Text
	sess.Step = domain.StepPhotos
	h.deps.Sessions.Put(update.ChatID, sess)

	lang := user.Language
	buttons := [][]ports.Button{{
		{Text: i18n.T(lang, i18n.KeyBtnPhotosDone), Data: callback.Encode(callback.VerbPhotosDone, "")},
		{Text: i18n.T(lang, i18n.KeyBtnPhotosSkip), Data: callback.Encode(callback.VerbPhotosSkip, "")},
	}}
	_, err := h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
		WithText(i18n.T(lang, i18n.KeyAskPhotos)).
		WithInlineButtons(buttons).
		Build())
	return err
}

// handlePhoto feeds the collector. Album photos arrive as separate updates
// sharing a media group id; the collector flushes the whole batch once the
// album has settled.
func (h *messageHandler) handlePhoto(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User) error {
	if sess.Draft == nil || update.Photo == nil {
		return nil
	}

	chatID := update.ChatID
	lang := user.Language
	h.deps.Collector.Submit(chatID, update.Photo.FileID, update.MediaGroupID, func(fileIDs []string, grouped bool) {
		sess := h.deps.Sessions.Get(chatID)
		if sess.Draft == nil || sess.Step != domain.StepPhotos {
			return
		}
		sess.Draft.PhotoFileIDs = append(sess.Draft.PhotoFileIDs, fileIDs...)
		h.deps.Sessions.Put(chatID, sess)

		h.deps.Bot.SendMessage(context.Background(), ports.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf(i18n.T(lang, i18n.KeyPhotosReceived), len(sess.Draft.PhotoFileIDs)),
		})
	})
	return nil
}
