package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"uybor/internal/bot"
	"uybor/internal/bot/callback"
	"uybor/internal/bot/i18n"
	"uybor/internal/bot/messages"
	"uybor/internal/bot/session"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func init() {
	bot.RegisterCommand(NewPostHandler)
	bot.RegisterCallback(NewDraftCallbackHandler)
}

// postHandler starts the listing draft conversation.
type postHandler struct {
	deps *bot.Deps
}

// NewPostHandler creates the "post a listing" handler.
func NewPostHandler(deps *bot.Deps) ports.CommandHandler {
	return &postHandler{deps: deps}
}

func (h *postHandler) Command() string { return i18n.MenuPost }

func (h *postHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	sess := h.deps.Sessions.Get(update.ChatID)
	sess.Draft = &domain.ListingDraft{}
	sess.Step = domain.StepPropertyType
	h.deps.Sessions.Put(update.ChatID, sess)

	return sendPropertyTypePicker(ctx, h.deps, update.ChatID, user.Language)
}

func sendPropertyTypePicker(ctx context.Context, deps *bot.Deps, chatID int64, lang domain.Language) error {
	buttons := [][]ports.Button{
		{
			{Text: i18n.PropertyTypeLabel(lang, domain.PropertyApartment), Data: callback.Encode(callback.VerbPropertyType, string(domain.PropertyApartment))},
			{Text: i18n.PropertyTypeLabel(lang, domain.PropertyHouse), Data: callback.Encode(callback.VerbPropertyType, string(domain.PropertyHouse))},
		},
		{
			{Text: i18n.PropertyTypeLabel(lang, domain.PropertyCommercial), Data: callback.Encode(callback.VerbPropertyType, string(domain.PropertyCommercial))},
			{Text: i18n.PropertyTypeLabel(lang, domain.PropertyLand), Data: callback.Encode(callback.VerbPropertyType, string(domain.PropertyLand))},
		},
	}
	_, err := deps.Bot.SendMessage(ctx, messages.NewBuilder(chatID).
		WithText(i18n.T(lang, i18n.KeyChoosePropertyType)).
		WithInlineButtons(buttons).
		Build())
	return err
}

func sendPurposePicker(ctx context.Context, deps *bot.Deps, chatID int64, lang domain.Language) error {
	buttons := [][]ports.Button{{
		{Text: i18n.PurposeLabel(lang, domain.PurposeSale), Data: callback.Encode(callback.VerbPurpose, string(domain.PurposeSale))},
		{Text: i18n.PurposeLabel(lang, domain.PurposeRent), Data: callback.Encode(callback.VerbPurpose, string(domain.PurposeRent))},
	}}
	_, err := deps.Bot.SendMessage(ctx, messages.NewBuilder(chatID).
		WithText(i18n.T(lang, i18n.KeyChoosePurpose)).
		WithInlineButtons(buttons).
		Build())
	return err
}

// draftCallbackHandler advances the draft through its button-driven steps.
type draftCallbackHandler struct {
	deps *bot.Deps
	log  zerolog.Logger
}

// NewDraftCallbackHandler creates the draft flow callback handler.
func NewDraftCallbackHandler(deps *bot.Deps) ports.CallbackHandler {
	return &draftCallbackHandler{
		deps: deps,
		log:  deps.Log.With().Str("component", "draft_callbacks").Logger(),
	}
}

func (h *draftCallbackHandler) Verbs() []string {
	return []string{
		callback.VerbPropertyType,
		callback.VerbPurpose,
		callback.VerbRegion,
		callback.VerbDistrict,
		callback.VerbBackRegions,
		callback.VerbDescDone,
		callback.VerbDescMore,
		callback.VerbPhotosDone,
		callback.VerbPhotosSkip,
	}
}

func (h *draftCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate, action ports.Action, user *domain.User) error {
	sess := h.deps.Sessions.Get(update.ChatID)
	if sess.Draft == nil {
		// The flow expired or was never started; buttons from an old
		// message can still be pressed.
		answer(ctx, h.deps, update.CallbackQueryID, i18n.T(user.Language, i18n.KeyErrGeneric))
		return nil
	}
	answer(ctx, h.deps, update.CallbackQueryID, "")

	switch action.Verb {
	case callback.VerbPropertyType:
		return h.setPropertyType(ctx, update, sess, user, action.Arg)
	case callback.VerbPurpose:
		return h.setPurpose(ctx, update, sess, user, action.Arg)
	case callback.VerbRegion:
		return h.setRegion(ctx, update, sess, user, action.Arg)
	case callback.VerbDistrict:
		return h.setDistrict(ctx, update, sess, user, action.Arg)
	case callback.VerbBackRegions:
		return h.showRegions(ctx, update, sess, user)
	case callback.VerbDescDone:
		return h.askContact(ctx, update, sess, user)
	case callback.VerbDescMore:
		return h.askMoreDescription(ctx, update, sess, user)
	case callback.VerbPhotosDone, callback.VerbPhotosSkip:
		return h.submit(ctx, update, sess, user)
	}
	return nil
}

func (h *draftCallbackHandler) setPropertyType(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User, arg string) error {
	t := domain.PropertyType(arg)
	if !domain.ValidPropertyType(t) {
		// Forged or stale payload: say so and show the picker again.
		if _, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(user.Language, i18n.KeyErrGeneric),
		}); err != nil {
			return err
		}
		return sendPropertyTypePicker(ctx, h.deps, update.ChatID, user.Language)
	}
	sess.Draft.PropertyType = t
	sess.Step = domain.StepPurpose
	h.deps.Sessions.Put(update.ChatID, sess)

	return sendPurposePicker(ctx, h.deps, update.ChatID, user.Language)
}

func (h *draftCallbackHandler) setPurpose(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User, arg string) error {
	p := domain.Purpose(arg)
	if !domain.ValidPurpose(p) {
		if _, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(user.Language, i18n.KeyErrGeneric),
		}); err != nil {
			return err
		}
		return sendPurposePicker(ctx, h.deps, update.ChatID, user.Language)
	}
	sess.Draft.Purpose = p
	return h.showRegions(ctx, update, sess, user)
}

func (h *draftCallbackHandler) showRegions(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User) error {
	sess.Step = domain.StepRegion
	sess.Draft.RegionKey = ""
	sess.Draft.DistrictKey = ""
	h.deps.Sessions.Put(update.ChatID, sess)

	buttons, err := regionButtons(ctx, h.deps, user.Language, callback.VerbRegion)
	if err != nil {
		return err
	}
	_, err = h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
		WithText(i18n.T(user.Language, i18n.KeySelectRegion)).
		WithInlineGrid(buttons, 2).
		Build())
	return err
}

func (h *draftCallbackHandler) setRegion(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User, arg string) error {
	region, err := h.deps.Regions.GetRegion(ctx, arg)
	if err != nil {
		return err
	}
	if region == nil {
		// The key went stale between keyboard and press.
		if _, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(user.Language, i18n.KeyRegionNotFound),
		}); err != nil {
			return err
		}
		return h.showRegions(ctx, update, sess, user)
	}
	sess.Draft.RegionKey = region.Key
	sess.Step = domain.StepDistrict
	h.deps.Sessions.Put(update.ChatID, sess)

	return h.showDistricts(ctx, update, user, region.Key)
}

func (h *draftCallbackHandler) showDistricts(ctx context.Context, update *ports.BotUpdate, user *domain.User, regionKey string) error {
	lang := user.Language
	buttons, err := districtButtons(ctx, h.deps, lang, regionKey, callback.VerbDistrict)
	if err != nil {
		return err
	}
	buttons = append(buttons, ports.Button{
		Text: i18n.T(lang, i18n.KeyBack),
		Data: callback.Encode(callback.VerbBackRegions, ""),
	})
	_, err = h.deps.Bot.SendMessage(ctx, messages.NewBuilder(update.ChatID).
		WithText(i18n.T(lang, i18n.KeySelectDistrict)).
		WithInlineGrid(buttons, 2).
		Build())
	return err
}

func (h *draftCallbackHandler) setDistrict(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User, arg string) error {
	district, err := h.deps.Regions.GetDistrict(ctx, sess.Draft.RegionKey, arg)
	if err != nil {
		return err
	}
	if district == nil {
		if _, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
			ChatID: update.ChatID,
			Text:   i18n.T(user.Language, i18n.KeyDistrictNotFound),
		}); err != nil {
			return err
		}
		return h.showDistricts(ctx, update, user, sess.Draft.RegionKey)
	}
	sess.Draft.DistrictKey = district.Key
	sess.Step = domain.StepPrice
	h.deps.Sessions.Put(update.ChatID, sess)

	_, err = h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(user.Language, i18n.KeyAskPrice),
	})
	return err
}

func (h *draftCallbackHandler) askContact(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User) error {
	if sess.Step != domain.StepConfirmation {
		return nil
	}
	sess.Step = domain.StepContactInfo
	h.deps.Sessions.Put(update.ChatID, sess)

	_, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(user.Language, i18n.KeyAskContact),
	})
	return err
}

func (h *draftCallbackHandler) askMoreDescription(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User) error {
	if sess.Step != domain.StepConfirmation {
		return nil
	}
	sess.Step = domain.StepDescription
	h.deps.Sessions.Put(update.ChatID, sess)

	_, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(user.Language, i18n.KeyAskMoreDescription),
	})
	return err
}

// submit finalizes the draft into a pending listing and fans the review
// card out to the admins.
func (h *draftCallbackHandler) submit(ctx context.Context, update *ports.BotUpdate, sess *session.Session, user *domain.User) error {
	if sess.Step != domain.StepPhotos {
		return nil
	}

	address := fullAddress(ctx, h.deps, user.Language, sess.Draft.RegionKey, sess.Draft.DistrictKey)
	listing := sess.Draft.Finalize(user.ID, address, time.Now())

	if err := h.deps.Listings.Create(ctx, listing); err != nil {
		return err
	}
	h.deps.Sessions.Clear(update.ChatID)
	h.deps.Collector.Discard(update.ChatID)

	h.log.Info().Int64("listing_id", listing.ID).Msg("Listing submitted for review")
	h.deps.Bus.Publish(ctx, bot.TopicListingSubmitted, &bot.ListingEvent{Listing: listing})

	if _, err := h.deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID: update.ChatID,
		Text:   i18n.T(user.Language, i18n.KeySubmittedForReview),
	}); err != nil {
		return err
	}
	return sendMainMenu(ctx, h.deps, update.ChatID, user.Language)
}
