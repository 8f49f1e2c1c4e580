package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"uybor/internal/bot"
	"uybor/internal/bot/callback"
	"uybor/internal/bot/i18n"
	"uybor/internal/bot/messages"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

// cardDescriptionLimit caps how much of the description a feed card shows.
const cardDescriptionLimit = 300

// listingCard renders one listing for the browse/search/favorites feeds.
func listingCard(l *domain.Listing, lang domain.Language) string {
	var b strings.Builder

	desc := strings.TrimSpace(l.Description)
	runes := []rune(desc)
	if len(runes) > cardDescriptionLimit {
		desc = string(runes[:cardDescriptionLimit]) + "..."
	}
	b.WriteString(desc)
	b.WriteString("\n\n")

	if l.FullAddress != "" {
		fmt.Fprintf(&b, "📍 %s\n", l.FullAddress)
	}
	fmt.Fprintf(&b, "💰 %s\n", l.PriceText)
	if l.AreaText != "" {
		fmt.Fprintf(&b, "📐 %s m²\n", l.AreaText)
	}
	fmt.Fprintf(&b, "👁 %d", l.ViewsCount)
	return b.String()
}

// feedButtons are the inline actions under a feed card.
func feedButtons(lang domain.Language, listingID int64) [][]ports.Button {
	id := strconv.FormatInt(listingID, 10)
	return [][]ports.Button{
		{
			{Text: i18n.T(lang, i18n.KeyBtnFavAdd), Data: callback.Encode(callback.VerbFavAdd, id)},
			{Text: i18n.T(lang, i18n.KeyBtnContact), Data: callback.Encode(callback.VerbContact, id)},
		},
	}
}

// sendListingFeed renders a batch of cards, bumping the view counter for
// each one shown. A photo listing leads with its first photo.
func sendListingFeed(ctx context.Context, deps *bot.Deps, chatID int64, lang domain.Language, listings []*domain.Listing) {
	for _, l := range listings {
		buttons := feedButtons(lang, l.ID)
		if len(l.PhotoFileIDs) > 0 {
			deps.Bot.SendPhoto(ctx, ports.SendPhotoParams{
				ChatID:      chatID,
				FileID:      l.PhotoFileIDs[0],
				Caption:     listingCard(l, lang),
				ReplyMarkup: &ports.ReplyMarkup{IsInline: true, Buttons: buttons},
			})
		} else {
			deps.Bot.SendMessage(ctx, messages.NewBuilder(chatID).
				WithText(listingCard(l, lang)).
				WithInlineButtons(buttons).
				Build())
		}
		deps.Listings.IncrementViews(ctx, l.ID)
	}
}

// sendMainMenu shows the persistent menu keyboard in the user's language.
func sendMainMenu(ctx context.Context, deps *bot.Deps, chatID int64, lang domain.Language) error {
	var rows [][]string
	for _, row := range i18n.MenuOrder {
		var labels []string
		for _, key := range row {
			labels = append(labels, i18n.MenuLabel(lang, key))
		}
		rows = append(rows, labels)
	}

	_, err := deps.Bot.SendMessage(ctx, messages.NewBuilder(chatID).
		WithText(i18n.T(lang, i18n.KeyMainMenu)).
		WithReplyButtons(rows).
		Build())
	return err
}

// regionButtons builds the region picker, one callback verb for each flow.
func regionButtons(ctx context.Context, deps *bot.Deps, lang domain.Language, verb string) ([]ports.Button, error) {
	regions, err := deps.Regions.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	var buttons []ports.Button
	for _, region := range regions {
		buttons = append(buttons, ports.Button{
			Text: region.Name(lang),
			Data: callback.Encode(verb, region.Key),
		})
	}
	return buttons, nil
}

// districtButtons builds the district picker for a region.
func districtButtons(ctx context.Context, deps *bot.Deps, lang domain.Language, regionKey, verb string) ([]ports.Button, error) {
	districts, err := deps.Regions.ListDistricts(ctx, regionKey)
	if err != nil {
		return nil, err
	}
	var buttons []ports.Button
	for _, district := range districts {
		buttons = append(buttons, ports.Button{
			Text: district.Name(lang),
			Data: callback.Encode(verb, district.Key),
		})
	}
	return buttons, nil
}

// fullAddress resolves "district, region" in the user's language. Unknown
// keys degrade to the raw key rather than failing the flow.
func fullAddress(ctx context.Context, deps *bot.Deps, lang domain.Language, regionKey, districtKey string) string {
	regionName := regionKey
	if region, err := deps.Regions.GetRegion(ctx, regionKey); err == nil && region != nil {
		regionName = region.Name(lang)
	}
	if districtKey == "" {
		return regionName
	}
	districtName := districtKey
	if district, err := deps.Regions.GetDistrict(ctx, regionKey, districtKey); err == nil && district != nil {
		districtName = district.Name(lang)
	}
	return districtName + ", " + regionName
}

// parseListingArg converts a callback argument to a listing id.
func parseListingArg(arg string) (int64, error) {
	return strconv.ParseInt(arg, 10, 64)
}

// answer is shorthand for a toast-style callback answer.
func answer(ctx context.Context, deps *bot.Deps, queryID, text string) {
	deps.Bot.AnswerCallbackQuery(ctx, ports.AnswerCallbackParams{
		CallbackQueryID: queryID,
		Text:            text,
	})
}
