package i18n

import "uybor/internal/core/domain"

// Menu keys are stable identifiers for the persistent reply-keyboard
// buttons. The router resolves an incoming localized label back to its key
// and dispatches it like a command.
const (
	MenuPost      = "menu_post"
	MenuBrowse    = "menu_browse"
	MenuMine      = "menu_mine"
	MenuSearch    = "menu_search"
	MenuFavorites = "menu_favorites"
	MenuInfo      = "menu_info"
	MenuLanguage  = "menu_language"
)

var menuLabels = map[domain.Language]map[string]string{
	domain.LangUz: {
		MenuPost:      "➕ E'lon joylash",
		MenuBrowse:    "🏠 E'lonlarni ko'rish",
		MenuMine:      "📋 Mening e'lonlarim",
		MenuSearch:    "🔍 Qidiruv",
		MenuFavorites: "❤️ Sevimlilar",
		MenuInfo:      "ℹ️ Ma'lumot",
		MenuLanguage:  "🌐 Til",
	},
	domain.LangRu: {
		MenuPost:      "➕ Разместить объявление",
		MenuBrowse:    "🏠 Смотреть объявления",
		MenuMine:      "📋 Мои объявления",
		MenuSearch:    "🔍 Поиск",
		MenuFavorites: "❤️ Избранное",
		MenuInfo:      "ℹ️ Информация",
		MenuLanguage:  "🌐 Язык",
	},
	domain.LangEn: {
		MenuPost:      "➕ Post a listing",
		MenuBrowse:    "🏠 Browse listings",
		MenuMine:      "📋 My listings",
		MenuSearch:    "🔍 Search",
		MenuFavorites: "❤️ Favorites",
		MenuInfo:      "ℹ️ Info",
		MenuLanguage:  "🌐 Language",
	},
}

// menuByLabel is the reverse index, built once at init. Labels are unique
// across languages.
var menuByLabel = func() map[string]string {
	index := make(map[string]string)
	for _, labels := range menuLabels {
		for key, label := range labels {
			index[label] = key
		}
	}
	return index
}()

// MenuLabel returns the localized label for a menu key.
func MenuLabel(lang domain.Language, key string) string {
	if labels, ok := menuLabels[lang]; ok {
		if label, ok := labels[key]; ok {
			return label
		}
	}
	return menuLabels[domain.DefaultLanguage][key]
}

// MenuKeyForLabel resolves a reply-keyboard label in any language back to
// its menu key.
func MenuKeyForLabel(label string) (string, bool) {
	key, ok := menuByLabel[label]
	return key, ok
}

// MenuOrder is the row layout of the main menu keyboard.
var MenuOrder = [][]string{
	{MenuPost, MenuBrowse},
	{MenuSearch, MenuFavorites},
	{MenuMine, MenuInfo},
	{MenuLanguage},
}
