// Package i18n holds every user-facing string in the three supported
// languages. Lookups fall back to Uzbek, the default language, when a
// translation is missing.
package i18n

import (
	"fmt"

	"uybor/internal/core/domain"
)

// Key identifies one translatable message.
type Key string

const (
	// Onboarding and menu.
	KeyWelcome        Key = "welcome"
	KeyChooseLanguage Key = "choose_language"
	KeyLanguageSet    Key = "language_set"
	KeyMainMenu       Key = "main_menu"
	KeyInfo           Key = "info"

	// Listing draft flow.
	KeyChoosePropertyType Key = "choose_property_type"
	KeyChoosePurpose      Key = "choose_purpose"
	KeySelectRegion       Key = "select_region"
	KeySelectDistrict     Key = "select_district"
	KeyRegionNotFound     Key = "region_not_found"
	KeyDistrictNotFound   Key = "district_not_found"
	KeyBack               Key = "back"
	KeyAskPrice           Key = "ask_price"
	KeyInvalidPrice       Key = "invalid_price"
	KeyAskArea            Key = "ask_area"
	KeyInvalidArea        Key = "invalid_area"
	KeyTemplateShown      Key = "personalized_template_shown"
	KeyConfirmDescription Key = "confirm_description"
	KeyBtnDescDone        Key = "btn_desc_done"
	KeyBtnDescMore        Key = "btn_desc_more"
	KeyAskMoreDescription Key = "ask_more_description"
	KeyAskContact         Key = "ask_contact"
	KeyAskPhotos          Key = "ask_photos"
	KeyBtnPhotosDone      Key = "btn_photos_done"
	KeyBtnPhotosSkip      Key = "btn_photos_skip"
	KeyPhotosReceived     Key = "photos_received"
	KeySubmittedForReview Key = "listing_submitted_for_review"

	// Moderation outcome notifications.
	KeyListingApproved Key = "listing_approved"
	KeyListingDeclined Key = "listing_declined"

	// Property type and purpose labels.
	KeyTypeApartment  Key = "type_apartment"
	KeyTypeHouse      Key = "type_house"
	KeyTypeCommercial Key = "type_commercial"
	KeyTypeLand       Key = "type_land"
	KeyPurposeSale    Key = "purpose_sale"
	KeyPurposeRent    Key = "purpose_rent"

	// Search flow.
	KeyChooseSearchType  Key = "choose_search_type"
	KeySearchByKeyword   Key = "search_by_keyword"
	KeySearchByLocation  Key = "search_by_location"
	KeySearchPrompt      Key = "search_prompt"
	KeySearchRegion      Key = "select_region_for_search"
	KeySearchDistrictAll Key = "select_district_or_all"
	KeyAllRegion         Key = "all_region"
	KeySearchResults     Key = "search_results_count"
	KeyNoSearchResults   Key = "no_search_results"

	// Browsing and favorites.
	KeyNoListings    Key = "no_listings"
	KeyBtnFavAdd     Key = "add_favorite"
	KeyBtnFavRemove  Key = "remove_favorite"
	KeyBtnContact    Key = "contact_seller"
	KeyContactInfo   Key = "contact_info_is"
	KeyFavAdded      Key = "fav_added"
	KeyFavExists     Key = "fav_exists"
	KeyFavGone       Key = "fav_gone"
	KeyFavRemoved    Key = "fav_removed"
	KeyFavNotFound   Key = "fav_not_found"
	KeyFavEmpty      Key = "fav_empty"
	KeyFavoritesHead Key = "favorites_header"

	// Own postings management.
	KeyMyPostingsHead   Key = "my_postings_header"
	KeyNoPostings       Key = "no_postings"
	KeyBtnActivate      Key = "btn_activate"
	KeyBtnDeactivate    Key = "btn_deactivate"
	KeyBtnDelete        Key = "btn_delete"
	KeyDeleteConfirm    Key = "delete_confirm"
	KeyBtnYes           Key = "btn_yes"
	KeyBtnNo            Key = "btn_no"
	KeyDeleteDone       Key = "delete_done"
	KeyActivated        Key = "listing_activated"
	KeyDeactivated      Key = "listing_deactivated"
	KeyFavGoneDeleted   Key = "favorite_gone_deleted"
	KeyFavGoneInactive  Key = "favorite_gone_inactive"
	KeyStatusApproved   Key = "status_approved"
	KeyStatusPending    Key = "status_pending"
	KeyStatusDeclined   Key = "status_declined"
	KeyStatusActive     Key = "status_active"
	KeyStatusInactive   Key = "status_inactive"

	// Errors.
	KeyErrGeneric  Key = "error_generic"
	KeyErrNotAdmin Key = "error_not_admin"
)

var messages = map[domain.Language]map[Key]string{
	domain.LangUz: {
		KeyWelcome:        "🏠 Uy-joy e'lonlari botiga xush kelibsiz!\n\nBu yerda uy-joy sotish, sotib olish yoki ijaraga berish e'lonlarini joylashingiz mumkin.",
		KeyChooseLanguage: "🌐 Tilni tanlang:",
		KeyLanguageSet:    "✅ Til o'rnatildi: O'zbekcha",
		KeyMainMenu:       "🏠 Asosiy menyu",
		KeyInfo:           "ℹ️ Bot haqida\n\nBu bot orqali uy-joy e'lonlarini joylashingiz, qidirishingiz va sevimlilarga saqlashingiz mumkin.\n\nE'lon joylash bepul. Har bir e'lon admin tomonidan tekshirilgandan so'ng kanalda chop etiladi.",

		KeyChoosePropertyType: "🏠 Ko'chmas mulk turini tanlang:",
		KeyChoosePurpose:      "📋 E'lon maqsadini tanlang:",
		KeySelectRegion:       "🗺 Viloyatni tanlang:",
		KeySelectDistrict:     "🏘 Tumanni tanlang:",
		KeyRegionNotFound:     "❌ Viloyat topilmadi. Iltimos, qaytadan tanlang.",
		KeyDistrictNotFound:   "❌ Tuman topilmadi. Iltimos, qaytadan tanlang.",
		KeyBack:               "⬅️ Orqaga",
		KeyAskPrice:           "💰 E'lon narxini kiriting:\n\nMasalan: 50000, 50000$, 500 ming, 1.2 mln",
		KeyInvalidPrice:       "❌ Narx noto'g'ri kiritildi. Iltimos, faqat raqam kiriting.\n\nMasalan: 50000, 75000",
		KeyAskArea:            "📐 Maydonni kiriting (m²):\n\nMasalan: 65, 65.5, 100",
		KeyInvalidArea:        "❌ Maydon noto'g'ri kiritildi. Iltimos, faqat raqam kiriting.\n\nMasalan: 65, 100.5",
		KeyTemplateShown:      "✨ Sizning ma'lumotlaringiz bilan tayyor namuna!\n\nQuyidagi namuna asosida e'loningizni yozing:",
		KeyConfirmDescription: "📝 E'lon matni qabul qilindi.\n\nYuborishga tayyormisiz yoki davom etasizmi?",
		KeyBtnDescDone:        "✅ Tayyor",
		KeyBtnDescMore:        "✍️ Davom etish",
		KeyAskMoreDescription: "✍️ Davom eting, qo'shimcha matn yuboring:",
		KeyAskContact:         "📞 Telefon raqamingizni kiriting:\n\nMasalan: +998901234567",
		KeyAskPhotos:          "📷 E'lon uchun rasmlar yuboring (10 tagacha).\n\nTayyor bo'lgach \"Tayyor\" tugmasini bosing.",
		KeyBtnPhotosDone:      "✅ Tayyor",
		KeyBtnPhotosSkip:      "⏭ Rasmsiz davom etish",
		KeyPhotosReceived:     "📷 %d ta rasm qabul qilindi.",
		KeySubmittedForReview: "✅ E'loningiz muvaffaqiyatli yuborildi!\n\n👨‍💼 Admin ko'rib chiqishidan so'ng kanalda e'lon qilinadi.\n\n⏱ Odatda bu 24 soat ichida amalga oshiriladi.",

		KeyListingApproved: "🎉 Tabriklaymiz! E'loningiz tasdiqlandi va kanalda e'lon qilindi!",
		KeyListingDeclined: "❌ Afsuski, e'loningiz rad etildi.\n\n📝 Sabab: %s\n\nIltimos, talablarni hisobga olib qaytadan yuboring.",

		KeyTypeApartment:  "🏢 Kvartira",
		KeyTypeHouse:      "🏠 Hovli uy",
		KeyTypeCommercial: "🏪 Tijorat obyekti",
		KeyTypeLand:       "🧱 Yer uchastka",
		KeyPurposeSale:    "💰 Sotish",
		KeyPurposeRent:    "🔑 Ijaraga berish",

		KeyChooseSearchType:  "🔍 Qidiruv turini tanlang:",
		KeySearchByKeyword:   "📝 Kalit so'z bo'yicha qidiruv",
		KeySearchByLocation:  "🏘 Hudud bo'yicha qidiruv",
		KeySearchPrompt:      "🔍 Qidirish uchun kalit so'z kiriting:",
		KeySearchRegion:      "🗺 Qidiruv uchun viloyatni tanlang:",
		KeySearchDistrictAll: "🏘 Tumanni tanlang yoki butun viloyat bo'yicha qidiring:",
		KeyAllRegion:         "🌍 Butun viloyat",
		KeySearchResults:     "🔍 Qidiruv natijalari: %d ta e'lon topildi",
		KeyNoSearchResults:   "😔 Hech narsa topilmadi.\n\nBoshqa kalit so'z bilan yoki boshqa hudud bo'yicha qaytadan qidirib ko'ring.",

		KeyNoListings:    "😔 Hozircha e'lonlar yo'q.",
		KeyBtnFavAdd:     "❤️ Sevimlilarga",
		KeyBtnFavRemove:  "💔 Sevimlilardan o'chirish",
		KeyBtnContact:    "📞 Sotuvchi bilan bog'lanish",
		KeyContactInfo:   "📞 Aloqa: %s",
		KeyFavAdded:      "❤️ Sevimlilarga qo'shildi!",
		KeyFavExists:     "ℹ️ Bu e'lon allaqachon sevimlilarda.",
		KeyFavGone:       "ℹ️ Bu e'lon endi mavjud emas.",
		KeyFavRemoved:    "💔 Sevimlilardan o'chirildi.",
		KeyFavNotFound:   "ℹ️ Bu e'lon sevimlilarda yo'q.",
		KeyFavEmpty:      "😔 Sevimlilar ro'yxati bo'sh.",
		KeyFavoritesHead: "❤️ Sevimli e'lonlaringiz:",

		KeyMyPostingsHead:  "📋 Sizning e'lonlaringiz:",
		KeyNoPostings:      "😔 Sizda hali e'lonlar yo'q.",
		KeyBtnActivate:     "▶️ Faollashtirish",
		KeyBtnDeactivate:   "⏸ To'xtatish",
		KeyBtnDelete:       "🗑 O'chirish",
		KeyDeleteConfirm:   "🗑 E'lonni butunlay o'chirishni tasdiqlaysizmi?",
		KeyBtnYes:          "✅ Ha",
		KeyBtnNo:           "❌ Yo'q",
		KeyDeleteDone:      "🗑 E'lon o'chirildi.",
		KeyActivated:       "▶️ E'lon faollashtirildi.",
		KeyDeactivated:     "⏸ E'lon to'xtatildi.",
		KeyFavGoneDeleted:  "ℹ️ Sevimlilardagi e'lon o'chirildi: %s",
		KeyFavGoneInactive: "ℹ️ Sevimlilardagi e'lon faol emas: %s",
		KeyStatusApproved:  "✅ Tasdiqlangan",
		KeyStatusPending:   "⏳ Kutilmoqda",
		KeyStatusDeclined:  "❌ Rad etilgan",
		KeyStatusActive:    "▶️ Faol",
		KeyStatusInactive:  "⏸ To'xtatilgan",

		KeyErrGeneric:  "❌ Xatolik yuz berdi. Iltimos qaytadan urinib ko'ring.",
		KeyErrNotAdmin: "⛔ Sizda admin huquqlari yo'q!",
	},

	domain.LangRu: {
		KeyWelcome:        "🏠 Добро пожаловать в бот объявлений недвижимости!\n\nЗдесь вы можете размещать объявления о продаже, покупке или аренде жилья.",
		KeyChooseLanguage: "🌐 Выберите язык:",
		KeyLanguageSet:    "✅ Язык установлен: Русский",
		KeyMainMenu:       "🏠 Главное меню",
		KeyInfo:           "ℹ️ О боте\n\nЧерез этот бот вы можете размещать объявления о недвижимости, искать их и сохранять в избранное.\n\nРазмещение бесплатно. Каждое объявление публикуется в канале после проверки администратором.",

		KeyChoosePropertyType: "🏠 Выберите тип недвижимости:",
		KeyChoosePurpose:      "📋 Выберите цель объявления:",
		KeySelectRegion:       "🗺 Выберите область:",
		KeySelectDistrict:     "🏘 Выберите район:",
		KeyRegionNotFound:     "❌ Область не найдена. Пожалуйста, выберите заново.",
		KeyDistrictNotFound:   "❌ Район не найден. Пожалуйста, выберите заново.",
		KeyBack:               "⬅️ Назад",
		KeyAskPrice:           "💰 Введите цену объявления:\n\nНапример: 50000, 50000$, 500 тыс, 1.2 млн",
		KeyInvalidPrice:       "❌ Цена введена неправильно. Пожалуйста, введите только числа.\n\nНапример: 50000, 75000",
		KeyAskArea:            "📐 Введите площадь (м²):\n\nНапример: 65, 65.5, 100",
		KeyInvalidArea:        "❌ Площадь введена неправильно. Пожалуйста, введите только числа.\n\nНапример: 65, 100.5",
		KeyTemplateShown:      "✨ Готовый шаблон с вашими данными!\n\nНапишите объявление по образцу ниже:",
		KeyConfirmDescription: "📝 Текст объявления принят.\n\nГотовы отправить или продолжите?",
		KeyBtnDescDone:        "✅ Готово",
		KeyBtnDescMore:        "✍️ Продолжить",
		KeyAskMoreDescription: "✍️ Продолжайте, отправьте дополнительный текст:",
		KeyAskContact:         "📞 Введите ваш номер телефона:\n\nНапример: +998901234567",
		KeyAskPhotos:          "📷 Отправьте фотографии для объявления (до 10).\n\nКогда закончите, нажмите \"Готово\".",
		KeyBtnPhotosDone:      "✅ Готово",
		KeyBtnPhotosSkip:      "⏭ Продолжить без фото",
		KeyPhotosReceived:     "📷 Принято фотографий: %d.",
		KeySubmittedForReview: "✅ Ваше объявление успешно отправлено!\n\n👨‍💼 После проверки администратором оно будет опубликовано в канале.\n\n⏱ Обычно это происходит в течение 24 часов.",

		KeyListingApproved: "🎉 Поздравляем! Ваше объявление одобрено и опубликовано в канале!",
		KeyListingDeclined: "❌ К сожалению, ваше объявление отклонено.\n\n📝 Причина: %s\n\nПожалуйста, учтите требования и отправьте заново.",

		KeyTypeApartment:  "🏢 Квартира",
		KeyTypeHouse:      "🏠 Дом",
		KeyTypeCommercial: "🏪 Коммерческий объект",
		KeyTypeLand:       "🧱 Земельный участок",
		KeyPurposeSale:    "💰 Продажа",
		KeyPurposeRent:    "🔑 Аренда",

		KeyChooseSearchType:  "🔍 Выберите тип поиска:",
		KeySearchByKeyword:   "📝 Поиск по ключевому слову",
		KeySearchByLocation:  "🏘 Поиск по местоположению",
		KeySearchPrompt:      "🔍 Введите ключевое слово для поиска:",
		KeySearchRegion:      "🗺 Выберите область для поиска:",
		KeySearchDistrictAll: "🏘 Выберите район или искать по всей области:",
		KeyAllRegion:         "🌍 Вся область",
		KeySearchResults:     "🔍 Результаты поиска: найдено %d объявлений",
		KeyNoSearchResults:   "😔 Ничего не найдено.\n\nПопробуйте другое ключевое слово или другой регион.",

		KeyNoListings:    "😔 Пока нет объявлений.",
		KeyBtnFavAdd:     "❤️ В избранное",
		KeyBtnFavRemove:  "💔 Убрать из избранного",
		KeyBtnContact:    "📞 Связаться с продавцом",
		KeyContactInfo:   "📞 Контакт: %s",
		KeyFavAdded:      "❤️ Добавлено в избранное!",
		KeyFavExists:     "ℹ️ Это объявление уже в избранном.",
		KeyFavGone:       "ℹ️ Это объявление больше не доступно.",
		KeyFavRemoved:    "💔 Убрано из избранного.",
		KeyFavNotFound:   "ℹ️ Этого объявления нет в избранном.",
		KeyFavEmpty:      "😔 Список избранного пуст.",
		KeyFavoritesHead: "❤️ Ваши избранные объявления:",

		KeyMyPostingsHead:  "📋 Ваши объявления:",
		KeyNoPostings:      "😔 У вас пока нет объявлений.",
		KeyBtnActivate:     "▶️ Активировать",
		KeyBtnDeactivate:   "⏸ Приостановить",
		KeyBtnDelete:       "🗑 Удалить",
		KeyDeleteConfirm:   "🗑 Подтверждаете полное удаление объявления?",
		KeyBtnYes:          "✅ Да",
		KeyBtnNo:           "❌ Нет",
		KeyDeleteDone:      "🗑 Объявление удалено.",
		KeyActivated:       "▶️ Объявление активировано.",
		KeyDeactivated:     "⏸ Объявление приостановлено.",
		KeyFavGoneDeleted:  "ℹ️ Объявление из избранного удалено: %s",
		KeyFavGoneInactive: "ℹ️ Объявление из избранного больше не активно: %s",
		KeyStatusApproved:  "✅ Одобрено",
		KeyStatusPending:   "⏳ Ожидает",
		KeyStatusDeclined:  "❌ Отклонено",
		KeyStatusActive:    "▶️ Активно",
		KeyStatusInactive:  "⏸ Приостановлено",

		KeyErrGeneric:  "❌ Произошла ошибка. Пожалуйста, попробуйте снова.",
		KeyErrNotAdmin: "⛔ У вас нет прав администратора!",
	},

	domain.LangEn: {
		KeyWelcome:        "🏠 Welcome to the real estate listings bot!\n\nHere you can post listings to sell, buy or rent property.",
		KeyChooseLanguage: "🌐 Choose a language:",
		KeyLanguageSet:    "✅ Language set: English",
		KeyMainMenu:       "🏠 Main menu",
		KeyInfo:           "ℹ️ About the bot\n\nWith this bot you can post real estate listings, search them and save favorites.\n\nPosting is free. Every listing is published to the channel after admin review.",

		KeyChoosePropertyType: "🏠 Choose the property type:",
		KeyChoosePurpose:      "📋 Choose the listing purpose:",
		KeySelectRegion:       "🗺 Select a region:",
		KeySelectDistrict:     "🏘 Select a district:",
		KeyRegionNotFound:     "❌ Region not found. Please select again.",
		KeyDistrictNotFound:   "❌ District not found. Please select again.",
		KeyBack:               "⬅️ Back",
		KeyAskPrice:           "💰 Enter listing price:\n\nExample: 50000, 50000$, 500k, 1.2M",
		KeyInvalidPrice:       "❌ Price entered incorrectly. Please enter numbers only.\n\nExample: 50000, 75000",
		KeyAskArea:            "📐 Enter area (m²):\n\nExample: 65, 65.5, 100",
		KeyInvalidArea:        "❌ Area entered incorrectly. Please enter numbers only.\n\nExample: 65, 100.5",
		KeyTemplateShown:      "✨ Ready template with your data!\n\nWrite your listing based on the template below:",
		KeyConfirmDescription: "📝 Listing text received.\n\nReady to submit, or keep writing?",
		KeyBtnDescDone:        "✅ Done",
		KeyBtnDescMore:        "✍️ Keep writing",
		KeyAskMoreDescription: "✍️ Go on, send additional text:",
		KeyAskContact:         "📞 Enter your phone number:\n\nExample: +998901234567",
		KeyAskPhotos:          "📷 Send photos for the listing (up to 10).\n\nPress \"Done\" when finished.",
		KeyBtnPhotosDone:      "✅ Done",
		KeyBtnPhotosSkip:      "⏭ Continue without photos",
		KeyPhotosReceived:     "📷 %d photo(s) received.",
		KeySubmittedForReview: "✅ Your listing has been successfully submitted!\n\n👨‍💼 It will be published in the channel after admin review.\n\n⏱ This usually happens within 24 hours.",

		KeyListingApproved: "🎉 Congratulations! Your listing has been approved and published in the channel!",
		KeyListingDeclined: "❌ Unfortunately, your listing was declined.\n\n📝 Reason: %s\n\nPlease consider the requirements and resubmit.",

		KeyTypeApartment:  "🏢 Apartment",
		KeyTypeHouse:      "🏠 House",
		KeyTypeCommercial: "🏪 Commercial property",
		KeyTypeLand:       "🧱 Land plot",
		KeyPurposeSale:    "💰 Sale",
		KeyPurposeRent:    "🔑 Rent",

		KeyChooseSearchType:  "🔍 Choose search type:",
		KeySearchByKeyword:   "📝 Search by keyword",
		KeySearchByLocation:  "🏘 Search by location",
		KeySearchPrompt:      "🔍 Enter keyword to search:",
		KeySearchRegion:      "🗺 Select region for search:",
		KeySearchDistrictAll: "🏘 Select district or search entire region:",
		KeyAllRegion:         "🌍 Entire region",
		KeySearchResults:     "🔍 Search results: found %d listings",
		KeyNoSearchResults:   "😔 Nothing found.\n\nTry a different keyword or location.",

		KeyNoListings:    "😔 No listings yet.",
		KeyBtnFavAdd:     "❤️ Add to favorites",
		KeyBtnFavRemove:  "💔 Remove from favorites",
		KeyBtnContact:    "📞 Contact seller",
		KeyContactInfo:   "📞 Contact: %s",
		KeyFavAdded:      "❤️ Added to favorites!",
		KeyFavExists:     "ℹ️ This listing is already in your favorites.",
		KeyFavGone:       "ℹ️ This listing is no longer available.",
		KeyFavRemoved:    "💔 Removed from favorites.",
		KeyFavNotFound:   "ℹ️ This listing is not in your favorites.",
		KeyFavEmpty:      "😔 Your favorites list is empty.",
		KeyFavoritesHead: "❤️ Your favorite listings:",

		KeyMyPostingsHead:  "📋 Your listings:",
		KeyNoPostings:      "😔 You have no listings yet.",
		KeyBtnActivate:     "▶️ Activate",
		KeyBtnDeactivate:   "⏸ Pause",
		KeyBtnDelete:       "🗑 Delete",
		KeyDeleteConfirm:   "🗑 Confirm permanent deletion of the listing?",
		KeyBtnYes:          "✅ Yes",
		KeyBtnNo:           "❌ No",
		KeyDeleteDone:      "🗑 Listing deleted.",
		KeyActivated:       "▶️ Listing activated.",
		KeyDeactivated:     "⏸ Listing paused.",
		KeyFavGoneDeleted:  "ℹ️ A favorited listing was deleted: %s",
		KeyFavGoneInactive: "ℹ️ A favorited listing is no longer active: %s",
		KeyStatusApproved:  "✅ Approved",
		KeyStatusPending:   "⏳ Pending",
		KeyStatusDeclined:  "❌ Declined",
		KeyStatusActive:    "▶️ Active",
		KeyStatusInactive:  "⏸ Paused",

		KeyErrGeneric:  "❌ An error occurred. Please try again.",
		KeyErrNotAdmin: "⛔ You don't have admin rights!",
	},
}

// T returns the message for key in lang, falling back to Uzbek.
func T(lang domain.Language, key Key) string {
	if msgs, ok := messages[lang]; ok {
		if text, ok := msgs[key]; ok {
			return text
		}
	}
	if text, ok := messages[domain.LangUz][key]; ok {
		return text
	}
	return string(key)
}

// F formats a parameterized message.
func F(lang domain.Language, key Key, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

// PropertyTypeLabel returns the localized button label for a property type.
func PropertyTypeLabel(lang domain.Language, t domain.PropertyType) string {
	switch t {
	case domain.PropertyApartment:
		return T(lang, KeyTypeApartment)
	case domain.PropertyHouse:
		return T(lang, KeyTypeHouse)
	case domain.PropertyCommercial:
		return T(lang, KeyTypeCommercial)
	case domain.PropertyLand:
		return T(lang, KeyTypeLand)
	}
	return string(t)
}

// PurposeLabel returns the localized button label for a purpose.
func PurposeLabel(lang domain.Language, p domain.Purpose) string {
	if p == domain.PurposeRent {
		return T(lang, KeyPurposeRent)
	}
	return T(lang, KeyPurposeSale)
}
