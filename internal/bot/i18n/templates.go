package i18n

import (
	"fmt"

	"uybor/internal/core/domain"
)

// Phone-number warning appended to every description template.
var templateNote = map[domain.Language]string{
	domain.LangUz: "🔴 Eslatma\nMa'lumotlar qatorida tel raqamingizni bot so'ramaguncha yozmang, aks holda sizni telingiz jiringlashdan to'xtamaydi va biz siz yuborgan xabarni botdan o'chirib tashlash imkonsiz",
	domain.LangRu: "🔴 Примечание\nНе пишите свой номер телефона в тексте, пока бот не попросит, иначе ваш телефон не перестанет звонить и мы не сможем удалить ваше сообщение из бота",
	domain.LangEn: "🔴 Note\nDo not write your phone number in the text until the bot asks for it, otherwise your phone will not stop ringing and we cannot delete your message from the bot",
}

// ListingTemplate builds the sample description shown at the description
// step, pre-filled with the price, area and location the user already
// entered. Land and commercial get their own shape regardless of purpose;
// apartments and houses differ between sale and rent.
func ListingTemplate(lang domain.Language, propertyType domain.PropertyType, purpose domain.Purpose, price, area, location string) string {
	var body string
	switch propertyType {
	case domain.PropertyLand:
		body = landTemplate(lang, price, area, location)
	case domain.PropertyCommercial:
		body = commercialTemplate(lang, price, area, location)
	default:
		if purpose == domain.PurposeRent {
			body = rentTemplate(lang, price, area, location)
		} else {
			body = saleTemplate(lang, price, area, location)
		}
	}
	return body + "\n\n" + templateNote[langOrDefault(lang)]
}

func langOrDefault(lang domain.Language) domain.Language {
	if _, ok := templateNote[lang]; ok {
		return lang
	}
	return domain.DefaultLanguage
}

func landTemplate(lang domain.Language, price, area, location string) string {
	switch langOrDefault(lang) {
	case domain.LangRu:
		return fmt.Sprintf("🧱 Продается пустой участок\n📍 Район: %s\n📐 Площадь: %s соток\n💰 Цена: %s\n📄 Документы: готовы/готовятся\n🚗 Дорога: близко/далеко от асфальта\n💧 Коммуникации: вода, свет рядом/далеко\n(Можно добавить дополнительную информацию)", location, area, price)
	case domain.LangEn:
		return fmt.Sprintf("🧱 Empty land for sale\n📍 Area: %s\n📐 Area: %s acres\n💰 Price: %s\n📄 Documents: ready/in progress\n🚗 Road: close to/far from paved road\n💧 Communications: water, electricity nearby/far\n(Additional information can be added)", location, area, price)
	default:
		return fmt.Sprintf("🧱 Bo'sh yer sotiladi\n📍 Hudud: %s\n📐 Maydoni: %s sotix\n💰 Narxi: %s\n📄 Hujjatlari: tayyor/tayyorlanmoqda\n🚗 Yo'l: asfalt yo'lga yaqin/uzoq\n💧 Kommunikatsiya: suv, svet yaqin/uzoq\n(Qo'shimcha ma'lumot kiritish mumkin)", location, area, price)
	}
}

func commercialTemplate(lang domain.Language, price, area, location string) string {
	switch langOrDefault(lang) {
	case domain.LangRu:
		return fmt.Sprintf("🏢 Продается магазин\n📍 Район: %s\n📐 Площадь: %s м²\n💰 Цена: %s\n📄 Документ: оформлен как нежилое здание\n📌 В настоящее время работает (есть арендатор)\n(Можно добавить дополнительную информацию)", location, area, price)
	case domain.LangEn:
		return fmt.Sprintf("🏢 Shop for sale\n📍 District: %s\n📐 Area: %s m²\n💰 Price: %s\n📄 Document: registered as non-residential building\n📌 Currently operating (tenant available)\n(Additional information can be added)", location, area, price)
	default:
		return fmt.Sprintf("🏢 Do'kon sotiladi\n📍 Tuman: %s\n📐 Maydoni: %s m²\n💰 Narxi: %s\n📄 Hujjat: noturar bino sifatida rasmiylashtirilgan\n📌 Hozirda faoliyat yuritmoqda (ijarachi bor)\n(Qo'shimcha ma'lumot kiritish mumkin)", location, area, price)
	}
}

func rentTemplate(lang domain.Language, price, area, location string) string {
	switch langOrDefault(lang) {
	case domain.LangRu:
		return fmt.Sprintf("🏠 КВАРТИРА СДАЕТСЯ В АРЕНДУ\n📍 %s\n💰 Цена: %s\n📐 Площадь: %s м²\n🛏 Комнаты: 2-комнатная\n♨️ Коммунальные: газ, вода, свет есть\n🪚 Состояние: евроремонт или среднее\n🛋 Мебель: с мебелью или без мебели\n🕒 Срок: краткосрочно или долгосрочно\n👥 Для кого: для семьи / для студентов", location, price, area)
	case domain.LangEn:
		return fmt.Sprintf("🏠 APARTMENT FOR RENT\n📍 %s\n💰 Price: %s\n📐 Area: %s m²\n🛏 Rooms: 2-room\n♨️ Utilities: gas, water, electricity available\n🪚 Condition: euro renovation or average\n🛋 Furniture: furnished or unfurnished\n🕒 Period: short-term or long-term\n👥 For whom: for family / for students", location, price, area)
	default:
		return fmt.Sprintf("🏠 KVARTIRA IJARAGA BERILADI\n📍 %s\n💰 Narxi: %s\n📐 Maydon: %s m²\n🛏 Xonalar: 2 xonali\n♨️ Kommunal: gaz, suv, svet bor\n🪚 Holati: yevro remont yoki o'rtacha\n🛋 Jihoz: jihozli yoki jihozsiz\n🕒 Muddat: qisqa yoki uzoq muddatga\n👥 Kimga: oilaga / studentlarga", location, price, area)
	}
}

func saleTemplate(lang domain.Language, price, area, location string) string {
	switch langOrDefault(lang) {
	case domain.LangRu:
		return fmt.Sprintf("🏠 ПРОДАЕТСЯ НЕДВИЖИМОСТЬ\n📍 %s\n💰 Цена: %s\n🛏 Комнаты: 3-комнатная\n📐 Площадь: %s м²\n♨️ Коммунальные: газ, вода, свет есть\n🪚 Состояние: евроремонт или среднее\n🛋 Мебель: с мебелью или без мебели\n🏢 Этаж: 3/9", location, price, area)
	case domain.LangEn:
		return fmt.Sprintf("🏠 PROPERTY FOR SALE\n📍 %s\n💰 Price: %s\n🛏 Rooms: 3-room\n📐 Area: %s m²\n♨️ Utilities: gas, water, electricity available\n🪚 Condition: euro renovation or average\n🛋 Furniture: furnished or unfurnished\n🏢 Floor: 3/9", location, price, area)
	default:
		return fmt.Sprintf("🏠 UY-JOY SOTILADI\n📍 %s\n💰 Narxi: %s\n🛏 Xonalar: 3 xonali\n📐 Maydon: %s m²\n♨️ Kommunal: gaz, suv, svet bor\n🪚 Holati: yevro remont yoki o'rtacha\n🛋 Jihoz: jihozli yoki jihozsiz\n🏢 Qavat: 3/9", location, price, area)
	}
}
