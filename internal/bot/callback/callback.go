// Package callback is the single codec for inline-button payloads. Buttons
// encode a verb plus an argument; the router decodes once and hands typed
// actions to the handlers, so nothing else in the bot slices callback
// strings.
package callback

import (
	"strings"

	"uybor/internal/core/ports"
)

// Callback verbs. The set is closed; an unknown verb is answered and
// dropped by the router.
const (
	VerbLanguage = "lang"

	// Listing draft flow.
	VerbPropertyType = "type"
	VerbPurpose      = "purpose"
	VerbRegion       = "region"
	VerbDistrict     = "district"
	VerbBackRegions  = "back_regions"
	VerbDescDone     = "desc_done"
	VerbDescMore     = "desc_more"
	VerbPhotosDone   = "photos_done"
	VerbPhotosSkip   = "photos_skip"

	// Search flow.
	VerbSearchKeyword  = "search_kw"
	VerbSearchLocation = "search_loc"
	VerbSearchRegion   = "sregion"
	VerbSearchDistrict = "sdistrict"
	VerbSearchAll      = "sregion_all"
	VerbSearchBack     = "sback"

	// Browsing and favorites.
	VerbFavAdd  = "fav_add"
	VerbFavDel  = "fav_del"
	VerbContact = "contact"

	// Owner listing management.
	VerbActivate   = "act_on"
	VerbDeactivate = "act_off"
	VerbDelete     = "del"
	VerbDeleteYes  = "del_yes"
	VerbDeleteNo   = "del_no"

	// Moderation.
	VerbApprove = "approve"
	VerbDecline = "decline"
	VerbDetails = "details"
	VerbStats   = "stats"
)

// Encode builds the callback data for a verb and argument. Telegram caps
// callback data at 64 bytes; verbs and args here are short keys and
// numeric ids, well under the limit.
func Encode(verb, arg string) string {
	if arg == "" {
		return verb
	}
	return verb + ":" + arg
}

// Decode splits callback data back into an action.
func Decode(data string) ports.Action {
	verb, arg, _ := strings.Cut(data, ":")
	return ports.Action{Verb: verb, Arg: arg}
}
