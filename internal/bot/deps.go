package bot

import (
	"github.com/rs/zerolog"

	"uybor/internal/bot/channel"
	"uybor/internal/bot/collector"
	"uybor/internal/bot/session"
	"uybor/internal/core/ports"
	"uybor/internal/shared/config"
)

// Deps bundles everything a handler may need. Handlers pick the fields
// they use; the registry passes the same bundle to every constructor.
type Deps struct {
	Cfg       *config.Config
	Users     ports.UserRepository
	Listings  ports.ListingRepository
	Favorites ports.FavoriteRepository
	Regions   ports.RegionRepository
	Bot       ports.BotClient
	Bus       ports.EventBus
	Sessions  *session.Store
	Collector *collector.Collector
	Publisher *channel.Publisher
	Log       *zerolog.Logger
}
