package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"uybor/internal/adapters/eventbus"
	"uybor/internal/adapters/postgres"
	"uybor/internal/adapters/telegram"
	"uybor/internal/api"
	"uybor/internal/bot"
	"uybor/internal/bot/channel"
	"uybor/internal/bot/collector"
	"uybor/internal/bot/session"
	"uybor/internal/shared/config"
	"uybor/internal/shared/logger"

	// Handlers register themselves from init().
	_ "uybor/internal/bot/handlers"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("bot_mode", cfg.Bot.Mode).
		Int64("channel_id", cfg.ChannelID).
		Int("admins", len(cfg.AdminIDs())).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Database
	db, err := postgres.NewDB(ctx, cfg.DatabaseURL, cfg.DBMaxConns, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// 4. Initialize Repositories
	userRepo := postgres.NewUserRepository(db, &baseLogger)
	listingRepo := postgres.NewListingRepository(db, &baseLogger)
	favoriteRepo := postgres.NewFavoriteRepository(db, &baseLogger)
	regionRepo := postgres.NewRegionRepository(db, &baseLogger)
	paymentRepo := postgres.NewPaymentRepository(db, &baseLogger)

	// 5. Initialize the Telegram client
	botAPI, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to connect to Telegram")
	}
	baseLogger.Info().Str("bot_username", botAPI.Self.UserName).Msg("Authorized on Telegram")
	botClient := telegram.NewClient(botAPI, &baseLogger)

	// 6. Initialize bot infrastructure
	bus := eventbus.NewInMemoryEventBus(&baseLogger)
	sessions := session.NewStore(session.DefaultTTL, &baseLogger)
	sessions.StartJanitor(ctx)
	albums := collector.New(collector.DefaultWindow, &baseLogger)
	publisher := channel.NewPublisher(botClient, cfg.ChannelID, &baseLogger)

	// 7. Wire the router and every registered handler
	router := bot.NewRouter(userRepo, botClient, &baseLogger)
	deps := &bot.Deps{
		Cfg:       cfg,
		Users:     userRepo,
		Listings:  listingRepo,
		Favorites: favoriteRepo,
		Regions:   regionRepo,
		Bot:       botClient,
		Bus:       bus,
		Sessions:  sessions,
		Collector: albums,
		Publisher: publisher,
		Log:       &baseLogger,
	}
	bot.RegisterAllHandlers(router, deps)

	botServer := telegram.NewBotServer(botAPI, router, &cfg.Bot, &baseLogger)
	apiServer := api.NewServer(cfg, userRepo, listingRepo, favoriteRepo, regionRepo, paymentRepo, bus, &baseLogger)

	// 8. Run both servers until a signal arrives
	errCh := make(chan error, 2)
	go func() {
		errCh <- botServer.Start(ctx)
	}()
	go func() {
		errCh <- apiServer.Start()
	}()

	baseLogger.Info().Msg("All services started")

	select {
	case <-ctx.Done():
		baseLogger.Info().Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			baseLogger.Error().Err(err).Msg("Server exited with error")
		}
		stop()
	}

	// 9. Graceful shutdown: stop accepting HTTP, let in-flight events drain
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error().Err(err).Msg("HTTP server shutdown error")
	}
	bus.Drain()

	baseLogger.Info().Msg("Shutdown complete")
}
