package telegram

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"uybor/internal/core/ports"
	"uybor/internal/shared/config"
)

// Dispatcher routes a normalized update to the right handler. Implemented
// by the bot router.
type Dispatcher interface {
	Dispatch(ctx context.Context, update *ports.BotUpdate)
}

// BotServer receives Telegram updates (polling or webhook), normalizes
// them, and feeds them through a sharded worker pool.
type BotServer struct {
	api        *tgbotapi.BotAPI
	dispatcher Dispatcher
	cfg        *config.BotConfig
	log        zerolog.Logger
}

// NewBotServer creates a new server instance
func NewBotServer(
	api *tgbotapi.BotAPI,
	dispatcher Dispatcher,
	cfg *config.BotConfig,
	baseLogger *zerolog.Logger,
) *BotServer {
	return &BotServer{
		api:        api,
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        baseLogger.With().Str("component", "bot_server").Logger(),
	}
}

// Start begins the bot server based on the config mode
func (s *BotServer) Start(ctx context.Context) error {
	s.log.Info().Str("mode", s.cfg.Mode).Msg("Starting bot server...")

	switch s.cfg.Mode {
	case "polling":
		return s.startPolling(ctx)
	case "webhook":
		return s.startWebhook(ctx)
	default:
		return fmt.Errorf("unknown bot mode: %s", s.cfg.Mode)
	}
}

// mapUpdate normalizes a raw tgbotapi update. Returns nil for update kinds
// the bot does not handle.
func mapUpdate(u *tgbotapi.Update) *ports.BotUpdate {
	switch {
	case u.Message != nil:
		m := u.Message
		bu := &ports.BotUpdate{
			MessageID:    m.MessageID,
			ChatID:       m.Chat.ID,
			Text:         m.Text,
			MediaGroupID: m.MediaGroupID,
		}
		if m.From != nil {
			bu.UserID = m.From.ID
			bu.Username = m.From.UserName
			bu.FirstName = m.From.FirstName
			bu.LastName = m.From.LastName
		}
		if m.IsCommand() {
			bu.Command = m.Command()
		}
		if len(m.Photo) > 0 {
			// Telegram orders photo sizes smallest first.
			largest := m.Photo[len(m.Photo)-1]
			bu.Photo = &ports.PhotoInfo{FileID: largest.FileID, FileSize: largest.FileSize}
			if bu.Text == "" {
				bu.Text = m.Caption
			}
		}
		return bu

	case u.CallbackQuery != nil:
		cb := u.CallbackQuery
		bu := &ports.BotUpdate{
			CallbackQueryID: cb.ID,
			CallbackData:    &cb.Data,
			UserID:          cb.From.ID,
			Username:        cb.From.UserName,
			FirstName:       cb.From.FirstName,
			LastName:        cb.From.LastName,
		}
		if cb.Message != nil {
			bu.MessageID = cb.Message.MessageID
			bu.ChatID = cb.Message.Chat.ID
		} else {
			bu.ChatID = cb.From.ID
		}
		return bu
	}
	return nil
}

// runPool starts the sharded worker pool and pumps updates into it until
// ctx is done or the updates channel closes. Updates are sharded by chat
// id so each conversation is processed strictly in order, which the draft
// state machine depends on.
func (s *BotServer) runPool(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	size := s.cfg.WorkerPoolSize
	if size < 1 {
		size = 1
	}

	shards := make([]chan *ports.BotUpdate, size)
	var wg sync.WaitGroup
	for i := range shards {
		shards[i] = make(chan *ports.BotUpdate, 32)
		wg.Add(1)
		go func(id int, jobs <-chan *ports.BotUpdate) {
			defer wg.Done()
			log := s.log.With().Int("worker_id", id).Logger()
			log.Info().Msg("Starting update worker")
			for job := range jobs {
				s.dispatcher.Dispatch(context.Background(), job)
			}
			log.Info().Msg("Update worker stopped")
		}(i, shards[i])
	}

	s.log.Info().Int("workers", size).Msg("Update listener started")

	for {
		select {
		case <-ctx.Done():
			for _, shard := range shards {
				close(shard)
			}
			wg.Wait()
			return
		case update, ok := <-updates:
			if !ok {
				for _, shard := range shards {
					close(shard)
				}
				wg.Wait()
				return
			}
			bu := mapUpdate(&update)
			if bu == nil {
				continue
			}
			shard := bu.ChatID % int64(size)
			if shard < 0 {
				shard = -shard
			}
			shards[shard] <- bu
		}
	}
}

// startPolling starts the bot in long polling mode.
func (s *BotServer) startPolling(ctx context.Context) error {
	s.log.Info().Int("workers", s.cfg.WorkerPoolSize).Msg("Starting bot in POLLING mode")

	// Clear any existing webhook so getUpdates works.
	deleteWebhookConfig := tgbotapi.DeleteWebhookConfig{DropPendingUpdates: false}
	if _, err := s.api.Request(deleteWebhookConfig); err != nil {
		s.log.Warn().Err(err).Msg("Failed to delete webhook (continuing anyway)")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		s.api.StopReceivingUpdates()
	}()

	s.runPool(ctx, updates)
	s.log.Info().Msg("Polling stopped gracefully")
	return nil
}

// startWebhook starts the bot in webhook mode (for production). TLS is
// expected to terminate at a reverse proxy.
func (s *BotServer) startWebhook(ctx context.Context) error {
	s.log.Info().
		Int("port", s.cfg.WebhookPort).
		Int("workers", s.cfg.WorkerPoolSize).
		Msg("Starting bot in WEBHOOK mode")

	webhookURL := fmt.Sprintf("%s/webhook/%s", s.cfg.WebhookURL, s.api.Token)
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create webhook config")
		return err
	}
	if _, err := s.api.Request(wh); err != nil {
		s.log.Error().Err(err).Msg("Failed to set webhook")
		return err
	}

	info, err := s.api.GetWebhookInfo()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to get webhook info")
		return err
	}
	if info.LastErrorDate != 0 {
		s.log.Error().Str("error_message", info.LastErrorMessage).Msg("Telegram webhook has a last error")
	}

	updates := s.api.ListenForWebhook("/webhook/" + s.api.Token)

	listenAddr := fmt.Sprintf("127.0.0.1:%d", s.cfg.WebhookPort)
	httpServer := &http.Server{Addr: listenAddr}
	go func() {
		s.log.Info().Str("addr", listenAddr).Msg("Starting HTTP server for webhook")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("Webhook HTTP server failed")
		}
	}()

	s.runPool(ctx, updates)

	if err := httpServer.Shutdown(context.Background()); err != nil {
		s.log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	s.log.Info().Msg("Webhook server stopped gracefully")
	return nil
}
