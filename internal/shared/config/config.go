package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BotConfig holds the Telegram transport settings.
type BotConfig struct {
	Token          string
	Mode           string // "polling" or "webhook"
	WorkerPoolSize int
	WebhookURL     string
	WebhookPort    int
}

// PaymentsConfig holds the gateway credentials for the webhook endpoints.
type PaymentsConfig struct {
	ClickSecretKey   string
	PaymeMerchantKey string
}

// Config holds all configuration for the application.
type Config struct {
	AppEnv      string
	DatabaseURL string
	DBMaxConns  int32
	Bot         BotConfig
	ChannelID   int64 // public channel approved listings are posted to
	HTTPAddr    string
	Payments    PaymentsConfig

	adminIDs map[int64]struct{}
}

// Load loads configuration from environment variables (and a local .env file).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
		// No .env is fine in prod, rely on OS-set env vars.
	}

	bindings := map[string]string{
		"app.env":            "APP_ENV",
		"database.url":       "DATABASE_URL",
		"database.max_conns": "DB_MAX_CONNS",
		"bot.token":          "BOT_TOKEN",
		"bot.mode":           "BOT_MODE",
		"bot.workers":        "WORKER_POOL_SIZE",
		"bot.webhook.url":    "WEBHOOK_URL",
		"bot.webhook.port":   "WEBHOOK_PORT",
		"channel.id":         "CHANNEL_ID",
		"admin.ids":          "ADMIN_IDS",
		"http.addr":          "HTTP_ADDR",
		"payments.click_key": "CLICK_SECRET_KEY",
		"payments.payme_key": "PAYME_MERCHANT_KEY",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	viper.SetDefault("app.env", "dev")
	viper.SetDefault("database.max_conns", 8)
	viper.SetDefault("bot.mode", "polling")
	viper.SetDefault("bot.workers", 8)
	viper.SetDefault("bot.webhook.port", 8443)
	viper.SetDefault("http.addr", ":8080")

	cfg := Config{
		AppEnv:      viper.GetString("app.env"),
		DatabaseURL: viper.GetString("database.url"),
		DBMaxConns:  viper.GetInt32("database.max_conns"),
		Bot: BotConfig{
			Token:          viper.GetString("bot.token"),
			Mode:           viper.GetString("bot.mode"),
			WorkerPoolSize: viper.GetInt("bot.workers"),
			WebhookURL:     viper.GetString("bot.webhook.url"),
			WebhookPort:    viper.GetInt("bot.webhook.port"),
		},
		ChannelID: viper.GetInt64("channel.id"),
		HTTPAddr:  viper.GetString("http.addr"),
		Payments: PaymentsConfig{
			ClickSecretKey:   viper.GetString("payments.click_key"),
			PaymeMerchantKey: viper.GetString("payments.payme_key"),
		},
	}

	if cfg.Bot.Token == "" {
		return nil, errors.New("BOT_TOKEN is not set in environment or .env file")
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set in environment or .env file")
	}
	if cfg.Bot.Mode != "polling" && cfg.Bot.Mode != "webhook" {
		return nil, fmt.Errorf("BOT_MODE must be 'polling' or 'webhook', got %q", cfg.Bot.Mode)
	}

	adminIDs, err := parseAdminIDs(viper.GetString("admin.ids"))
	if err != nil {
		return nil, err
	}
	cfg.adminIDs = adminIDs

	return &cfg, nil
}

// IsAdmin reports whether the given Telegram user id belongs to the
// configured administrator set. Checked at action time, never cached.
func (c *Config) IsAdmin(telegramID int64) bool {
	_, ok := c.adminIDs[telegramID]
	return ok
}

// AdminIDs returns the configured administrator ids, for review-card fan-out.
func (c *Config) AdminIDs() []int64 {
	ids := make([]int64, 0, len(c.adminIDs))
	for id := range c.adminIDs {
		ids = append(ids, id)
	}
	return ids
}

// parseAdminIDs parses the ADMIN_IDS comma-separated list.
func parseAdminIDs(raw string) (map[int64]struct{}, error) {
	ids := make(map[int64]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_IDS contains a non-numeric entry %q: %w", part, err)
		}
		if id <= 0 {
			return nil, fmt.Errorf("ADMIN_IDS contains an invalid id %d", id)
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}
