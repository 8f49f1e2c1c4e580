// Package api serves the REST surface of the marketplace: listing CRUD,
// reference data, favorites, stats and the payment gateway webhooks. It
// shares the bot's repositories and event bus, so a deletion through the
// API notifies favoriters exactly like one through the bot.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
	"uybor/internal/shared/config"
)

// Server is the HTTP API server.
type Server struct {
	echo      *echo.Echo
	cfg       *config.Config
	users     ports.UserRepository
	listings  ports.ListingRepository
	favorites ports.FavoriteRepository
	regions   ports.RegionRepository
	payments  ports.PaymentRepository
	bus       ports.EventBus
	log       zerolog.Logger

	// Payme transaction id to payment id, populated by CreateTransaction.
	paymeMu  sync.Mutex
	paymeTxs map[string]uuid.UUID
}

// NewServer wires the routes and returns a server ready to Start.
func NewServer(
	cfg *config.Config,
	users ports.UserRepository,
	listings ports.ListingRepository,
	favorites ports.FavoriteRepository,
	regions ports.RegionRepository,
	payments ports.PaymentRepository,
	bus ports.EventBus,
	baseLogger *zerolog.Logger,
) *Server {
	s := &Server{
		echo:      echo.New(),
		cfg:       cfg,
		users:     users,
		listings:  listings,
		favorites: favorites,
		regions:   regions,
		payments:  payments,
		bus:       bus,
		log:       baseLogger.With().Str("component", "api_server").Logger(),
		paymeTxs:  make(map[string]uuid.UUID),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("Request")
			return nil
		},
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.GET("/listings", s.listListings)
	api.POST("/listings", s.createListing)
	api.GET("/listings/:id", s.getListing)
	api.PUT("/listings/:id", s.updateListing)
	api.DELETE("/listings/:id", s.deleteListing)

	api.GET("/regions", s.listRegions)
	api.GET("/regions/:key/districts", s.listDistricts)

	api.GET("/users/:telegram_id/listings", s.listUserListings)
	api.GET("/users/:telegram_id/favorites", s.listUserFavorites)
	api.POST("/favorites", s.addFavorite)
	api.DELETE("/favorites/:telegram_id/:listing_id", s.removeFavorite)

	api.GET("/statistics", s.statistics)

	api.POST("/payments", s.createPayment)
	api.GET("/payments/:id", s.paymentStatus)

	// Gateway callbacks live outside /api; the gateways own these paths.
	s.echo.POST("/payments/click/prepare", s.clickPrepare)
	s.echo.POST("/payments/click/complete", s.clickComplete)
	s.echo.POST("/payments/payme", s.paymeWebhook)
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.cfg.HTTPAddr).Msg("Starting HTTP API server")
	if err := s.echo.Start(s.cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the http.Handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

type errorResponse struct {
	Error string `json:"error"`
}

// httpError maps domain sentinels onto HTTP statuses.
func (s *Server) httpError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrAlreadyProcessed):
		return c.JSON(http.StatusConflict, errorResponse{Error: "already processed"})
	case errors.Is(err, domain.ErrNotPermitted):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "not permitted"})
	case errors.Is(err, domain.ErrUnavailable):
		return c.JSON(http.StatusConflict, errorResponse{Error: "listing no longer available"})
	default:
		s.log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
