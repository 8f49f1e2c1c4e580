package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"uybor/internal/core/domain"
)

type addFavoriteRequest struct {
	TelegramID int64 `json:"telegram_id"`
	ListingID  int64 `json:"listing_id"`
}

// addFavorite serves POST /api/favorites. Adding is idempotent; a listing
// that is no longer public is refused.
func (s *Server) addFavorite(c echo.Context) error {
	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
	}
	if req.TelegramID == 0 || req.ListingID == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "telegram_id and listing_id are required"})
	}

	ctx := c.Request().Context()
	user, err := s.users.GetByTelegramID(ctx, req.TelegramID)
	if err != nil {
		return s.httpError(c, err)
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}

	listing, err := s.listings.GetByID(ctx, req.ListingID)
	if err != nil {
		return s.httpError(c, err)
	}
	if listing == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "listing not found"})
	}
	if !listing.IsPublic() {
		return s.httpError(c, domain.ErrUnavailable)
	}

	added, err := s.favorites.Add(ctx, user.ID, req.ListingID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"added": added})
}

// removeFavorite serves DELETE /api/favorites/:telegram_id/:listing_id.
func (s *Server) removeFavorite(c echo.Context) error {
	telegramID, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid telegram id"})
	}
	listingID, err := strconv.ParseInt(c.Param("listing_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid listing id"})
	}

	ctx := c.Request().Context()
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return s.httpError(c, err)
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}

	if err := s.favorites.Remove(ctx, user.ID, listingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "favorite not found"})
		}
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// listUserFavorites serves GET /api/users/:telegram_id/favorites.
func (s *Server) listUserFavorites(c echo.Context) error {
	telegramID, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid telegram id"})
	}

	ctx := c.Request().Context()
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return s.httpError(c, err)
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}

	listings, err := s.favorites.ListByUser(ctx, user.ID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count":   len(listings),
		"results": toListingResponses(listings),
	})
}
