package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"uybor/internal/bot"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

// defaultPageSize bounds unpaginated listing queries.
const defaultPageSize = 20

type listingResponse struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	PropertyType   string     `json:"property_type"`
	Purpose        string     `json:"purpose"`
	RegionKey      string     `json:"region_key"`
	DistrictKey    string     `json:"district_key"`
	FullAddress    string     `json:"full_address"`
	Price          int64      `json:"price"`
	PriceText      string     `json:"price_text"`
	Area           float64    `json:"area"`
	AreaText       string     `json:"area_text"`
	ContactInfo    string     `json:"contact_info"`
	PhotoCount     int        `json:"photo_count"`
	IsPremium      bool       `json:"is_premium"`
	IsActive       bool       `json:"is_active"`
	ApprovalStatus string     `json:"approval_status"`
	ViewsCount     int        `json:"views_count"`
	FavoritesCount int        `json:"favorites_count"`
	CreatedAt      time.Time  `json:"created_at"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	return listingResponse{
		ID:             l.ID,
		Title:          l.DisplayTitle(),
		Description:    l.Description,
		PropertyType:   string(l.PropertyType),
		Purpose:        string(l.Purpose),
		RegionKey:      l.RegionKey,
		DistrictKey:    l.DistrictKey,
		FullAddress:    l.FullAddress,
		Price:          l.Price,
		PriceText:      l.PriceText,
		Area:           l.Area,
		AreaText:       l.AreaText,
		ContactInfo:    l.ContactInfo,
		PhotoCount:     len(l.PhotoFileIDs),
		IsPremium:      l.IsPremium,
		IsActive:       l.IsActive,
		ApprovalStatus: string(l.ApprovalStatus),
		ViewsCount:     l.ViewsCount,
		FavoritesCount: l.FavoritesCount,
		CreatedAt:      l.CreatedAt,
		PublishedAt:    l.PublishedAt,
	}
}

func toListingResponses(listings []*domain.Listing) []listingResponse {
	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

// listListings serves GET /api/listings with the public filter set.
func (s *Server) listListings(c echo.Context) error {
	filter := ports.ListingFilter{
		RegionKey:    c.QueryParam("region"),
		DistrictKey:  c.QueryParam("district"),
		PropertyType: domain.PropertyType(c.QueryParam("property_type")),
		Purpose:      domain.Purpose(c.QueryParam("purpose")),
		Query:        c.QueryParam("q"),
		Limit:        defaultPageSize,
	}
	if v, err := strconv.ParseInt(c.QueryParam("min_price"), 10, 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseInt(c.QueryParam("max_price"), 10, 64); err == nil {
		filter.MaxPrice = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("min_area"), 64); err == nil {
		filter.MinArea = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_area"), 64); err == nil {
		filter.MaxArea = &v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 100 {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		filter.Offset = v
	}

	listings, err := s.listings.ListPublic(c.Request().Context(), filter)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count":   len(listings),
		"results": toListingResponses(listings),
	})
}

// getListing serves GET /api/listings/:id and bumps the view counter.
func (s *Server) getListing(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid listing id"})
	}

	ctx := c.Request().Context()
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return s.httpError(c, err)
	}
	if listing == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	}

	if err := s.listings.IncrementViews(ctx, id); err != nil {
		s.log.Warn().Err(err).Int64("listing_id", id).Msg("Failed to bump view counter")
	} else {
		listing.ViewsCount++
	}
	return c.JSON(http.StatusOK, toListingResponse(listing))
}

type createListingRequest struct {
	OwnerTelegramID int64   `json:"owner_telegram_id"`
	Description     string  `json:"description"`
	PropertyType    string  `json:"property_type"`
	Purpose         string  `json:"purpose"`
	RegionKey       string  `json:"region_key"`
	DistrictKey     string  `json:"district_key"`
	Price           int64   `json:"price"`
	PriceText       string  `json:"price_text"`
	Area            float64 `json:"area"`
	AreaText        string  `json:"area_text"`
	ContactInfo     string  `json:"contact_info"`
}

// createListing serves POST /api/listings. Listings created here enter the
// same moderation queue as bot submissions.
func (s *Server) createListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
	}
	if req.OwnerTelegramID == 0 || req.Description == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "owner_telegram_id and description are required"})
	}
	if !domain.ValidPropertyType(domain.PropertyType(req.PropertyType)) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid property_type"})
	}
	if !domain.ValidPurpose(domain.Purpose(req.Purpose)) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid purpose"})
	}

	ctx := c.Request().Context()
	owner, err := s.users.GetByTelegramID(ctx, req.OwnerTelegramID)
	if err != nil {
		return s.httpError(c, err)
	}
	if owner == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "owner not found"})
	}

	draft := domain.ListingDraft{
		PropertyType: domain.PropertyType(req.PropertyType),
		Purpose:      domain.Purpose(req.Purpose),
		RegionKey:    req.RegionKey,
		DistrictKey:  req.DistrictKey,
		Price:        req.Price,
		PriceText:    req.PriceText,
		Area:         req.Area,
		AreaText:     req.AreaText,
		Description:  req.Description,
		ContactInfo:  req.ContactInfo,
	}
	if draft.PriceText == "" {
		draft.PriceText = strconv.FormatInt(req.Price, 10)
	}
	if draft.AreaText == "" && req.Area > 0 {
		draft.AreaText = strconv.FormatFloat(req.Area, 'f', -1, 64)
	}

	listing := draft.Finalize(owner.ID, s.resolveAddress(c, req.RegionKey, req.DistrictKey), time.Now())
	if err := s.listings.Create(ctx, listing); err != nil {
		return s.httpError(c, err)
	}

	s.bus.Publish(ctx, bot.TopicListingSubmitted, &bot.ListingEvent{Listing: listing})
	return c.JSON(http.StatusCreated, toListingResponse(listing))
}

type updateListingRequest struct {
	OwnerTelegramID int64    `json:"owner_telegram_id"`
	Description     *string  `json:"description"`
	Price           *int64   `json:"price"`
	PriceText       *string  `json:"price_text"`
	Area            *float64 `json:"area"`
	AreaText        *string  `json:"area_text"`
	ContactInfo     *string  `json:"contact_info"`
	IsActive        *bool    `json:"is_active"`
}

// updateListing serves PUT /api/listings/:id. Only the owner may update.
func (s *Server) updateListing(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid listing id"})
	}
	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return s.httpError(c, err)
	}
	if listing == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	}
	if err := s.authorizeOwner(c, listing, req.OwnerTelegramID); err != nil {
		return s.httpError(c, err)
	}

	if req.Description != nil {
		listing.Description = *req.Description
		listing.Title = domain.TitleFromDescription(*req.Description)
	}
	if req.Price != nil {
		listing.Price = *req.Price
		listing.PriceText = strconv.FormatInt(*req.Price, 10)
	}
	if req.PriceText != nil {
		listing.PriceText = *req.PriceText
	}
	if req.Area != nil {
		listing.Area = *req.Area
		listing.AreaText = strconv.FormatFloat(*req.Area, 'f', -1, 64)
	}
	if req.AreaText != nil {
		listing.AreaText = *req.AreaText
	}
	if req.ContactInfo != nil {
		listing.ContactInfo = *req.ContactInfo
	}
	if req.IsActive != nil {
		listing.IsActive = *req.IsActive
	}

	if err := s.listings.Update(ctx, listing); err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, toListingResponse(listing))
}

// deleteListing serves DELETE /api/listings/:id. The cascade and favoriter
// notification match the bot's delete path.
func (s *Server) deleteListing(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid listing id"})
	}
	ownerTelegramID, _ := strconv.ParseInt(c.QueryParam("owner_telegram_id"), 10, 64)

	ctx := c.Request().Context()
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return s.httpError(c, err)
	}
	if listing == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	}
	if err := s.authorizeOwner(c, listing, ownerTelegramID); err != nil {
		return s.httpError(c, err)
	}

	favoriters, err := s.listings.Delete(ctx, id)
	if err != nil {
		return s.httpError(c, err)
	}
	s.bus.Publish(ctx, bot.TopicListingDeleted, &bot.ListingGoneEvent{
		Listing:    listing,
		Favoriters: favoriters,
		Deleted:    true,
	})
	return c.NoContent(http.StatusNoContent)
}

// listUserListings serves GET /api/users/:telegram_id/listings.
func (s *Server) listUserListings(c echo.Context) error {
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

	listings, err := s.listings.ListByOwner(ctx, user.ID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count":   len(listings),
		"results": toListingResponses(listings),
	})
}

// statistics serves GET /api/statistics.
func (s *Server) statistics(c echo.Context) error {
	stats, err := s.listings.Stats(c.Request().Context())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{
		"total_listings": stats.Total,
		"pending":        stats.Pending,
		"approved":       stats.Approved,
		"declined":       stats.Declined,
		"total_users":    stats.Users,
		"today":          stats.Today,
		"today_approved": stats.TodayApproved,
	})
}

// authorizeOwner checks that the telegram id belongs to the listing owner
// or an administrator.
func (s *Server) authorizeOwner(c echo.Context, listing *domain.Listing, telegramID int64) error {
	if telegramID == 0 {
		return domain.ErrNotPermitted
	}
	if s.cfg.IsAdmin(telegramID) {
		return nil
	}
	user, err := s.users.GetByTelegramID(c.Request().Context(), telegramID)
	if err != nil {
		return err
	}
	if user == nil || user.ID != listing.OwnerID {
		return domain.ErrNotPermitted
	}
	return nil
}

// resolveAddress builds "district, region" from reference data, degrading
// to the raw keys.
func (s *Server) resolveAddress(c echo.Context, regionKey, districtKey string) string {
	ctx := c.Request().Context()
	regionName := regionKey
	if region, err := s.regions.GetRegion(ctx, regionKey); err == nil && region != nil {
		regionName = region.NameUz
	}
	if districtKey == "" {
		return regionName
	}
	districtName := districtKey
	if district, err := s.regions.GetDistrict(ctx, regionKey, districtKey); err == nil && district != nil {
		districtName = district.NameUz
	}
	return districtName + ", " + regionName
}
