package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type regionResponse struct {
	Key    string `json:"key"`
	NameUz string `json:"name_uz"`
	NameRu string `json:"name_ru"`
	NameEn string `json:"name_en"`
}

// listRegions serves GET /api/regions.
func (s *Server) listRegions(c echo.Context) error {
	regions, err := s.regions.ListRegions(c.Request().Context())
	if err != nil {
		return s.httpError(c, err)
	}
	out := make([]regionResponse, 0, len(regions))
	for _, r := range regions {
		out = append(out, regionResponse{Key: r.Key, NameUz: r.NameUz, NameRu: r.NameRu, NameEn: r.NameEn})
	}
	return c.JSON(http.StatusOK, out)
}

type districtResponse struct {
	Key       string `json:"key"`
	RegionKey string `json:"region_key"`
	NameUz    string `json:"name_uz"`
	NameRu    string `json:"name_ru"`
	NameEn    string `json:"name_en"`
}

// listDistricts serves GET /api/regions/:key/districts.
func (s *Server) listDistricts(c echo.Context) error {
	ctx := c.Request().Context()
	regionKey := c.Param("key")

	region, err := s.regions.GetRegion(ctx, regionKey)
	if err != nil {
		return s.httpError(c, err)
	}
	if region == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "region not found"})
	}

	districts, err := s.regions.ListDistricts(ctx, regionKey)
	if err != nil {
		return s.httpError(c, err)
	}
	out := make([]districtResponse, 0, len(districts))
	for _, d := range districts {
		out = append(out, districtResponse{Key: d.Key, RegionKey: d.RegionKey, NameUz: d.NameUz, NameRu: d.NameRu, NameEn: d.NameEn})
	}
	return c.JSON(http.StatusOK, out)
}
