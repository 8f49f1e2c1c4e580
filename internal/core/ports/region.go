package ports

import (
	"context"

	"uybor/internal/core/domain"
)

// RegionRepository serves the static region/district reference data.
// Get methods return (nil, nil) for unknown or inactive keys.
type RegionRepository interface {
	ListRegions(ctx context.Context) ([]*domain.Region, error)
	GetRegion(ctx context.Context, key string) (*domain.Region, error)
	ListDistricts(ctx context.Context, regionKey string) ([]*domain.District, error)
	GetDistrict(ctx context.Context, regionKey, key string) (*domain.District, error)
}
