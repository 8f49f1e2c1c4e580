package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

type regionRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.RegionRepository = (*regionRepository)(nil)

// NewRegionRepository creates a new repository for region reference data.
func NewRegionRepository(db *DB, baseLogger *zerolog.Logger) ports.RegionRepository {
	return &regionRepository{
		db:  db,
		log: baseLogger.With().Str("component", "region_repo").Logger(),
	}
}

func (r *regionRepository) ListRegions(ctx context.Context) ([]*domain.Region, error) {
	query := `
		SELECT id, key, name_uz, name_ru, name_en, is_active, sort_order
		FROM regions WHERE is_active = TRUE ORDER BY sort_order, name_uz
	`
	rows, err := r.db.pool.Query(ctx, query)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to query regions")
		return nil, err
	}
	defer rows.Close()

	var regions []*domain.Region
	for rows.Next() {
		var reg domain.Region
		if err := rows.Scan(&reg.ID, &reg.Key, &reg.NameUz, &reg.NameRu, &reg.NameEn, &reg.IsActive, &reg.Order); err != nil {
			return nil, err
		}
		regions = append(regions, &reg)
	}
	return regions, rows.Err()
}

func (r *regionRepository) GetRegion(ctx context.Context, key string) (*domain.Region, error) {
	query := `
		SELECT id, key, name_uz, name_ru, name_en, is_active, sort_order
		FROM regions WHERE key = $1 AND is_active = TRUE
	`
	var reg domain.Region
	err := r.db.pool.QueryRow(ctx, query, key).Scan(
		&reg.ID, &reg.Key, &reg.NameUz, &reg.NameRu, &reg.NameEn, &reg.IsActive, &reg.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error().Err(err).Str("region", key).Msg("Failed to get region")
		return nil, err
	}
	return &reg, nil
}

func (r *regionRepository) ListDistricts(ctx context.Context, regionKey string) ([]*domain.District, error) {
	query := `
		SELECT id, region_key, key, name_uz, name_ru, name_en, is_active, sort_order
		FROM districts WHERE region_key = $1 AND is_active = TRUE
		ORDER BY sort_order, name_uz
	`
	rows, err := r.db.pool.Query(ctx, query, regionKey)
	if err != nil {
		r.log.Error().Err(err).Str("region", regionKey).Msg("Failed to query districts")
		return nil, err
	}
	defer rows.Close()

	var districts []*domain.District
	for rows.Next() {
		var d domain.District
		if err := rows.Scan(&d.ID, &d.RegionKey, &d.Key, &d.NameUz, &d.NameRu, &d.NameEn, &d.IsActive, &d.Order); err != nil {
			return nil, err
		}
		districts = append(districts, &d)
	}
	return districts, rows.Err()
}

func (r *regionRepository) GetDistrict(ctx context.Context, regionKey, key string) (*domain.District, error) {
	query := `
		SELECT id, region_key, key, name_uz, name_ru, name_en, is_active, sort_order
		FROM districts WHERE region_key = $1 AND key = $2 AND is_active = TRUE
	`
	var d domain.District
	err := r.db.pool.QueryRow(ctx, query, regionKey, key).Scan(
		&d.ID, &d.RegionKey, &d.Key, &d.NameUz, &d.NameRu, &d.NameEn, &d.IsActive, &d.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error().Err(err).Str("district", key).Msg("Failed to get district")
		return nil, err
	}
	return &d, nil
}
