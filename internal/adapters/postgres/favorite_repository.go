package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

type favoriteRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.FavoriteRepository = (*favoriteRepository)(nil)

// NewFavoriteRepository creates a new repository for favorite operations.
func NewFavoriteRepository(db *DB, baseLogger *zerolog.Logger) ports.FavoriteRepository {
	return &favoriteRepository{
		db:  db,
		log: baseLogger.With().Str("component", "favorite_repo").Logger(),
	}
}

func (r *favoriteRepository) Add(ctx context.Context, userID uuid.UUID, listingID int64) (bool, error) {
	query := `
		INSERT INTO favorites (user_id, listing_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, listing_id) DO NOTHING
	`
	tag, err := r.db.pool.Exec(ctx, query, userID, listingID)
	if err != nil {
		r.log.Error().Err(err).Int64("listing_id", listingID).Msg("Failed to add favorite")
		return false, err
	}
	added := tag.RowsAffected() > 0
	if added {
		_, err = r.db.pool.Exec(ctx,
			`UPDATE listings SET favorites_count = favorites_count + 1 WHERE id = $1`, listingID)
		if err != nil {
			r.log.Error().Err(err).Int64("listing_id", listingID).Msg("Failed to bump favorites count")
			return false, err
		}
	}
	return added, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID uuid.UUID, listingID int64) error {
	tag, err := r.db.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	if err != nil {
		r.log.Error().Err(err).Int64("listing_id", listingID).Msg("Failed to remove favorite")
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	_, err = r.db.pool.Exec(ctx,
		`UPDATE listings SET favorites_count = greatest(favorites_count - 1, 0) WHERE id = $1`, listingID)
	return err
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Listing, error) {
	query := `SELECT ` + listingQueryCols + `
		FROM listings
		JOIN favorites f ON f.listing_id = listings.id
		WHERE f.user_id = $1 AND approval_status = 'approved' AND is_active = TRUE
		ORDER BY f.created_at DESC`
	return queryListings(ctx, r.db, r.log, query, userID)
}

func (r *favoriteRepository) UsersForListing(ctx context.Context, listingID int64) ([]int64, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT u.telegram_id FROM favorites f
		JOIN users u ON u.id = f.user_id
		WHERE f.listing_id = $1
	`, listingID)
	if err != nil {
		r.log.Error().Err(err).Int64("listing_id", listingID).Msg("Failed to query favoriters")
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var tgID int64
		if err := rows.Scan(&tgID); err != nil {
			return nil, err
		}
		ids = append(ids, tgID)
	}
	return ids, rows.Err()
}
