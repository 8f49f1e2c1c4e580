package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

type listingRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.ListingRepository = (*listingRepository)(nil)

// NewListingRepository creates a new repository for listing operations.
func NewListingRepository(db *DB, baseLogger *zerolog.Logger) ports.ListingRepository {
	return &listingRepository{
		db:  db,
		log: baseLogger.With().Str("component", "listing_repo").Logger(),
	}
}

const listingQueryCols = `
	id, owner_id, title, description, property_type, purpose,
	region_key, district_key, full_address, price, price_text, area, area_text,
	rooms, contact_info, photo_file_ids, is_premium, is_active,
	approval_status, admin_feedback, reviewed_by, channel_message_id,
	views_count, favorites_count, created_at, updated_at, published_at
`

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (
			owner_id, title, description, property_type, purpose,
			region_key, district_key, full_address, price, price_text,
			area, area_text, rooms, contact_info, photo_file_ids,
			is_premium, is_active, approval_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`
	err := r.db.pool.QueryRow(ctx, query,
		listing.OwnerID, listing.Title, listing.Description, listing.PropertyType, listing.Purpose,
		listing.RegionKey, listing.DistrictKey, listing.FullAddress, listing.Price, listing.PriceText,
		listing.Area, listing.AreaText, listing.Rooms, listing.ContactInfo, listing.PhotoFileIDs,
		listing.IsPremium, listing.IsActive, listing.ApprovalStatus,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to create listing")
	}
	return err
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	err := row.Scan(
		&l.ID,
		&l.OwnerID,
		&l.Title,
		&l.Description,
		&l.PropertyType,
		&l.Purpose,
		&l.RegionKey,
		&l.DistrictKey,
		&l.FullAddress,
		&l.Price,
		&l.PriceText,
		&l.Area,
		&l.AreaText,
		&l.Rooms,
		&l.ContactInfo,
		&l.PhotoFileIDs,
		&l.IsPremium,
		&l.IsActive,
		&l.ApprovalStatus,
		&l.AdminFeedback,
		&l.ReviewedBy,
		&l.ChannelMessageID,
		&l.ViewsCount,
		&l.FavoritesCount,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func queryListings(ctx context.Context, db *DB, log zerolog.Logger, query string, args ...any) ([]*domain.Listing, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to query listings")
		return nil, err
	}
	defer rows.Close()

	var listings []*domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			log.Error().Err(err).Msg("Failed to scan listing row")
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	query := `SELECT ` + listingQueryCols + ` FROM listings WHERE id = $1`

	l, err := scanListing(r.db.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error().Err(err).Int64("listing_id", id).Msg("Failed to get listing")
		return nil, err
	}
	return l, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	query := `
		UPDATE listings SET
			title = $2, description = $3, property_type = $4, purpose = $5,
			region_key = $6, district_key = $7, full_address = $8,
			price = $9, price_text = $10, area = $11, area_text = $12,
			rooms = $13, contact_info = $14, photo_file_ids = $15,
			updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.pool.Exec(ctx, query,
		listing.ID, listing.Title, listing.Description, listing.PropertyType, listing.Purpose,
		listing.RegionKey, listing.DistrictKey, listing.FullAddress,
		listing.Price, listing.PriceText, listing.Area, listing.AreaText,
		listing.Rooms, listing.ContactInfo, listing.PhotoFileIDs)
	if err != nil {
		r.log.Error().Err(err).Int64("listing_id", listing.ID).Msg("Failed to update listing")
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *listingRepository) ListPublic(ctx context.Context, filter ports.ListingFilter) ([]*domain.Listing, error) {
	var (
		conds = []string{"approval_status = 'approved'", "is_active = TRUE"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.RegionKey != "" {
		conds = append(conds, "region_key = "+arg(filter.RegionKey))
	}
	if filter.DistrictKey != "" {
		conds = append(conds, "district_key = "+arg(filter.DistrictKey))
	}
	if filter.PropertyType != "" {
		conds = append(conds, "property_type = "+arg(filter.PropertyType))
	}
	if filter.Purpose != "" {
		conds = append(conds, "purpose = "+arg(filter.Purpose))
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= "+arg(*filter.MaxPrice))
	}
	if filter.MinArea != nil {
		conds = append(conds, "area >= "+arg(*filter.MinArea))
	}
	if filter.MaxArea != nil {
		conds = append(conds, "area <= "+arg(*filter.MaxArea))
	}
	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE %s OR description ILIKE %s OR full_address ILIKE %s)", p, p, p))
	}

	query := `SELECT ` + listingQueryCols + ` FROM listings WHERE ` +
		strings.Join(conds, " AND ") +
		` ORDER BY is_premium DESC, created_at DESC`
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	return queryListings(ctx, r.db, r.log, query, args...)
}

func (r *listingRepository) ListPending(ctx context.Context) ([]*domain.Listing, error) {
	query := `SELECT ` + listingQueryCols + `
		FROM listings WHERE approval_status = 'pending' ORDER BY created_at ASC`
	return queryListings(ctx, r.db, r.log, query)
}

func (r *listingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Listing, error) {
	query := `SELECT ` + listingQueryCols + `
		FROM listings WHERE owner_id = $1 ORDER BY created_at DESC`
	return queryListings(ctx, r.db, r.log, query, ownerID)
}

// Approve transitions pending -> approved. The conditional UPDATE makes a
// concurrent second approval lose cleanly instead of double publishing.
func (r *listingRepository) Approve(ctx context.Context, id int64, adminID int64, now time.Time) error {
	query := `
		UPDATE listings SET
			approval_status = 'approved', reviewed_by = $2,
			published_at = $3, updated_at = now()
		WHERE id = $1 AND approval_status = 'pending'
	`
	tag, err := r.db.pool.Exec(ctx, query, id, adminID, now)
	if err != nil {
		r.log.Error().Err(err).Int64("listing_id", id).Msg("Failed to approve listing")
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.reviewConflict(ctx, id)
	}
	return nil
}

func (r *listingRepository) Decline(ctx context.Context, id int64, adminID int64, feedback string) error {
	query := `
		UPDATE listings SET
			approval_status = 'declined', reviewed_by = $2,
			admin_feedback = $3, updated_at = now()
		WHERE id = $1 AND approval_status = 'pending'
	`
	tag, err := r.db.pool.Exec(ctx, query, id, adminID, feedback)
	if err != nil {
		r.log.Error().Err(err).Int64("listing_id", id).Msg("Failed to decline listing")
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.reviewConflict(ctx, id)
	}
	return nil
}

// reviewConflict distinguishes a missing listing from one already reviewed.
func (r *listingRepository) reviewConflict(ctx context.Context, id int64) error {
	var exists bool
	err := r.db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM listings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrAlreadyProcessed
}

func (r *listingRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.setFlag(ctx, id, "is_active", active)
}

func (r *listingRepository) SetPremium(ctx context.Context, id int64, premium bool) error {
	return r.setFlag(ctx, id, "is_premium", premium)
}

func (r *listingRepository) setFlag(ctx context.Context, id int64, column string, value bool) error {
	query := fmt.Sprintf(`UPDATE listings SET %s = $2, updated_at = now() WHERE id = $1`, column)

	tag, err := r.db.pool.Exec(ctx, query, id, value)
	if err != nil {
		r.log.Error().Err(err).Int64("listing_id", id).Str("column", column).Msg("Failed to set listing flag")
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *listingRepository) SetChannelMessage(ctx context.Context, id int64, messageID int) error {
	query := `UPDATE listings SET channel_message_id = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.pool.Exec(ctx, query, id, messageID)
	if err != nil {
		r.log.Error().Err(err).Int64("listing_id", id).Msg("Failed to set channel message id")
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *listingRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.pool.Exec(ctx,
		`UPDATE listings SET views_count = views_count + 1 WHERE id = $1`, id)
	if err != nil {
		r.log.Error().Err(err).Int64("listing_id", id).Msg("Failed to increment views")
	}
	return err
}

// Delete removes the listing and its favorites in one transaction. The
// favoriter Telegram ids are captured before the rows go away so callers
// can notify them afterwards.
func (r *listingRepository) Delete(ctx context.Context, id int64) ([]int64, error) {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT u.telegram_id FROM favorites f
		JOIN users u ON u.id = f.user_id
		WHERE f.listing_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	var favoriters []int64
	for rows.Next() {
		var tgID int64
		if err := rows.Scan(&tgID); err != nil {
			rows.Close()
			return nil, err
		}
		favoriters = append(favoriters, tgID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM favorites WHERE listing_id = $1`, id); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error().Err(err).Int64("listing_id", id).Msg("Failed to commit listing delete")
		return nil, err
	}
	return favoriters, nil
}

func (r *listingRepository) Stats(ctx context.Context) (*ports.ListingStats, error) {
	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE approval_status = 'pending'),
			count(*) FILTER (WHERE approval_status = 'approved'),
			count(*) FILTER (WHERE approval_status = 'declined'),
			(SELECT count(*) FROM users),
			count(*) FILTER (WHERE created_at >= date_trunc('day', now())),
			count(*) FILTER (WHERE approval_status = 'approved' AND created_at >= date_trunc('day', now()))
		FROM listings
	`
	var stats ports.ListingStats
	err := r.db.pool.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Pending, &stats.Approved, &stats.Declined,
		&stats.Users, &stats.Today, &stats.TodayApproved)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to query listing stats")
		return nil, err
	}
	return &stats, nil
}

func (r *listingRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, int, error) {
	query := `
		SELECT count(*), count(*) FILTER (WHERE approval_status = 'approved')
		FROM listings WHERE owner_id = $1
	`
	var total, approved int
	if err := r.db.pool.QueryRow(ctx, query, ownerID).Scan(&total, &approved); err != nil {
		r.log.Error().Err(err).Msg("Failed to count owner listings")
		return 0, 0, err
	}
	return total, approved, nil
}
