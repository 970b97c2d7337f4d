// Package booking_repo provides the PostgreSQL repository for bookings.
package booking_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"volentia/internal/core/id"
	"volentia/internal/domain"
	"volentia/internal/domain/booking"
	"volentia/internal/infrastructure/storage/postgres"
	"volentia/internal/infrastructure/storage/postgres/catalog_repo"
)

const bookingTable = "bookings"

// BookingRepo implements booking.Repository.
type BookingRepo struct {
	*catalog_repo.BaseRepo[*booking.Booking]
}

// NewBookingRepo creates a new booking repository.
func NewBookingRepo(txm *postgres.TxManager) *BookingRepo {
	return &BookingRepo{
		BaseRepo: catalog_repo.NewBaseRepo(
			txm,
			bookingTable,
			postgres.ExtractDBColumns[booking.Booking](),
			nil,
			func() *booking.Booking { return &booking.Booking{} },
		),
	}
}

// ListByUser retrieves a user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID id.ID, filter domain.ListFilter) (domain.ListResult[*booking.Booking], error) {
	return r.listWhere(ctx, squirrel.Eq{"user_id": userID}, filter)
}

// ListByExperience retrieves all bookings on an experience.
func (r *BookingRepo) ListByExperience(ctx context.Context, experienceID id.ID, filter domain.ListFilter) (domain.ListResult[*booking.Booking], error) {
	return r.listWhere(ctx, squirrel.Eq{"experience_id": experienceID}, filter)
}

func (r *BookingRepo) listWhere(ctx context.Context, cond squirrel.Eq, filter domain.ListFilter) (domain.ListResult[*booking.Booking], error) {
	result := domain.ListResult[*booking.Booking]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.BaseSelect().
		Where(cond).
		Where(squirrel.Eq{"deletion_mark": false})

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := r.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("booked_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	items, err := r.FindMany(ctx, q)
	if err != nil {
		return result, err
	}
	result.Items = items
	return result, nil
}

// CountConfirmed counts confirmed bookings on an experience. Callers
// run it inside the booking transaction so the capacity check sees a
// consistent snapshot.
func (r *BookingRepo) CountConfirmed(ctx context.Context, experienceID id.ID) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(bookingTable).
		Where(squirrel.Eq{"experience_id": experienceID}).
		Where(squirrel.Eq{"status": booking.StatusConfirmed}).
		Where(squirrel.Eq{"deletion_mark": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count confirmed: %w", err)
	}

	var count int64
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count confirmed: %w", err)
	}
	return count, nil
}

// FindActive retrieves the user's confirmed booking on an experience.
func (r *BookingRepo) FindActive(ctx context.Context, userID, experienceID id.ID) (*booking.Booking, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"experience_id": experienceID}).
		Where(squirrel.Eq{"status": booking.StatusConfirmed}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}
