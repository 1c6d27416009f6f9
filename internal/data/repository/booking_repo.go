package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hbnb-booking/internal/data/entity"
	"hbnb-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrDatesUnavailable is returned by CreateIfAvailable when an active
// booking already occupies part of the requested range.
var ErrDatesUnavailable = errors.New("place is not available for selected dates")

type BookingRepository interface {
	// CreateIfAvailable runs the conflict check and the insert as one
	// atomically-isolated unit. A per-place advisory lock serializes
	// concurrent creations for the same place, so two overlapping
	// requests can never both pass the check.
	CreateIfAvailable(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	IsAvailable(ctx context.Context, placeID uuid.UUID, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) (bool, error)

	// UpdateStatusFrom persists a status transition only when the row is
	// still in one of the expected source statuses. Returns false when a
	// concurrent mutation already moved the booking elsewhere.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus, updatedAt time.Time) (bool, error)

	// Query views
	FindByGuestID(ctx context.Context, guestID uuid.UUID, status entity.BookingStatus) ([]*entity.Booking, error)
	FindByPlaceID(ctx context.Context, placeID uuid.UUID, status entity.BookingStatus) ([]*entity.Booking, error)
	FindUpcomingByGuestID(ctx context.Context, guestID uuid.UUID, today time.Time) ([]*entity.Booking, error)
	FindPastByGuestID(ctx context.Context, guestID uuid.UUID, today time.Time) ([]*entity.Booking, error)
	FindDueForCompletion(ctx context.Context, today time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, place_id, guest_id, check_in_date, check_out_date, total_price, status, created_at, updated_at`

// Half-open ranges [check_in, check_out) intersect iff
// new.check_in < existing.check_out AND existing.check_in < new.check_out.
const conflictCountQuery = `
	SELECT COUNT(*)
	FROM bookings
	WHERE place_id = $1
	  AND status IN ('pending', 'confirmed')
	  AND check_in_date < $3
	  AND check_out_date > $2
`

func (r *bookingRepository) CreateIfAvailable(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serialize concurrent creations for the same place. The lock is
	// released automatically at commit or rollback.
	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`,
		booking.PlaceID,
	); err != nil {
		return fmt.Errorf("acquire place lock %s: %w", booking.PlaceID.String(), err)
	}

	var conflicts int
	err = tx.QueryRow(ctx, conflictCountQuery,
		booking.PlaceID,
		booking.CheckInDate,
		booking.CheckOutDate,
	).Scan(&conflicts)
	if err != nil {
		r.log.Error("Failed to check availability",
			zap.Error(err),
			zap.String("place_id", booking.PlaceID.String()),
		)
		return fmt.Errorf("check availability for place %s: %w", booking.PlaceID.String(), err)
	}

	if conflicts > 0 {
		return ErrDatesUnavailable
	}

	query := `
		INSERT INTO bookings (id, place_id, guest_id, check_in_date, check_out_date, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, query,
		booking.ID,
		booking.PlaceID,
		booking.GuestID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("place_id", booking.PlaceID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.PlaceID,
		&booking.GuestID,
		&booking.CheckInDate,
		&booking.CheckOutDate,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) IsAvailable(ctx context.Context, placeID uuid.UUID, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) (bool, error) {
	query := conflictCountQuery
	args := []any{placeID, checkIn, checkOut}

	// Used when re-validating an existing booking during an update.
	if excludeBookingID != nil {
		query += ` AND id != $4`
		args = append(args, *excludeBookingID)
	}

	var conflicts int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&conflicts); err != nil {
		r.log.Error("Failed to check availability",
			zap.Error(err),
			zap.String("place_id", placeID.String()),
		)
		return false, fmt.Errorf("check availability for place %s: %w", placeID.String(), err)
	}

	return conflicts == 0, nil
}

func (r *bookingRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = ANY($4)
	`

	statuses := make([]string, len(from))
	for i, s := range from {
		statuses[i] = string(s)
	}

	result, err := r.db.Exec(ctx, query, id, to, updatedAt, statuses)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(to)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) FindByGuestID(ctx context.Context, guestID uuid.UUID, status entity.BookingStatus) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE guest_id = $1`
	args := []any{guestID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY check_in_date DESC`

	return r.queryBookings(ctx, query, args, "find bookings by guest ID")
}

func (r *bookingRepository) FindByPlaceID(ctx context.Context, placeID uuid.UUID, status entity.BookingStatus) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE place_id = $1`
	args := []any{placeID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY check_in_date`

	return r.queryBookings(ctx, query, args, "find bookings by place ID")
}

func (r *bookingRepository) FindUpcomingByGuestID(ctx context.Context, guestID uuid.UUID, today time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE guest_id = $1
		  AND check_in_date >= $2
		  AND status IN ('pending', 'confirmed')
		ORDER BY check_in_date
	`

	return r.queryBookings(ctx, query, []any{guestID, today}, "find upcoming bookings")
}

func (r *bookingRepository) FindPastByGuestID(ctx context.Context, guestID uuid.UUID, today time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE guest_id = $1
		  AND (check_out_date < $2 OR status = 'completed')
		ORDER BY check_out_date DESC
	`

	return r.queryBookings(ctx, query, []any{guestID, today}, "find past bookings")
}

func (r *bookingRepository) FindDueForCompletion(ctx context.Context, today time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed'
		  AND check_out_date <= $1
		ORDER BY check_out_date
	`

	return r.queryBookings(ctx, query, []any{today}, "find bookings due for completion")
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args []any, operation string) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.PlaceID,
			&booking.GuestID,
			&booking.CheckInDate,
			&booking.CheckOutDate,
			&booking.TotalPrice,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
