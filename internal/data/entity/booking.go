package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is a reservation of a place for a half-open date range
// [CheckInDate, CheckOutDate). Place and guest are referenced by id
// only; cross-entity reads go through the repositories.
type Booking struct {
	Base
	PlaceID      uuid.UUID     `db:"place_id"`
	GuestID      uuid.UUID     `db:"guest_id"`
	CheckInDate  time.Time     `db:"check_in_date"`
	CheckOutDate time.Time     `db:"check_out_date"`
	TotalPrice   float64       `db:"total_price"`
	Status       BookingStatus `db:"status"`
}

// NewBooking builds a pending booking with its total price computed from
// the nightly rate. All violations are collected into one ValidationError.
func NewBooking(placeID, guestID uuid.UUID, checkIn, checkOut time.Time, pricePerNight float64, now time.Time) (*Booking, error) {
	var violations []string

	today := DateOf(now)
	if checkIn.Before(today) {
		violations = append(violations, "check_in_date cannot be in the past")
	}
	nights := Nights(checkIn, checkOut)
	if nights < 1 {
		violations = append(violations, "booking must be at least 1 night")
	}
	if pricePerNight <= 0 {
		violations = append(violations, "total price must be a positive number")
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	return &Booking{
		Base: Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PlaceID:      placeID,
		GuestID:      guestID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalPrice:   float64(nights) * pricePerNight,
		Status:       BookingStatusPending,
	}, nil
}

// Nights returns the length of the stay.
func (b *Booking) Nights() int {
	return Nights(b.CheckInDate, b.CheckOutDate)
}

// IsActive reports whether the booking counts toward availability
// conflicts.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// OverlapsRange reports whether the booking occupies any night of the
// half-open range [checkIn, checkOut).
func (b *Booking) OverlapsRange(checkIn, checkOut time.Time) bool {
	return Overlaps(b.CheckInDate, b.CheckOutDate, checkIn, checkOut)
}

// Confirm moves a pending booking to confirmed.
func (b *Booking) Confirm(now time.Time) error {
	if b.Status != BookingStatusPending {
		return &InvalidTransitionError{From: b.Status, Event: "confirm"}
	}
	b.Status = BookingStatusConfirmed
	b.UpdatedAt = now
	return nil
}

// Cancel moves a pending or confirmed booking to cancelled. Cancelling a
// booking that is already cancelled or completed is an error, not a no-op.
func (b *Booking) Cancel(now time.Time) error {
	if !b.CanCancel() {
		return &InvalidTransitionError{From: b.Status, Event: "cancel"}
	}
	b.Status = BookingStatusCancelled
	b.UpdatedAt = now
	return nil
}

// Complete moves a confirmed booking to completed, but only once the
// check-out date has passed.
func (b *Booking) Complete(now time.Time) error {
	if b.Status != BookingStatusConfirmed {
		return &InvalidTransitionError{From: b.Status, Event: "complete"}
	}
	if DateOf(now).Before(b.CheckOutDate) {
		return &InvalidTransitionError{From: b.Status, Event: "complete"}
	}
	b.Status = BookingStatusCompleted
	b.UpdatedAt = now
	return nil
}

// CanCancel reports whether the booking is in a cancellable status.
func (b *Booking) CanCancel() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// CancellationDeadline derives the moment until which the booking is
// advertised as cancellable: the configured window before check-in
// midnight. It only applies to active bookings and is never stored.
func (b *Booking) CancellationDeadline(window time.Duration) (time.Time, bool) {
	if !b.CanCancel() {
		return time.Time{}, false
	}
	return b.CheckInDate.Add(-window), true
}
