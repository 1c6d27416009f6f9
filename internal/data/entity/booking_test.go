package entity_test

import (
	"testing"
	"time"

	"hbnb-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(status entity.BookingStatus, checkIn, checkOut string) *entity.Booking {
	now := time.Now().UTC()
	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PlaceID:      uuid.New(),
		GuestID:      uuid.New(),
		CheckInDate:  date(checkIn),
		CheckOutDate: date(checkOut),
		TotalPrice:   400,
		Status:       status,
	}
}

func TestNewBooking(t *testing.T) {
	now := date("2025-01-10")

	t.Run("computes total price from nights and rate", func(t *testing.T) {
		booking, err := entity.NewBooking(uuid.New(), uuid.New(), date("2025-01-20"), date("2025-01-22"), 100.00, now)
		require.NoError(t, err)

		assert.Equal(t, entity.BookingStatusPending, booking.Status)
		assert.Equal(t, 2, booking.Nights())
		assert.Equal(t, 200.00, booking.TotalPrice)
		assert.NotEqual(t, uuid.Nil, booking.ID)
	})

	t.Run("rejects zero-night stay", func(t *testing.T) {
		_, err := entity.NewBooking(uuid.New(), uuid.New(), date("2025-01-20"), date("2025-01-20"), 100.00, now)

		var validationErr *entity.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Violations, "booking must be at least 1 night")
	})

	t.Run("rejects check-out before check-in", func(t *testing.T) {
		_, err := entity.NewBooking(uuid.New(), uuid.New(), date("2025-01-22"), date("2025-01-20"), 100.00, now)
		assert.Error(t, err)
	})

	t.Run("rejects check-in in the past", func(t *testing.T) {
		_, err := entity.NewBooking(uuid.New(), uuid.New(), date("2025-01-05"), date("2025-01-08"), 100.00, now)

		var validationErr *entity.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Violations, "check_in_date cannot be in the past")
	})

	t.Run("rejects non-positive rate", func(t *testing.T) {
		_, err := entity.NewBooking(uuid.New(), uuid.New(), date("2025-01-20"), date("2025-01-22"), 0, now)
		assert.Error(t, err)
	})

	t.Run("collects every violation in one pass", func(t *testing.T) {
		_, err := entity.NewBooking(uuid.New(), uuid.New(), date("2025-01-05"), date("2025-01-05"), -10, now)

		var validationErr *entity.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Len(t, validationErr.Violations, 3)
	})
}

func TestBookingTransitions(t *testing.T) {
	now := time.Now().UTC()

	t.Run("confirm pending", func(t *testing.T) {
		booking := newTestBooking(entity.BookingStatusPending, "2025-06-01", "2025-06-05")
		require.NoError(t, booking.Confirm(now))
		assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
		assert.Equal(t, now, booking.UpdatedAt)
	})

	t.Run("cancel pending", func(t *testing.T) {
		booking := newTestBooking(entity.BookingStatusPending, "2025-06-01", "2025-06-05")
		require.NoError(t, booking.Cancel(now))
		assert.Equal(t, entity.BookingStatusCancelled, booking.Status)
	})

	t.Run("cancel confirmed", func(t *testing.T) {
		booking := newTestBooking(entity.BookingStatusConfirmed, "2025-06-01", "2025-06-05")
		require.NoError(t, booking.Cancel(now))
		assert.Equal(t, entity.BookingStatusCancelled, booking.Status)
	})

	t.Run("complete confirmed after check-out", func(t *testing.T) {
		booking := newTestBooking(entity.BookingStatusConfirmed, "2021-06-01", "2021-06-05")
		require.NoError(t, booking.Complete(now))
		assert.Equal(t, entity.BookingStatusCompleted, booking.Status)
	})

	t.Run("complete on check-out date", func(t *testing.T) {
		booking := newTestBooking(entity.BookingStatusConfirmed, "2021-06-01", "2021-06-05")
		require.NoError(t, booking.Complete(date("2021-06-05")))
		assert.Equal(t, entity.BookingStatusCompleted, booking.Status)
	})

	t.Run("complete before check-out fails", func(t *testing.T) {
		booking := newTestBooking(entity.BookingStatusConfirmed, "2099-06-01", "2099-06-05")

		err := booking.Complete(now)
		var transitionErr *entity.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
	})
}

// Every (state, event) pair outside the transition table must fail and
// leave the status untouched. Cancel and confirm are not idempotent:
// repeating them on a booking already past the source state is an error.
func TestTransitionClosure(t *testing.T) {
	now := time.Now().UTC()

	type event struct {
		name  string
		apply func(*entity.Booking) error
	}

	events := []event{
		{"confirm", func(b *entity.Booking) error { return b.Confirm(now) }},
		{"cancel", func(b *entity.Booking) error { return b.Cancel(now) }},
		{"complete", func(b *entity.Booking) error { return b.Complete(now) }},
	}

	allowed := map[entity.BookingStatus]map[string]bool{
		entity.BookingStatusPending:   {"confirm": true, "cancel": true},
		entity.BookingStatusConfirmed: {"cancel": true, "complete": true},
		entity.BookingStatusCancelled: {},
		entity.BookingStatusCompleted: {},
	}

	for status, legal := range allowed {
		for _, ev := range events {
			t.Run(string(status)+"_"+ev.name, func(t *testing.T) {
				// Past check-out so the complete date guard never masks
				// a status-table violation.
				booking := newTestBooking(status, "2021-06-01", "2021-06-05")

				err := ev.apply(booking)
				if legal[ev.name] {
					assert.NoError(t, err)
				} else {
					var transitionErr *entity.InvalidTransitionError
					require.ErrorAs(t, err, &transitionErr)
					assert.Equal(t, status, transitionErr.From)
					assert.Equal(t, ev.name, transitionErr.Event)
					assert.Equal(t, status, booking.Status, "status must be preserved on invalid transition")
				}
			})
		}
	}
}

func TestCanCancel(t *testing.T) {
	assert.True(t, newTestBooking(entity.BookingStatusPending, "2025-06-01", "2025-06-05").CanCancel())
	assert.True(t, newTestBooking(entity.BookingStatusConfirmed, "2025-06-01", "2025-06-05").CanCancel())
	assert.False(t, newTestBooking(entity.BookingStatusCancelled, "2025-06-01", "2025-06-05").CanCancel())
	assert.False(t, newTestBooking(entity.BookingStatusCompleted, "2025-06-01", "2025-06-05").CanCancel())
}

func TestCancellationDeadline(t *testing.T) {
	window := 48 * time.Hour

	t.Run("active booking exposes deadline", func(t *testing.T) {
		booking := newTestBooking(entity.BookingStatusPending, "2025-06-10", "2025-06-15")

		deadline, ok := booking.CancellationDeadline(window)
		require.True(t, ok)
		assert.Equal(t, date("2025-06-08"), deadline)
	})

	t.Run("cancelled booking has no deadline", func(t *testing.T) {
		booking := newTestBooking(entity.BookingStatusCancelled, "2025-06-10", "2025-06-15")

		_, ok := booking.CancellationDeadline(window)
		assert.False(t, ok)
	})

	t.Run("completed booking has no deadline", func(t *testing.T) {
		booking := newTestBooking(entity.BookingStatusCompleted, "2025-06-10", "2025-06-15")

		_, ok := booking.CancellationDeadline(window)
		assert.False(t, ok)
	})
}

func TestIsActive(t *testing.T) {
	assert.True(t, newTestBooking(entity.BookingStatusPending, "2025-06-01", "2025-06-05").IsActive())
	assert.True(t, newTestBooking(entity.BookingStatusConfirmed, "2025-06-01", "2025-06-05").IsActive())
	assert.False(t, newTestBooking(entity.BookingStatusCancelled, "2025-06-01", "2025-06-05").IsActive())
	assert.False(t, newTestBooking(entity.BookingStatusCompleted, "2025-06-01", "2025-06-05").IsActive())
}
