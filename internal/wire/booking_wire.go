package wire

import (
	"hbnb-booking/internal/adaptor"
	"hbnb-booking/internal/data/repository"
	"hbnb-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/bookings - Create booking (payment verified first)
		r.Post("/api/bookings", handler.Booking.CreateBooking)

		// GET /api/bookings/{id} - Booking details (guest, owner or admin)
		r.Get("/api/bookings/{id}", handler.Booking.GetBooking)

		// PUT /api/bookings/{id}/cancel - Cancel (guest, owner or admin)
		r.Put("/api/bookings/{id}/cancel", handler.Booking.CancelBooking)

		// PUT /api/bookings/{id}/confirm - Confirm (owner or admin)
		r.Put("/api/bookings/{id}/confirm", handler.Booking.ConfirmBooking)

		// PUT /api/bookings/{id}/complete - Complete after check-out
		r.Put("/api/bookings/{id}/complete", handler.Booking.CompleteBooking)

		// GET /api/user/bookings?type=upcoming|past&status= - Guest views
		r.Get("/api/user/bookings", handler.Booking.GetUserBookings)

		// GET /api/places/{id}/bookings?status= - Owner view
		r.Get("/api/places/{id}/bookings", handler.Booking.GetPlaceBookings)

		// GET /api/payments/{ref}/verify - Gateway verification result
		r.Get("/api/payments/{ref}/verify", handler.Payment.VerifyPayment)
	})

	// ==================== PUBLIC ROUTES ====================
	// GET /api/places/{id}/availability?check_in=&check_out=
	r.Get("/api/places/{id}/availability", handler.Booking.CheckAvailability)
}
