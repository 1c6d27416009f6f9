package response

import (
	"time"

	"hbnb-booking/internal/data/entity"
)

type BookingResponse struct {
	ID           string  `json:"id"`
	PlaceID      string  `json:"place_id"`
	GuestID      string  `json:"guest_id"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	TotalPrice   float64 `json:"total_price"`
	Status       string  `json:"status"`
	CanCancel    bool    `json:"can_cancel"`
	// Only present while the booking is still cancellable.
	CancellationDeadline *time.Time `json:"cancellation_deadline,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type AvailabilityResponse struct {
	PlaceID      string `json:"place_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Available    bool   `json:"available"`
}

type PaymentVerificationResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// BookingToResponse serializes a booking view, deriving can_cancel and
// the cancellation deadline from the configured window.
func BookingToResponse(booking *entity.Booking, cancelWindow time.Duration) BookingResponse {
	resp := BookingResponse{
		ID:           booking.ID.String(),
		PlaceID:      booking.PlaceID.String(),
		GuestID:      booking.GuestID.String(),
		CheckInDate:  booking.CheckInDate.Format(entity.DateLayout),
		CheckOutDate: booking.CheckOutDate.Format(entity.DateLayout),
		TotalPrice:   booking.TotalPrice,
		Status:       string(booking.Status),
		CanCancel:    booking.CanCancel(),
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
	}

	if deadline, ok := booking.CancellationDeadline(cancelWindow); ok {
		resp.CancellationDeadline = &deadline
	}

	return resp
}
