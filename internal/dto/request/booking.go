package request

type CreateBookingRequest struct {
	PlaceID         string `json:"place_id" validate:"required,uuid"`
	CheckInDate     string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate    string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

type AvailabilityRequest struct {
	PlaceID      string `validate:"required,uuid"`
	CheckInDate  string `validate:"required,datetime=2006-01-02"`
	CheckOutDate string `validate:"required,datetime=2006-01-02"`
}
