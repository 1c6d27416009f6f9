package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hbnb-booking/internal/data/entity"
	"hbnb-booking/internal/payment"
	"hbnb-booking/internal/usecase"
	"hbnb-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &entity.ValidationError{Violations: []string{"check_in_date cannot be in the past"}}, http.StatusBadRequest},
		{"place not found", usecase.ErrPlaceNotFound, http.StatusNotFound},
		{"booking not found", usecase.ErrBookingNotFound, http.StatusNotFound},
		{"payment not found", payment.ErrPaymentNotFound, http.StatusNotFound},
		{"dates unavailable", usecase.ErrNotAvailable, http.StatusConflict},
		{"self booking", usecase.ErrSelfBooking, http.StatusBadRequest},
		{"payment incomplete", &usecase.PaymentIncompleteError{Status: "processing"}, http.StatusBadRequest},
		{"amount mismatch", &usecase.AmountMismatchError{ExpectedCents: 125000, ActualCents: 50000}, http.StatusBadRequest},
		{"gateway failure", &payment.GatewayError{Err: errors.New("connection refused")}, http.StatusBadGateway},
		{"invalid transition", &entity.InvalidTransitionError{From: entity.BookingStatusCancelled, Event: "confirm"}, http.StatusBadRequest},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusForbidden},
		{"malformed id", fmt.Errorf("invalid booking ID format abc: %w", errors.New("bad uuid")), http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("cancel booking: %w", usecase.ErrBookingNotFound), http.StatusNotFound},
		{"unknown", errors.New("connection reset by peer"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			respondServiceError(recorder, zap.NewNop(), tt.err, "create booking")

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body utils.Response
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestRespondServiceErrorValidationDetails(t *testing.T) {
	recorder := httptest.NewRecorder()
	err := &entity.ValidationError{Violations: []string{
		"check_in_date cannot be in the past",
		"booking must be at least 1 night",
	}}

	respondServiceError(recorder, zap.NewNop(), err, "create booking")

	var body utils.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.Errors, 2)
}
