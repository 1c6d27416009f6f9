package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"hbnb-booking/internal/data/entity"
	"hbnb-booking/internal/payment"
	"hbnb-booking/internal/usecase"
	"hbnb-booking/pkg/utils"

	"go.uber.org/zap"
)

// respondServiceError maps the booking error taxonomy onto transport
// status codes. Every error carries enough detail for a user-facing
// message; unknown errors stay opaque.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *entity.ValidationError
	var transitionErr *entity.InvalidTransitionError
	var incompleteErr *usecase.PaymentIncompleteError
	var mismatchErr *usecase.AmountMismatchError
	var gatewayErr *payment.GatewayError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Violations)

	case errors.Is(err, usecase.ErrPlaceNotFound),
		errors.Is(err, usecase.ErrGuestNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, payment.ErrPaymentNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNotAvailable):
		log.Warn(operation+" failed - dates unavailable", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrSelfBooking):
		log.Warn(operation+" failed - self booking", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.As(err, &incompleteErr), errors.As(err, &mismatchErr):
		log.Warn(operation+" failed - payment rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.As(err, &gatewayErr):
		log.Error(operation+" failed - payment gateway", zap.Error(err))
		utils.ResponseBadGateway(w, "Payment gateway unavailable, please retry")

	case errors.As(err, &transitionErr):
		log.Warn(operation+" failed - invalid transition", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case strings.Contains(err.Error(), "invalid"):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
