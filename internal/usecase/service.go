package usecase

import (
	"hbnb-booking/internal/data/repository"
	"hbnb-booking/internal/payment"
	"hbnb-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Payment PaymentService
}

func NewService(repo *repository.Repository, gateway payment.Gateway, config *utils.Config, log *zap.Logger) *Service {
	reconciler := NewReconciler(gateway, log)

	return &Service{
		Booking: NewBookingService(repo, reconciler, config, log),
		Payment: NewPaymentService(gateway, log),
	}
}
