package usecase

import (
	"context"

	"hbnb-booking/internal/dto/response"
	"hbnb-booking/internal/payment"

	"go.uber.org/zap"
)

type PaymentService interface {
	// VerifyPayment surfaces the gateway's view of a payment reference so
	// clients can check a payment before submitting the booking.
	VerifyPayment(ctx context.Context, ref string) (*response.PaymentVerificationResponse, error)
}

type paymentService struct {
	gateway payment.Gateway
	log     *zap.Logger
}

func NewPaymentService(gateway payment.Gateway, log *zap.Logger) PaymentService {
	return &paymentService{
		gateway: gateway,
		log:     log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) VerifyPayment(ctx context.Context, ref string) (*response.PaymentVerificationResponse, error) {
	confirmation, err := s.gateway.RetrievePayment(ctx, ref)
	if err != nil {
		return nil, err
	}

	s.log.Info("Payment verified",
		zap.String("payment_ref", ref),
		zap.String("payment_status", confirmation.Status),
	)

	return &response.PaymentVerificationResponse{
		ID:       confirmation.ID,
		Status:   confirmation.Status,
		Amount:   confirmation.AmountMinorUnits,
		Currency: confirmation.Currency,
	}, nil
}
