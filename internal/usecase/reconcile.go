package usecase

import (
	"context"
	"math"
	"time"

	"hbnb-booking/internal/data/entity"
	"hbnb-booking/internal/payment"

	"go.uber.org/zap"
)

// Reconciler is the last gate before a booking record is durably
// created: it checks that an externally captured payment matches the
// computed cost of the stay. It only ever reads from the gateway.
type Reconciler struct {
	gateway payment.Gateway
	log     *zap.Logger
}

func NewReconciler(gateway payment.Gateway, log *zap.Logger) *Reconciler {
	return &Reconciler{
		gateway: gateway,
		log:     log.With(zap.String("service", "reconciler")),
	}
}

// Reconcile computes the expected charge in minor currency units and
// validates the payment confirmation against it. On success it returns
// the verified amount in cents.
func (r *Reconciler) Reconcile(ctx context.Context, pricePerNight float64, checkIn, checkOut time.Time, paymentRef string) (int64, error) {
	nights := entity.Nights(checkIn, checkOut)
	if nights <= 0 {
		return 0, &entity.ValidationError{Violations: []string{"booking must be at least 1 night"}}
	}

	expectedCents := int64(math.Round(pricePerNight * float64(nights) * 100))

	confirmation, err := r.gateway.RetrievePayment(ctx, paymentRef)
	if err != nil {
		r.log.Warn("Payment retrieval failed",
			zap.Error(err),
			zap.String("payment_ref", paymentRef),
		)
		return 0, err
	}

	if !confirmation.Succeeded() {
		return 0, &PaymentIncompleteError{Status: confirmation.Status}
	}

	if confirmation.AmountMinorUnits != expectedCents {
		r.log.Warn("Payment amount mismatch",
			zap.String("payment_ref", paymentRef),
			zap.Int64("expected_cents", expectedCents),
			zap.Int64("actual_cents", confirmation.AmountMinorUnits),
		)
		return 0, &AmountMismatchError{
			ExpectedCents: expectedCents,
			ActualCents:   confirmation.AmountMinorUnits,
		}
	}

	r.log.Info("Payment reconciled",
		zap.String("payment_ref", paymentRef),
		zap.Int64("amount_cents", expectedCents),
		zap.Int("nights", nights),
	)

	return expectedCents, nil
}
