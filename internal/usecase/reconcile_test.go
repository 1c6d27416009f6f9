package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hbnb-booking/internal/data/entity"
	"hbnb-booking/internal/payment"
	"hbnb-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	confirmations map[string]*payment.Confirmation
	err           error
}

func (g *fakeGateway) RetrievePayment(ctx context.Context, ref string) (*payment.Confirmation, error) {
	if g.err != nil {
		return nil, g.err
	}
	confirmation, ok := g.confirmations[ref]
	if !ok {
		return nil, payment.ErrPaymentNotFound
	}
	return confirmation, nil
}

func date(value string) time.Time {
	t, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	checkIn := date("2025-01-20")
	checkOut := date("2025-01-25") // 5 nights

	t.Run("success", func(t *testing.T) {
		gateway := &fakeGateway{confirmations: map[string]*payment.Confirmation{
			"pi_valid": {ID: "pi_valid", Status: payment.StatusSucceeded, AmountMinorUnits: 125000, Currency: "usd"},
		}}
		reconciler := usecase.NewReconciler(gateway, zap.NewNop())

		amount, err := reconciler.Reconcile(ctx, 250.00, checkIn, checkOut, "pi_valid")
		require.NoError(t, err)
		assert.Equal(t, int64(125000), amount)
	})

	t.Run("amount mismatch", func(t *testing.T) {
		gateway := &fakeGateway{confirmations: map[string]*payment.Confirmation{
			"pi_cheap": {ID: "pi_cheap", Status: payment.StatusSucceeded, AmountMinorUnits: 50000, Currency: "usd"},
		}}
		reconciler := usecase.NewReconciler(gateway, zap.NewNop())

		_, err := reconciler.Reconcile(ctx, 250.00, checkIn, checkOut, "pi_cheap")

		var mismatchErr *usecase.AmountMismatchError
		require.ErrorAs(t, err, &mismatchErr)
		assert.Equal(t, int64(125000), mismatchErr.ExpectedCents)
		assert.Equal(t, int64(50000), mismatchErr.ActualCents)
	})

	t.Run("payment incomplete", func(t *testing.T) {
		gateway := &fakeGateway{confirmations: map[string]*payment.Confirmation{
			"pi_pending": {ID: "pi_pending", Status: "requires_payment_method", AmountMinorUnits: 125000, Currency: "usd"},
		}}
		reconciler := usecase.NewReconciler(gateway, zap.NewNop())

		_, err := reconciler.Reconcile(ctx, 250.00, checkIn, checkOut, "pi_pending")

		var incompleteErr *usecase.PaymentIncompleteError
		require.ErrorAs(t, err, &incompleteErr)
		assert.Equal(t, "requires_payment_method", incompleteErr.Status)
	})

	t.Run("payment not found", func(t *testing.T) {
		gateway := &fakeGateway{confirmations: map[string]*payment.Confirmation{}}
		reconciler := usecase.NewReconciler(gateway, zap.NewNop())

		_, err := reconciler.Reconcile(ctx, 250.00, checkIn, checkOut, "pi_missing")
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})

	t.Run("gateway failure passes through as retryable", func(t *testing.T) {
		gateway := &fakeGateway{err: &payment.GatewayError{Err: errors.New("timeout")}}
		reconciler := usecase.NewReconciler(gateway, zap.NewNop())

		_, err := reconciler.Reconcile(ctx, 250.00, checkIn, checkOut, "pi_any")

		var gatewayErr *payment.GatewayError
		assert.ErrorAs(t, err, &gatewayErr)
	})

	t.Run("invalid range fails before the gateway is consulted", func(t *testing.T) {
		gateway := &fakeGateway{err: errors.New("must not be called")}
		reconciler := usecase.NewReconciler(gateway, zap.NewNop())

		_, err := reconciler.Reconcile(ctx, 250.00, checkOut, checkIn, "pi_any")

		var validationErr *entity.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("fractional rate rounds to whole cents", func(t *testing.T) {
		gateway := &fakeGateway{confirmations: map[string]*payment.Confirmation{
			// 3 nights at 33.33 -> 99.99 -> 9999 cents
			"pi_frac": {ID: "pi_frac", Status: payment.StatusSucceeded, AmountMinorUnits: 9999, Currency: "usd"},
		}}
		reconciler := usecase.NewReconciler(gateway, zap.NewNop())

		amount, err := reconciler.Reconcile(ctx, 33.33, date("2025-01-20"), date("2025-01-23"), "pi_frac")
		require.NoError(t, err)
		assert.Equal(t, int64(9999), amount)
	})
}
