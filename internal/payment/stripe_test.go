package payment_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hbnb-booking/internal/payment"
	"hbnb-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGateway(serverURL string) *payment.StripeGateway {
	return payment.NewStripeGateway(utils.PaymentConfig{
		APIBase:        serverURL,
		SecretKey:      "sk_test_key",
		TimeoutSeconds: 2,
	}, zap.NewNop())
}

func TestRetrievePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeded intent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"pi_123","status":"succeeded","amount":125000,"currency":"usd"}`))
		}))
		defer server.Close()

		confirmation, err := newGateway(server.URL).RetrievePayment(ctx, "pi_123")
		require.NoError(t, err)

		assert.Equal(t, "pi_123", confirmation.ID)
		assert.Equal(t, int64(125000), confirmation.AmountMinorUnits)
		assert.Equal(t, "usd", confirmation.Currency)
		assert.True(t, confirmation.Succeeded())
	})

	t.Run("intent not yet captured", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"pi_123","status":"requires_payment_method","amount":125000,"currency":"usd"}`))
		}))
		defer server.Close()

		confirmation, err := newGateway(server.URL).RetrievePayment(ctx, "pi_123")
		require.NoError(t, err)
		assert.False(t, confirmation.Succeeded())
	})

	t.Run("unknown reference", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newGateway(server.URL).RetrievePayment(ctx, "pi_missing")
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})

	t.Run("gateway outage surfaces as gateway error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := newGateway(server.URL).RetrievePayment(ctx, "pi_123")

		var gatewayErr *payment.GatewayError
		assert.ErrorAs(t, err, &gatewayErr)
	})

	t.Run("unreachable gateway surfaces as gateway error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused from here on

		_, err := newGateway(server.URL).RetrievePayment(ctx, "pi_123")

		var gatewayErr *payment.GatewayError
		assert.ErrorAs(t, err, &gatewayErr)
	})

	t.Run("unexpected client error is not retryable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := newGateway(server.URL).RetrievePayment(ctx, "pi_123")
		require.Error(t, err)

		var gatewayErr *payment.GatewayError
		assert.False(t, errors.As(err, &gatewayErr))
		assert.NotErrorIs(t, err, payment.ErrPaymentNotFound)
	})
}
