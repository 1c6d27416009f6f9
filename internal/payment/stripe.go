package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hbnb-booking/pkg/utils"

	"go.uber.org/zap"
)

// StripeGateway verifies payment intents against the Stripe API.
type StripeGateway struct {
	apiBase   string
	secretKey string
	client    *http.Client
	log       *zap.Logger
}

func NewStripeGateway(config utils.PaymentConfig, log *zap.Logger) *StripeGateway {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &StripeGateway{
		apiBase:   config.APIBase,
		secretKey: config.SecretKey,
		client:    &http.Client{Timeout: timeout},
		log:       log.With(zap.String("gateway", "stripe")),
	}
}

type paymentIntentResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// RetrievePayment fetches a payment intent by reference. A bounded
// timeout applies; a timed-out call surfaces as a retryable GatewayError,
// never as success.
func (g *StripeGateway) RetrievePayment(ctx context.Context, ref string) (*Confirmation, error) {
	url := fmt.Sprintf("%s/v1/payment_intents/%s", g.apiBase, ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build payment intent request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error("Payment intent retrieval failed",
			zap.Error(err),
			zap.String("payment_ref", ref),
		)
		return nil, &GatewayError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrPaymentNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		g.log.Error("Payment gateway returned server error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("payment_ref", ref),
		)
		return nil, &GatewayError{Err: fmt.Errorf("gateway responded with status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("retrieve payment %s: unexpected status %d", ref, resp.StatusCode)
	}

	var intent paymentIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode payment intent %s: %w", ref, err)
	}

	return &Confirmation{
		ID:               intent.ID,
		Status:           intent.Status,
		AmountMinorUnits: intent.Amount,
		Currency:         intent.Currency,
	}, nil
}
