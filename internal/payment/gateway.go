package payment

import (
	"context"
	"errors"
	"fmt"
)

// StatusSucceeded is the only confirmation status that allows a booking
// to be created. Gateways report various non-success states
// (requires_payment_method, processing, canceled, ...); none of them pass.
const StatusSucceeded = "succeeded"

// Confirmation is the verification result for an externally captured
// payment. Amounts are integer minor-currency units (cents) so monetary
// comparisons never go through floating point.
type Confirmation struct {
	ID               string
	Status           string
	AmountMinorUnits int64
	Currency         string
}

// Succeeded reports whether the payment completed.
func (c *Confirmation) Succeeded() bool {
	return c.Status == StatusSucceeded
}

// Gateway retrieves payment confirmations. It never creates, captures or
// refunds anything.
type Gateway interface {
	RetrievePayment(ctx context.Context, ref string) (*Confirmation, error)
}

// ErrPaymentNotFound means the gateway cannot locate the payment reference.
var ErrPaymentNotFound = errors.New("payment not found")

// GatewayError wraps transport-level failures (timeouts, 5xx responses).
// Callers may retry; it is never treated as success.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
