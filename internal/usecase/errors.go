package usecase

import (
	"errors"
	"fmt"
)

// Business-rule errors surfaced by the booking service. All of them are
// synchronous and leave no booking record behind; retry policy, if any,
// belongs to the caller.
var (
	ErrPlaceNotFound   = errors.New("place not found")
	ErrGuestNotFound   = errors.New("guest not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrSelfBooking     = errors.New("you cannot book your own place")
	ErrNotAvailable    = errors.New("place is not available for selected dates")
	ErrUnauthorized    = errors.New("you don't have permission to perform this action")
)

// PaymentIncompleteError means the gateway located the payment but it has
// not succeeded. The status is reported so the client can retry or re-pay.
type PaymentIncompleteError struct {
	Status string
}

func (e *PaymentIncompleteError) Error() string {
	return fmt.Sprintf("payment not completed, status: %s", e.Status)
}

// AmountMismatchError means the confirmed amount differs from the
// computed booking cost. This blocks stale or tampered payment
// references from paying for a different, cheaper booking.
type AmountMismatchError struct {
	ExpectedCents int64
	ActualCents   int64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("payment amount %d does not match booking total %d", e.ActualCents, e.ExpectedCents)
}
