package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("access denied")
	ErrEmailTaken         = errors.New("email already in use")
)

// AmountMismatchError reports a client-claimed total that disagrees with the
// server-computed total for a payment batch.
type AmountMismatchError struct {
	Claimed    float64
	Computed   float64
	Difference float64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("amount mismatch: expected %.2f, got %.2f (difference %.2f)",
		e.Computed, e.Claimed, e.Difference)
}

// GatewayError wraps a failure talking to the payment processor.
type GatewayError struct {
	Operation string
	Err       error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Operation, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
