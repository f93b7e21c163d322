package payment_controller

import "errors"

var (
	ErrAlreadyConfirmed    = errors.New("booking is already confirmed")
	ErrMissingPaymentProof = errors.New("payment proof is required")
	ErrInvalidPaymentProof = errors.New("payment signature verification failed")
)
