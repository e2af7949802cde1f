package service

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidPaymentDate is returned when a payment date is not YYYY-MM-DD
	ErrInvalidPaymentDate = errors.New("payment date must be in YYYY-MM-DD format")

	// ErrInvalidStatus is returned for an unknown status value
	ErrInvalidStatus = errors.New("invalid status")

	// ErrRecordRejected is returned when payment is recorded against a rejected invoice
	ErrRecordRejected = errors.New("invoice has been rejected")
)

// ValidationError carries every rule violation found for a submission
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}
