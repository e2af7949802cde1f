package store

import "errors"

var (
	// ErrRecordNotFound is returned when no invoice row carries the requested number
	ErrRecordNotFound = errors.New("record not found")

	// ErrCustomerNotFound is returned when no KYC row carries the requested customer ID
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrDuplicateCustomer is returned when a new KYC record matches an existing
	// customer by name, date of birth and passport number
	ErrDuplicateCustomer = errors.New("duplicate customer record")

	// ErrInvalidHeader is returned when a store file has no usable header row
	ErrInvalidHeader = errors.New("store file has no header row")

	// ErrUnsupportedFormat is returned for an unknown store backend
	ErrUnsupportedFormat = errors.New("unsupported store format")

	// ErrInvalidRecord is returned when a record cannot be stored
	ErrInvalidRecord = errors.New("invalid record")
)
