package document

import "errors"

var (
	// ErrContentExceedsPage is returned when a layout draws outside the single page
	ErrContentExceedsPage = errors.New("content exceeds page")

	// ErrUnsupportedText is returned when text uses characters outside the document font
	ErrUnsupportedText = errors.New("unsupported characters")

	// ErrNilRecord is returned when rendering is asked for without data
	ErrNilRecord = errors.New("record is required")

	// ErrMissingPaymentDate is returned when a receipt is rendered for an unpaid record
	ErrMissingPaymentDate = errors.New("payment date is required for a receipt")

	// ErrVerificationFailed is returned when a rendered artifact does not carry the expected text
	ErrVerificationFailed = errors.New("artifact verification failed")
)
