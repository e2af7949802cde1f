package notification

import (
	"context"
	"errors"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"go.uber.org/zap"
)

var (
	// ErrNoRecipient is returned when Send is called without a recipient
	ErrNoRecipient = errors.New("recipient is required")

	// ErrNilRecord is returned when Send is called without a record
	ErrNilRecord = errors.New("record is required")
)

// Notifier delivers a generated document to a recipient.
//
// A delivery that was attempted but not accepted (authentication refused,
// recipient rejected, API error code) returns false with a nil error. A
// non-nil error means the channel itself could not be reached.
type Notifier interface {
	Send(ctx context.Context, recipient string, rec *entity.Record, artifactPath string) (bool, error)
}

// DryRunNotifier logs instead of sending. Every send reports not delivered.
type DryRunNotifier struct {
	logger *zap.Logger
}

// NewDryRunNotifier creates a DryRunNotifier
func NewDryRunNotifier(logger *zap.Logger) *DryRunNotifier {
	return &DryRunNotifier{logger: logger}
}

// Send implements Notifier
func (n *DryRunNotifier) Send(ctx context.Context, recipient string, rec *entity.Record, artifactPath string) (bool, error) {
	if rec == nil {
		return false, ErrNilRecord
	}
	n.logger.Info("Notification disabled, skipping send",
		zap.String("invoice_number", rec.InvoiceNumber),
		zap.String("recipient", recipient),
		zap.String("artifact", artifactPath))
	return false, nil
}
