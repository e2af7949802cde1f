package notification

import (
	"context"
	"database/sql"
	"time"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"go.uber.org/zap"
)

// DeliveryRecorder persists delivery attempts
type DeliveryRecorder interface {
	Create(tx *sql.Tx, d *entity.Delivery) error
}

// LoggingNotifier records every attempt of the wrapped notifier. Recording
// failures are logged and never change the send result.
type LoggingNotifier struct {
	next     Notifier
	channel  string
	recorder DeliveryRecorder
	now      func() time.Time
	logger   *zap.Logger
}

// NewLoggingNotifier wraps next
func NewLoggingNotifier(next Notifier, channel string, recorder DeliveryRecorder, logger *zap.Logger) *LoggingNotifier {
	return &LoggingNotifier{
		next:     next,
		channel:  channel,
		recorder: recorder,
		now:      time.Now,
		logger:   logger,
	}
}

// Send implements Notifier
func (n *LoggingNotifier) Send(ctx context.Context, recipient string, rec *entity.Record, artifactPath string) (bool, error) {
	sent, err := n.next.Send(ctx, recipient, rec, artifactPath)

	d := &entity.Delivery{
		Recipient:    recipient,
		Channel:      n.channel,
		ArtifactPath: artifactPath,
		AttemptedAt:  n.now(),
	}
	if rec != nil {
		d.InvoiceNumber = rec.InvoiceNumber
	}
	switch {
	case err != nil:
		d.Status = entity.DeliveryStatusError
		d.ErrorMessage = err.Error()
	case sent:
		d.Status = entity.DeliveryStatusSent
	default:
		d.Status = entity.DeliveryStatusFailed
		d.ErrorMessage = "delivery not accepted"
	}

	if recErr := n.recorder.Create(nil, d); recErr != nil {
		n.logger.Error("Failed to record delivery attempt",
			zap.String("invoice_number", d.InvoiceNumber),
			zap.String("status", d.Status),
			zap.Error(recErr))
	}

	return sent, err
}
