package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/internal/lark"
	"go.uber.org/zap"
)

// LarkMessenger is the part of the Lark IM API the notifier needs
type LarkMessenger interface {
	SendText(ctx context.Context, receiveIDType, receiveID, text string) (string, error)
	UploadFile(ctx context.Context, fileName string, file io.Reader) (string, error)
	SendFile(ctx context.Context, receiveIDType, receiveID, fileKey string) (string, error)
}

// LarkNotifier sends the message text followed by the PDF to the
// recipient's Lark account, addressed by email
type LarkNotifier struct {
	api     LarkMessenger
	profile entity.Profile
	logger  *zap.Logger
}

// NewLarkNotifier creates a LarkNotifier
func NewLarkNotifier(api LarkMessenger, profile entity.Profile, logger *zap.Logger) *LarkNotifier {
	return &LarkNotifier{
		api:     api,
		profile: profile,
		logger:  logger,
	}
}

// Send implements Notifier
func (n *LarkNotifier) Send(ctx context.Context, recipient string, rec *entity.Record, artifactPath string) (bool, error) {
	if rec == nil {
		return false, ErrNilRecord
	}
	if recipient == "" {
		return false, ErrNoRecipient
	}

	msg := BuildInvoiceMessage(recipient, rec, n.profile, artifactPath)

	file, err := os.Open(artifactPath)
	if err != nil {
		n.logger.Warn("Failed to open artifact for upload",
			zap.String("invoice_number", rec.InvoiceNumber),
			zap.String("path", artifactPath),
			zap.Error(err))
		return false, nil
	}
	defer file.Close()

	if _, err := n.api.SendText(ctx, lark.ReceiveIDTypeEmail, recipient, msg.Subject+"\n\n"+msg.Body); err != nil {
		return n.classify(rec, "send text", err)
	}

	fileKey, err := n.api.UploadFile(ctx, filepath.Base(artifactPath), file)
	if err != nil {
		return n.classify(rec, "upload", err)
	}

	if _, err := n.api.SendFile(ctx, lark.ReceiveIDTypeEmail, recipient, fileKey); err != nil {
		return n.classify(rec, "send file", err)
	}

	n.logger.Info("Invoice sent via Lark",
		zap.String("invoice_number", rec.InvoiceNumber),
		zap.String("recipient", recipient),
		zap.String("file_key", fileKey))
	return true, nil
}

// classify maps API rejections to a soft failure and anything else to an error
func (n *LarkNotifier) classify(rec *entity.Record, step string, err error) (bool, error) {
	var apiErr *lark.APIError
	if errors.As(err, &apiErr) {
		n.logger.Warn("Lark rejected notification",
			zap.String("invoice_number", rec.InvoiceNumber),
			zap.String("step", step),
			zap.Int("code", apiErr.Code),
			zap.String("msg", apiErr.Msg))
		return false, nil
	}
	return false, fmt.Errorf("lark %s failed: %w", step, err)
}
