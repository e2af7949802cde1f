package document

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/internal/storage"
	"go.uber.org/zap"
)

// ArtifactVerifier checks a rendered invoice after it has been written
type ArtifactVerifier interface {
	VerifyInvoice(path string, rec *entity.Record, profile entity.Profile) error
}

// Renderer draws coordinate-based documents and writes them atomically
// into the artifact folders
type Renderer struct {
	files    storage.FileStorage
	folders  *storage.FolderManager
	verifier ArtifactVerifier
	now      func() time.Time
	logger   *zap.Logger
}

// NewRenderer creates a Renderer. verifier may be nil to skip the post-write check.
func NewRenderer(files storage.FileStorage, folders *storage.FolderManager, verifier ArtifactVerifier, logger *zap.Logger) *Renderer {
	return &Renderer{
		files:    files,
		folders:  folders,
		verifier: verifier,
		now:      time.Now,
		logger:   logger,
	}
}

// RenderInvoice writes <output>/invoices/<invoice number>.pdf and returns its path
func (r *Renderer) RenderInvoice(rec *entity.Record, profile entity.Profile) (string, error) {
	if rec == nil {
		return "", ErrNilRecord
	}

	path, err := r.folders.ArtifactPath(storage.KindInvoice, rec.InvoiceNumber)
	if err != nil {
		return "", fmt.Errorf("failed to resolve invoice path: %w", err)
	}

	c := NewCanvas(r.now())
	drawInvoice(c, rec, profile)
	if err := r.write(path, c); err != nil {
		r.logger.Error("Failed to render invoice",
			zap.String("invoice_number", rec.InvoiceNumber),
			zap.Error(err))
		return "", err
	}

	if r.verifier != nil {
		if err := r.verifier.VerifyInvoice(path, rec, profile); err != nil {
			_ = os.Remove(path)
			r.logger.Error("Rendered invoice failed verification",
				zap.String("invoice_number", rec.InvoiceNumber),
				zap.String("path", path),
				zap.Error(err))
			return "", err
		}
	}

	r.logger.Info("Invoice rendered",
		zap.String("invoice_number", rec.InvoiceNumber),
		zap.String("path", path))
	return path, nil
}

// RenderApplication writes <output>/kyc_applications/kyc_application_<customer id>.pdf
func (r *Renderer) RenderApplication(app *entity.KYCApplication, profile entity.Profile) (string, error) {
	if app == nil {
		return "", ErrNilRecord
	}

	path, err := r.folders.ArtifactPath(storage.KindKYCApplication, "kyc_application_"+app.CustomerID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve application path: %w", err)
	}

	now := r.now()
	c := NewCanvas(now)
	drawApplication(c, app, profile, now.Format(displayDateLayout))
	if err := r.write(path, c); err != nil {
		r.logger.Error("Failed to render KYC application",
			zap.String("customer_id", app.CustomerID),
			zap.Error(err))
		return "", err
	}

	r.logger.Info("KYC application rendered",
		zap.String("customer_id", app.CustomerID),
		zap.String("path", path))
	return path, nil
}

func (r *Renderer) write(path string, c *Canvas) error {
	if err := c.Err(); err != nil {
		return fmt.Errorf("failed to lay out document: %w", err)
	}
	return r.files.WriteAtomic(path, storage.FileTypePDF, func(w io.Writer) error {
		return c.Output(w)
	})
}
