package document

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"go.uber.org/zap"
)

// TextVerifier reads rendered artifacts back with mupdf and checks that the
// figures a customer relies on made it onto the page
type TextVerifier struct {
	logger *zap.Logger
}

// NewTextVerifier creates a TextVerifier
func NewTextVerifier(logger *zap.Logger) *TextVerifier {
	return &TextVerifier{logger: logger}
}

// ExtractText returns the text of every page joined by newlines
func (v *TextVerifier) ExtractText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		txt, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", page, err)
		}
		sb.WriteString(txt)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// VerifyInvoice checks the invoice number and the balance due total
func (v *TextVerifier) VerifyInvoice(path string, rec *entity.Record, profile entity.Profile) error {
	txt, err := v.ExtractText(path)
	if err != nil {
		return err
	}

	expected := []string{
		"#" + rec.InvoiceNumber,
		FormatMoney(rec.TotalAmount, profile.CurrencyCode),
	}
	for _, want := range expected {
		if !strings.Contains(txt, want) {
			v.logger.Warn("Expected text missing from artifact",
				zap.String("path", path),
				zap.String("expected", want))
			return fmt.Errorf("%w: %q not found in %s", ErrVerificationFailed, want, path)
		}
	}

	v.logger.Debug("Artifact verified", zap.String("path", path))
	return nil
}
