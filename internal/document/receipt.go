package document

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/internal/storage"
	"go.uber.org/zap"
)

var paidColor = &props.Color{Red: 0, Green: 128, Blue: 0}

// ReceiptRenderer produces payment receipts for completed invoices
type ReceiptRenderer struct {
	files   storage.FileStorage
	folders *storage.FolderManager
	now     func() time.Time
	logger  *zap.Logger
}

// NewReceiptRenderer creates a ReceiptRenderer
func NewReceiptRenderer(files storage.FileStorage, folders *storage.FolderManager, logger *zap.Logger) *ReceiptRenderer {
	return &ReceiptRenderer{
		files:   files,
		folders: folders,
		now:     time.Now,
		logger:  logger,
	}
}

// RenderReceipt writes <output>/receipts/receipt_<invoice number>.pdf
func (r *ReceiptRenderer) RenderReceipt(rec *entity.Record, profile entity.Profile) (string, error) {
	if rec == nil {
		return "", ErrNilRecord
	}
	if rec.PaymentDate == "" {
		return "", ErrMissingPaymentDate
	}

	path, err := r.folders.ArtifactPath(storage.KindReceipt, "receipt_"+rec.InvoiceNumber)
	if err != nil {
		return "", fmt.Errorf("failed to resolve receipt path: %w", err)
	}

	content, err := r.build(rec, profile)
	if err != nil {
		r.logger.Error("Failed to build receipt",
			zap.String("invoice_number", rec.InvoiceNumber),
			zap.Error(err))
		return "", fmt.Errorf("failed to build receipt: %w", err)
	}

	if err := r.files.SaveFile(path, content); err != nil {
		return "", err
	}

	r.logger.Info("Receipt rendered",
		zap.String("invoice_number", rec.InvoiceNumber),
		zap.String("path", path))
	return path, nil
}

func (r *ReceiptRenderer) build(rec *entity.Record, p entity.Profile) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()

	m := maroto.New(cfg)
	code := p.CurrencyCode
	paidOn := FormatDisplayDate(rec.PaymentDate)

	m.AddRow(20,
		text.NewCol(8, "PAYMENT RECEIPT", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, "PAID", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: paidColor,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Invoice number: #"+rec.InvoiceNumber, props.Text{Top: 0}),
			text.New("Invoice date: "+FormatDisplayDate(rec.InvoiceDate), props.Text{Top: 5}),
			text.New("Date paid: "+paidOn, props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New("Issued: "+r.now().Format(displayDateLayout), props.Text{Align: align.Right}),
		),
	)

	m.AddRow(35,
		col.New(6).Add(
			text.New(p.CompanyName, props.Text{Style: fontstyle.Bold}),
			text.New(p.CompanyAddress, props.Text{Top: 5}),
			text.New(p.CompanyCity, props.Text{Top: 10}),
			text.New(p.CompanyEmail, props.Text{Top: 15}),
			text.New("VAT No: "+p.CompanyVAT, props.Text{Top: 20}),
		),
		col.New(6).Add(
			text.New("Bill To", props.Text{Style: fontstyle.Bold}),
			text.New(rec.BillToName, props.Text{Top: 5}),
			text.New(rec.BillToAddress1, props.Text{Top: 10}),
			text.New(rec.BillToAddress2, props.Text{Top: 15}),
			text.New("TRN: "+rec.BillToTRN, props.Text{Top: 20}),
		),
	)

	m.AddRow(15,
		text.NewCol(12, fmt.Sprintf("%s paid on %s", FormatMoney(rec.TotalAmount, code), paidOn), props.Text{
			Size:  13,
			Style: fontstyle.Bold,
			Top:   4,
		}),
	)

	header := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}
	m.AddRow(10,
		text.NewCol(4, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", header),
		text.NewCol(2, "Rate", header),
		text.NewCol(2, "Tax @"+FormatPercent(p.VATRate), header),
		text.NewCol(2, "Amount", header),
	)
	m.AddRows(line.NewRow(2))

	cell := props.Text{Size: 9, Align: align.Right}
	m.AddRow(20,
		col.New(4).Add(
			text.New("Rent Commission", props.Text{Size: 9}),
			text.New("Villa Name: "+rec.PropertyName, props.Text{Size: 8, Top: 5}),
			text.New("Client Name: "+rec.TenantName, props.Text{Size: 8, Top: 9}),
		),
		text.NewCol(2, "1.00", cell),
		text.NewCol(2, FormatAmount(rec.CommissionRate), cell),
		text.NewCol(2, FormatAmount(rec.TaxAmount), cell),
		text.NewCol(2, FormatAmount(rec.TotalAmount), cell),
	)
	m.AddRows(line.NewRow(2))

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Sub Total", props.Text{Size: 9}),
		text.NewCol(2, FormatAmount(rec.CommissionRate), cell),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, p.VATLabel, props.Text{Size: 9}),
		text.NewCol(2, FormatAmount(rec.TaxAmount), cell),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, FormatMoney(rec.TotalAmount, code), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)

	m.AddRow(15,
		text.NewCol(12, p.FooterNote, props.Text{Size: 9, Top: 8, Align: align.Center}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
