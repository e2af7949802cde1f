package document

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/internal/storage"
	"go.uber.org/zap"
)

func newTestRenderer(t *testing.T, verifier ArtifactVerifier) (*Renderer, string) {
	t.Helper()
	dir := t.TempDir()
	logger := zap.NewNop()
	r := NewRenderer(
		storage.NewLocalFileStorage(dir, logger),
		storage.NewFolderManager(dir, logger),
		verifier,
		logger,
	)
	r.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	return r, dir
}

func sampleRecord() *entity.Record {
	rec := &entity.Record{
		InvoiceNumber:  "VREB1234",
		BillToName:     "Acme Holdings LLC",
		BillToEmail:    "accounts@acme.ae",
		BillToAddress1: "Unit 4, Marina Plaza",
		BillToAddress2: "Dubai Marina, Dubai",
		BillToTRN:      "100200300400500",
		TenantName:     "John Smith",
		InvoiceDate:    "2024-03-15",
		PropertyName:   "Palm Villa 12",
		RentalPrice:    decimal.RequireFromString("120000"),
		CommissionRate: decimal.RequireFromString("1000.00"),
		Status:         entity.StatusPending,
		Terms:          "Due on Receipt",
	}
	rec.ComputeAmounts(decimal.RequireFromString("0.05"))
	return rec
}

func sampleApplication() *entity.KYCApplication {
	return &entity.KYCApplication{
		CustomerID:              "CUST2024001",
		KYCStatus:               entity.KYCStatusPending,
		ResidentialStatus:       "Resident",
		FullName:                "Jane Doe",
		ResidentialAddressLine1: "Villa 7, Street 12",
		ResidentialAddressLine2: "Jumeirah, Dubai",
		HomeAddressLine1:        "12 High Street",
		HomeAddressLine2:        "nan",
		ContactMobile:           "+971500000000",
		Gender:                  "Female",
		Nationality:             "UK",
		DateOfBirth:             "1990-07-04",
		PlaceOfBirth:            "London",
		PassportNumber:          "P1234567",
		PassportIssuePlace:      "London",
		PassportIssueDate:       "2020-01-31",
		PassportExpiryDate:      "2030-01-30",
		EmiratesID:              "784-1990-1234567-1",
		EmiratesIDExpiry:        "2026-05-01",
		VisaUID:                 "12345678",
		VisaExpiry:              "2026-05-01",
		Occupation:              "Engineer",
		SponsorBusinessName:     "Acme Holdings LLC",
		SponsorBusinessAddress:  "Marina Plaza, Dubai",
		SponsorBusinessLandline: "+97140000000",
		SponsorBusinessMobile:   "+971500000001",
		AnnualIncome:            "250000",
		InvestmentPurpose:       "Investment",
		SourceOfFunds:           "Salary",
		PaymentMethod:           "Bank Transfer",
	}
}

func TestRenderer_RenderInvoice(t *testing.T) {
	r, dir := newTestRenderer(t, nil)

	path, err := r.RenderInvoice(sampleRecord(), entity.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invoices", "VREB1234.pdf"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestRenderer_RenderInvoice_Verified(t *testing.T) {
	r, _ := newTestRenderer(t, NewTextVerifier(zap.NewNop()))

	path, err := r.RenderInvoice(sampleRecord(), entity.DefaultProfile())
	require.NoError(t, err)

	txt, err := NewTextVerifier(zap.NewNop()).ExtractText(path)
	require.NoError(t, err)
	assert.Contains(t, txt, "AED 1,050.00/-")
	assert.Contains(t, txt, "TAX INVOICE")
	assert.Contains(t, txt, "Acme Holdings LLC")
}

type failingVerifier struct{}

func (failingVerifier) VerifyInvoice(string, *entity.Record, entity.Profile) error {
	return ErrVerificationFailed
}

func TestRenderer_RenderInvoice_VerificationFailureRemovesArtifact(t *testing.T) {
	r, dir := newTestRenderer(t, failingVerifier{})

	_, err := r.RenderInvoice(sampleRecord(), entity.DefaultProfile())
	require.ErrorIs(t, err, ErrVerificationFailed)
	assert.NoFileExists(t, filepath.Join(dir, "invoices", "VREB1234.pdf"))
}

func TestRenderer_RenderInvoice_Errors(t *testing.T) {
	r, dir := newTestRenderer(t, nil)

	_, err := r.RenderInvoice(nil, entity.DefaultProfile())
	assert.ErrorIs(t, err, ErrNilRecord)

	rec := sampleRecord()
	rec.BillToAddress2 = strings.Repeat("Very long address segment ", 20)
	_, err = r.RenderInvoice(rec, entity.DefaultProfile())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContentExceedsPage))
	assert.NoFileExists(t, filepath.Join(dir, "invoices", "VREB1234.pdf"))

	rec = sampleRecord()
	rec.BillToName = "محمد Al Nahyan"
	_, err = r.RenderInvoice(rec, entity.DefaultProfile())
	assert.ErrorIs(t, err, ErrUnsupportedText)
	assert.NoFileExists(t, filepath.Join(dir, "invoices", "VREB1234.pdf"))
}

func TestRenderer_RenderApplication(t *testing.T) {
	r, dir := newTestRenderer(t, nil)

	path, err := r.RenderApplication(sampleApplication(), entity.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "kyc_applications", "kyc_application_CUST2024001.pdf"), path)

	txt, err := NewTextVerifier(zap.NewNop()).ExtractText(path)
	require.NoError(t, err)
	assert.Contains(t, txt, "KYC APPLICATION")
	assert.Contains(t, txt, "04-07-1990")
	assert.Contains(t, txt, "15-03-2024", "signed-on date is the render date")
}

func TestRenderer_RenderApplication_LongDeclarationOverflows(t *testing.T) {
	r, _ := newTestRenderer(t, nil)
	profile := entity.DefaultProfile()
	profile.DeclarationText = strings.Repeat("I confirm every statement above. ", 60)

	_, err := r.RenderApplication(sampleApplication(), profile)
	assert.ErrorIs(t, err, ErrContentExceedsPage)
}

func TestReceiptRenderer_RenderReceipt(t *testing.T) {
	dir := t.TempDir()
	logger := zap.NewNop()
	r := NewReceiptRenderer(storage.NewLocalFileStorage(dir, logger), storage.NewFolderManager(dir, logger), logger)

	rec := sampleRecord()
	_, err := r.RenderReceipt(rec, entity.DefaultProfile())
	assert.ErrorIs(t, err, ErrMissingPaymentDate)

	rec.PaymentDate = "2024-03-20"
	path, err := r.RenderReceipt(rec, entity.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "receipts", "receipt_VREB1234.pdf"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}
