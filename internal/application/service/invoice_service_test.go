package service

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vreb/brokerage-workflow/internal/application/workflow"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	domainwf "github.com/vreb/brokerage-workflow/internal/domain/workflow"
	"github.com/vreb/brokerage-workflow/internal/storage"
	"github.com/vreb/brokerage-workflow/internal/store"
	"github.com/vreb/brokerage-workflow/internal/validator"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Mock implementations

type mockEngine struct {
	runFunc func(ctx context.Context, rec *entity.Record) *workflow.RunState
}

func (m *mockEngine) Run(ctx context.Context, rec *entity.Record) *workflow.RunState {
	return m.runFunc(ctx, rec)
}

type mockReceiptRenderer struct {
	rendered []*entity.Record
	err      error
}

func (m *mockReceiptRenderer) RenderReceipt(rec *entity.Record, profile entity.Profile) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.rendered = append(m.rendered, rec)
	return "/out/receipts/receipt_" + rec.InvoiceNumber + ".pdf", nil
}

func generatedRun(ctx context.Context, rec *entity.Record) *workflow.RunState {
	out := rec.Clone()
	out.Status = entity.StatusGenerated
	return &workflow.RunState{
		ID:         "run-1",
		Record:     out,
		Generation: &workflow.GenerationStatus{IsGenerated: true, FilePath: "/out/invoices/" + rec.InvoiceNumber + ".pdf"},
		State:      domainwf.StateDone,
		Completed:  true,
	}
}

func newInvoiceStore(t *testing.T) *store.InvoiceStore {
	t.Helper()
	dir := t.TempDir()
	s, err := store.NewInvoiceStore(
		filepath.Join(dir, "invoice_records.csv"),
		store.FormatCSV,
		storage.NewLocalFileStorage(dir, zap.NewNop()),
		zap.NewNop(),
	)
	require.NoError(t, err)
	return s
}

func newTestInvoiceService(t *testing.T, engine workflow.WorkflowEngine, receipts *mockReceiptRenderer) (*invoiceServiceImpl, *store.InvoiceStore) {
	t.Helper()
	s := newInvoiceStore(t)
	svc := NewInvoiceService(s, engine, validator.NewRecordValidator("VREB"), receipts, entity.DefaultProfile(), zap.NewNop()).(*invoiceServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC) }
	return svc, s
}

func submission(number string) *entity.Record {
	return &entity.Record{
		InvoiceNumber:  number,
		BillToName:     "Acme Holdings LLC",
		BillToEmail:    "accounts@acme.ae",
		BillToAddress1: "Unit 4, Marina Plaza",
		BillToAddress2: "Dubai Marina, Dubai",
		BillToTRN:      "100200300400500",
		TenantName:     "John Smith",
		PropertyName:   "Palm Villa 12",
		RentalPrice:    decimal.RequireFromString("120000"),
		CommissionRate: decimal.RequireFromString("1000.00"),
	}
}

func TestInvoiceService_Submit(t *testing.T) {
	svc, s := newTestInvoiceService(t, &mockEngine{runFunc: generatedRun}, &mockReceiptRenderer{})

	saved, err := svc.Submit(submission("VREB1234"))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, saved.Status)
	assert.Equal(t, "2024-04-02", saved.InvoiceDate)
	assert.Equal(t, "Due on Receipt", saved.Terms)
	assert.True(t, decimal.RequireFromString("50").Equal(saved.TaxAmount))
	assert.True(t, decimal.RequireFromString("1050").Equal(saved.TotalAmount))

	stored, err := s.FindByInvoiceNumber("VREB1234")
	require.NoError(t, err)
	assert.True(t, saved.TotalAmount.Equal(stored.TotalAmount))
}

func TestInvoiceService_Submit_SanitizesText(t *testing.T) {
	svc, s := newTestInvoiceService(t, &mockEngine{runFunc: generatedRun}, &mockReceiptRenderer{})

	rec := submission(" VREB1234\n")
	rec.BillToName = "  Acme\x00 Holdings\t"
	original := rec.BillToName

	saved, err := svc.Submit(rec)
	require.NoError(t, err)
	assert.Equal(t, "VREB1234", saved.InvoiceNumber)
	assert.Equal(t, "Acme Holdings", saved.BillToName)
	assert.Equal(t, original, rec.BillToName, "caller's record must not change")

	stored, err := s.FindByInvoiceNumber("VREB1234")
	require.NoError(t, err)
	assert.Equal(t, "Acme Holdings", stored.BillToName)
}

func TestInvoiceService_Submit_ValidationError(t *testing.T) {
	svc, s := newTestInvoiceService(t, &mockEngine{runFunc: generatedRun}, &mockReceiptRenderer{})

	rec := submission("VREB1")
	rec.TenantName = ""
	_, err := svc.Submit(rec)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "Tenant Name is required")
	assert.Contains(t, vErr.Errors, "Invoice number must be in format 'VREB####'")

	all, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInvoiceService_Generate_SavesGeneratedRecord(t *testing.T) {
	svc, s := newTestInvoiceService(t, &mockEngine{runFunc: generatedRun}, &mockReceiptRenderer{})
	_, err := svc.Submit(submission("VREB1234"))
	require.NoError(t, err)

	rs, err := svc.Generate(context.Background(), "VREB1234")
	require.NoError(t, err)
	assert.True(t, rs.Completed)
	assert.Equal(t, entity.StatusGenerated, rs.Record.Status)

	stored, err := s.FindByInvoiceNumber("VREB1234")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusGenerated, stored.Status)
}

func TestInvoiceService_Generate_FailedRunLeavesStoreUntouched(t *testing.T) {
	engine := &mockEngine{
		runFunc: func(ctx context.Context, rec *entity.Record) *workflow.RunState {
			return &workflow.RunState{
				Record: rec.Clone(),
				Error:  "Invoice generation failed: content exceeds page bounds",
				State:  domainwf.StateFailed,
			}
		},
	}
	svc, s := newTestInvoiceService(t, engine, &mockReceiptRenderer{})
	_, err := svc.Submit(submission("VREB1234"))
	require.NoError(t, err)

	rs, err := svc.Generate(context.Background(), "VREB1234")
	require.NoError(t, err)
	assert.False(t, rs.Completed)
	assert.NotEmpty(t, rs.Error)

	stored, err := s.FindByInvoiceNumber("VREB1234")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, stored.Status)
}

func TestInvoiceService_Generate_NotFound(t *testing.T) {
	svc, _ := newTestInvoiceService(t, &mockEngine{runFunc: generatedRun}, &mockReceiptRenderer{})

	_, err := svc.Generate(context.Background(), "VREB9999")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestInvoiceService_RecordPayment(t *testing.T) {
	receipts := &mockReceiptRenderer{}
	svc, s := newTestInvoiceService(t, &mockEngine{runFunc: generatedRun}, receipts)
	_, err := svc.Submit(submission("VREB1234"))
	require.NoError(t, err)

	rec, path, err := svc.RecordPayment("VREB1234", "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, rec.Status)
	assert.Equal(t, "2024-04-02", rec.PaymentDate)
	assert.Equal(t, "/out/receipts/receipt_VREB1234.pdf", path)
	require.Len(t, receipts.rendered, 1)

	stored, err := s.FindByInvoiceNumber("VREB1234")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, stored.Status)
	assert.Equal(t, "2024-04-02", stored.PaymentDate)
}

func TestInvoiceService_RecordPayment_Errors(t *testing.T) {
	svc, _ := newTestInvoiceService(t, &mockEngine{runFunc: generatedRun}, &mockReceiptRenderer{})
	_, err := svc.Submit(submission("VREB1234"))
	require.NoError(t, err)

	_, _, err = svc.RecordPayment("VREB1234", "02/04/2024")
	assert.ErrorIs(t, err, ErrInvalidPaymentDate)

	_, err = svc.SetStatus("VREB1234", entity.StatusRejected)
	require.NoError(t, err)
	_, _, err = svc.RecordPayment("VREB1234", "2024-04-02")
	assert.ErrorIs(t, err, ErrRecordRejected)
}

func TestInvoiceService_RecordPayment_ReceiptFailure(t *testing.T) {
	svc, _ := newTestInvoiceService(t, &mockEngine{runFunc: generatedRun}, &mockReceiptRenderer{err: errors.New("disk full")})
	_, err := svc.Submit(submission("VREB1234"))
	require.NoError(t, err)

	rec, path, err := svc.RecordPayment("VREB1234", "2024-04-01")
	require.Error(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, entity.StatusCompleted, rec.Status)
	assert.Empty(t, path)
}

func TestInvoiceService_SetStatus_Invalid(t *testing.T) {
	svc, _ := newTestInvoiceService(t, &mockEngine{runFunc: generatedRun}, &mockReceiptRenderer{})

	_, err := svc.SetStatus("VREB1234", entity.RecordStatus("Archived"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestInvoiceService_ListAndExport(t *testing.T) {
	svc, _ := newTestInvoiceService(t, &mockEngine{runFunc: generatedRun}, &mockReceiptRenderer{})
	for _, n := range []string{"VREB0003", "VREB0001", "VREB0002"} {
		_, err := svc.Submit(submission(n))
		require.NoError(t, err)
	}

	records, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "VREB0001", records[0].InvoiceNumber)
	assert.Equal(t, "VREB0003", records[2].InvoiceNumber)

	matched, err := svc.List("vreb0002")
	require.NoError(t, err)
	require.Len(t, matched, 1)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats[entity.StatusPending])

	var buf bytes.Buffer
	require.NoError(t, svc.Export(&buf))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(rows), 4)
}
