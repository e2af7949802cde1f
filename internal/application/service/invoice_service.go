package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/vreb/brokerage-workflow/internal/application/port"
	"github.com/vreb/brokerage-workflow/internal/application/workflow"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/internal/store"
	"github.com/vreb/brokerage-workflow/pkg/utils"
	"go.uber.org/zap"
)

const paymentDateLayout = "2006-01-02"

// InvoiceService is the caller of the pipeline: it reads the record store
// before a run and writes it after
type InvoiceService interface {
	// Submit validates a record, derives its amounts and saves it as Pending
	Submit(rec *entity.Record) (*entity.Record, error)

	// Get returns the stored record
	Get(number string) (*entity.Record, error)

	// List returns records matching term ordered by invoice number
	List(term string) ([]*entity.Record, error)

	// Generate runs the pipeline on the stored record and saves the result
	Generate(ctx context.Context, number string) (*workflow.RunState, error)

	// RecordPayment marks the invoice Completed and renders its receipt
	RecordPayment(number, paymentDate string) (*entity.Record, string, error)

	// SetStatus overwrites the status of a stored record
	SetStatus(number string, status entity.RecordStatus) (*entity.Record, error)

	// Stats counts records per status
	Stats() (map[entity.RecordStatus]int, error)

	// Export writes every record to an XLSX workbook
	Export(w io.Writer) error
}

type invoiceServiceImpl struct {
	// mu serialises store access; the store itself does no locking
	mu        sync.Mutex
	store     port.InvoiceRepository
	engine    workflow.WorkflowEngine
	validator workflow.RecordValidator
	receipts  port.ReceiptRenderer
	profile   entity.Profile
	now       func() time.Time
	logger    *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceStore port.InvoiceRepository,
	engine workflow.WorkflowEngine,
	validator workflow.RecordValidator,
	receipts port.ReceiptRenderer,
	profile entity.Profile,
	logger *zap.Logger,
) InvoiceService {
	return &invoiceServiceImpl{
		store:     invoiceStore,
		engine:    engine,
		validator: validator,
		receipts:  receipts,
		profile:   profile,
		now:       time.Now,
		logger:    logger,
	}
}

// Submit implements InvoiceService
func (s *invoiceServiceImpl) Submit(rec *entity.Record) (*entity.Record, error) {
	pending := rec.Clone()
	sanitizeRecord(pending)

	if errs := s.validator.Validate(pending); len(errs) > 0 {
		s.logger.Info("Invoice submission rejected",
			zap.Strings("errors", errs))
		return nil, &ValidationError{Errors: errs}
	}

	pending.Status = entity.StatusPending
	if pending.Terms == "" {
		pending.Terms = s.profile.Terms
	}
	if pending.InvoiceDate == "" {
		pending.InvoiceDate = s.now().Format(paymentDateLayout)
	}
	pending.ComputeAmounts(s.profile.VATRate)

	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.store.Upsert(pending)
	if err != nil {
		return nil, fmt.Errorf("failed to save invoice %s: %w", pending.InvoiceNumber, err)
	}
	return saved, nil
}

// sanitizeRecord strips control characters and surrounding whitespace from
// the free-text fields before they reach the validator and the store
func sanitizeRecord(rec *entity.Record) {
	if rec == nil {
		return
	}
	for _, field := range []*string{
		&rec.InvoiceNumber,
		&rec.BillToName,
		&rec.BillToEmail,
		&rec.BillToAddress1,
		&rec.BillToAddress2,
		&rec.BillToTRN,
		&rec.TenantName,
		&rec.InvoiceDate,
		&rec.PropertyName,
		&rec.Terms,
	} {
		*field = utils.SanitizeString(*field)
	}
}

// Get implements InvoiceService
func (s *invoiceServiceImpl) Get(number string) (*entity.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.FindByInvoiceNumber(number)
}

// List implements InvoiceService
func (s *invoiceServiceImpl) List(term string) ([]*entity.Record, error) {
	s.mu.Lock()
	records, err := s.store.Search(strings.TrimSpace(term))
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to search invoices: %w", err)
	}

	store.SortByInvoiceNumber(records)
	return records, nil
}

// Generate implements InvoiceService. The record is saved whenever an
// artifact was produced, even if notification failed afterwards.
func (s *invoiceServiceImpl) Generate(ctx context.Context, number string) (*workflow.RunState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.FindByInvoiceNumber(number)
	if err != nil {
		return nil, err
	}

	rs := s.engine.Run(ctx, rec)
	if rs.Generation == nil || !rs.Generation.IsGenerated {
		return rs, nil
	}

	saved, err := s.store.Upsert(rs.Record)
	if err != nil {
		s.logger.Error("Failed to save generated invoice",
			zap.String("invoice_number", rec.InvoiceNumber),
			zap.String("run_id", rs.ID),
			zap.Error(err))
		return rs, fmt.Errorf("failed to save invoice %s after generation: %w", rec.InvoiceNumber, err)
	}
	rs.Record = saved
	return rs, nil
}

// RecordPayment implements InvoiceService. An empty paymentDate means today.
func (s *invoiceServiceImpl) RecordPayment(number, paymentDate string) (*entity.Record, string, error) {
	paymentDate = strings.TrimSpace(paymentDate)
	if paymentDate == "" {
		paymentDate = s.now().Format(paymentDateLayout)
	}
	if _, err := time.Parse(paymentDateLayout, paymentDate); err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidPaymentDate, paymentDate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.FindByInvoiceNumber(number)
	if err != nil {
		return nil, "", err
	}
	if rec.Status == entity.StatusRejected {
		return nil, "", fmt.Errorf("%w: %s", ErrRecordRejected, rec.InvoiceNumber)
	}

	saved, err := s.store.UpdateStatus(rec.InvoiceNumber, entity.StatusCompleted, paymentDate)
	if err != nil {
		return nil, "", fmt.Errorf("failed to record payment for %s: %w", rec.InvoiceNumber, err)
	}

	path, err := s.receipts.RenderReceipt(saved, s.profile)
	if err != nil {
		return saved, "", fmt.Errorf("payment recorded but receipt failed: %w", err)
	}

	s.logger.Info("Payment recorded",
		zap.String("invoice_number", saved.InvoiceNumber),
		zap.String("payment_date", paymentDate),
		zap.String("receipt", path))
	return saved, path, nil
}

// SetStatus implements InvoiceService
func (s *invoiceServiceImpl) SetStatus(number string, status entity.RecordStatus) (*entity.Record, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.UpdateStatus(number, status, "")
}

// Stats implements InvoiceService
func (s *invoiceServiceImpl) Stats() (map[entity.RecordStatus]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Stats()
}

// Export implements InvoiceService
func (s *invoiceServiceImpl) Export(w io.Writer) error {
	records, err := s.List("")
	if err != nil {
		return err
	}
	if err := store.ExportWorkbook(w, records); err != nil {
		return fmt.Errorf("failed to export invoices: %w", err)
	}
	return nil
}
