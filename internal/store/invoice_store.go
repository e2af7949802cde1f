package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/internal/storage"
	"go.uber.org/zap"
)

// InvoiceColumns is the fixed column order of the invoice table
var InvoiceColumns = []string{
	"invoice_number",
	"bill_to_party_name",
	"bill_to_party_email",
	"bill_to_party_address_1",
	"bill_to_party_address_2",
	"bill_to_party_trn",
	"tenant_name",
	"invoice_date",
	"property_name",
	"rental_price",
	"commission_rate",
	"tax_amount",
	"total_amount",
	"status",
	"payment_date",
	"terms",
	"vat_rate",
	"created_at",
	"updated_at",
}

// InvoiceStore persists invoice records keyed by invoice number
type InvoiceStore struct {
	table  *Table
	now    func() time.Time
	logger *zap.Logger
}

// NewInvoiceStore creates an InvoiceStore backed by path in the given format
func NewInvoiceStore(path, format string, files storage.FileStorage, logger *zap.Logger) (*InvoiceStore, error) {
	codec, err := NewCodec(format)
	if err != nil {
		return nil, err
	}

	s := &InvoiceStore{
		table:  NewTable(path, InvoiceColumns, codec, files, logger),
		now:    time.Now,
		logger: logger,
	}
	if err := s.table.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path
func (s *InvoiceStore) Path() string {
	return s.table.Path()
}

// FindByInvoiceNumber returns the stored record or ErrRecordNotFound
func (s *InvoiceStore) FindByInvoiceNumber(number string) (*entity.Record, error) {
	rows, err := s.table.ReadAll()
	if err != nil {
		return nil, err
	}

	number = strings.TrimSpace(number)
	for _, row := range rows {
		if row["invoice_number"] == number {
			return rowToRecord(row)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, number)
}

// ListAll returns every record in file order
func (s *InvoiceStore) ListAll() ([]*entity.Record, error) {
	return s.Search("")
}

// Search returns records with any field containing term, case-insensitively.
// An empty term returns everything.
func (s *InvoiceStore) Search(term string) ([]*entity.Record, error) {
	rows, err := s.table.ReadAll()
	if err != nil {
		return nil, err
	}

	records := make([]*entity.Record, 0, len(rows))
	for _, row := range rows {
		if !row.matches(term) {
			continue
		}
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Upsert overwrites the row with the same invoice number or appends a new
// one. CreatedAt of an existing row is kept and UpdatedAt is stamped. The
// caller's record is never modified; the persisted copy is returned.
func (s *InvoiceStore) Upsert(rec *entity.Record) (*entity.Record, error) {
	if rec == nil || strings.TrimSpace(rec.InvoiceNumber) == "" {
		return nil, fmt.Errorf("%w: invoice number is required", ErrInvalidRecord)
	}

	rows, err := s.table.ReadAll()
	if err != nil {
		return nil, err
	}

	saved := rec.Clone()
	saved.InvoiceNumber = strings.TrimSpace(saved.InvoiceNumber)
	if saved.Status == "" {
		saved.Status = entity.StatusPending
	}
	now := s.now().UTC().Truncate(time.Second)

	idx := -1
	for i, row := range rows {
		if row["invoice_number"] == saved.InvoiceNumber {
			idx = i
			break
		}
	}

	if idx >= 0 {
		existing, err := rowToRecord(rows[idx])
		if err != nil {
			return nil, err
		}
		saved.CreatedAt = existing.CreatedAt
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = now
	}
	saved.CreatedAt = saved.CreatedAt.UTC().Truncate(time.Second)
	saved.UpdatedAt = now

	row := recordToRow(saved)
	if idx >= 0 {
		rows[idx] = row
	} else {
		rows = append(rows, row)
	}

	if err := s.table.WriteAll(rows); err != nil {
		return nil, err
	}

	s.logger.Info("Invoice record saved",
		zap.String("invoice_number", saved.InvoiceNumber),
		zap.String("status", saved.Status.String()),
		zap.Bool("updated", idx >= 0))
	return saved, nil
}

// UpdateStatus sets the status of a stored record. paymentDate is only
// written when non-empty.
func (s *InvoiceStore) UpdateStatus(number string, status entity.RecordStatus, paymentDate string) (*entity.Record, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRecord, status)
	}

	rec, err := s.FindByInvoiceNumber(number)
	if err != nil {
		return nil, err
	}
	rec.Status = status
	if paymentDate != "" {
		rec.PaymentDate = paymentDate
	}
	return s.Upsert(rec)
}

// Stats counts records per status
func (s *InvoiceStore) Stats() (map[entity.RecordStatus]int, error) {
	records, err := s.ListAll()
	if err != nil {
		return nil, err
	}
	stats := make(map[entity.RecordStatus]int)
	for _, r := range records {
		stats[r.Status]++
	}
	return stats, nil
}

// SortByInvoiceNumber orders records by invoice number
func SortByInvoiceNumber(records []*entity.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].InvoiceNumber < records[j].InvoiceNumber
	})
}

func recordToRow(r *entity.Record) Row {
	return Row{
		"invoice_number":          r.InvoiceNumber,
		"bill_to_party_name":      r.BillToName,
		"bill_to_party_email":     r.BillToEmail,
		"bill_to_party_address_1": r.BillToAddress1,
		"bill_to_party_address_2": r.BillToAddress2,
		"bill_to_party_trn":       r.BillToTRN,
		"tenant_name":             r.TenantName,
		"invoice_date":            r.InvoiceDate,
		"property_name":           r.PropertyName,
		"rental_price":            r.RentalPrice.StringFixed(2),
		"commission_rate":         r.CommissionRate.StringFixed(2),
		"tax_amount":              r.TaxAmount.StringFixed(2),
		"total_amount":            r.TotalAmount.StringFixed(2),
		"status":                  r.Status.String(),
		"payment_date":            r.PaymentDate,
		"terms":                   r.Terms,
		"vat_rate":                r.VATRate.String(),
		"created_at":              formatTime(r.CreatedAt),
		"updated_at":              formatTime(r.UpdatedAt),
	}
}

func rowToRecord(row Row) (*entity.Record, error) {
	r := &entity.Record{
		InvoiceNumber:  row["invoice_number"],
		BillToName:     row["bill_to_party_name"],
		BillToEmail:    row["bill_to_party_email"],
		BillToAddress1: row["bill_to_party_address_1"],
		BillToAddress2: row["bill_to_party_address_2"],
		BillToTRN:      row["bill_to_party_trn"],
		TenantName:     row["tenant_name"],
		InvoiceDate:    row["invoice_date"],
		PropertyName:   row["property_name"],
		Status:         entity.RecordStatus(row["status"]),
		PaymentDate:    row["payment_date"],
		Terms:          row["terms"],
	}

	var err error
	amounts := []struct {
		column string
		dst    *decimal.Decimal
	}{
		{"rental_price", &r.RentalPrice},
		{"commission_rate", &r.CommissionRate},
		{"tax_amount", &r.TaxAmount},
		{"total_amount", &r.TotalAmount},
		{"vat_rate", &r.VATRate},
	}
	for _, a := range amounts {
		if *a.dst, err = parseDecimal(row[a.column]); err != nil {
			return nil, fmt.Errorf("invoice %s: invalid %s: %w", r.InvoiceNumber, a.column, err)
		}
	}

	if r.CreatedAt, err = parseTime(row["created_at"]); err != nil {
		return nil, fmt.Errorf("invoice %s: invalid created_at: %w", r.InvoiceNumber, err)
	}
	if r.UpdatedAt, err = parseTime(row["updated_at"]); err != nil {
		return nil, fmt.Errorf("invoice %s: invalid updated_at: %w", r.InvoiceNumber, err)
	}
	return r, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "none":
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

// Timestamps are written as RFC 3339; plain "YYYY-MM-DD HH:MM:SS" rows are accepted on read.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "nat") {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
