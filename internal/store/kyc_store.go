package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/internal/storage"
	"go.uber.org/zap"
)

const customerIDPrefix = "CUST"

// KYCStore persists KYC applications keyed by customer ID
type KYCStore struct {
	table  *Table
	now    func() time.Time
	logger *zap.Logger
}

// NewKYCStore creates a KYCStore backed by path in the given format
func NewKYCStore(path, format string, files storage.FileStorage, logger *zap.Logger) (*KYCStore, error) {
	codec, err := NewCodec(format)
	if err != nil {
		return nil, err
	}

	s := &KYCStore{
		table:  NewTable(path, entity.KYCColumns, codec, files, logger),
		now:    time.Now,
		logger: logger,
	}
	if err := s.table.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// NextCustomerID returns CUST<year><seq> with a 3-digit sequence that
// restarts every year
func (s *KYCStore) NextCustomerID(now time.Time) (string, error) {
	rows, err := s.table.ReadAll()
	if err != nil {
		return "", err
	}
	return nextCustomerID(rows, now), nil
}

func nextCustomerID(rows []Row, now time.Time) string {
	prefix := fmt.Sprintf("%s%d", customerIDPrefix, now.Year())
	last := 0
	for _, row := range rows {
		id := row["customer_id"]
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if seq, err := strconv.Atoi(strings.TrimPrefix(id, prefix)); err == nil && seq > last {
			last = seq
		}
	}
	return fmt.Sprintf("%s%03d", prefix, last+1)
}

// FindByCustomerID returns the stored application or ErrCustomerNotFound
func (s *KYCStore) FindByCustomerID(id string) (*entity.KYCApplication, error) {
	rows, err := s.table.ReadAll()
	if err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	for _, row := range rows {
		if row["customer_id"] == id {
			return rowToApplication(row)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
}

// ListAll returns every application in file order
func (s *KYCStore) ListAll() ([]*entity.KYCApplication, error) {
	return s.Search("")
}

// Search returns applications with any field containing term, case-insensitively
func (s *KYCStore) Search(term string) ([]*entity.KYCApplication, error) {
	rows, err := s.table.ReadAll()
	if err != nil {
		return nil, err
	}
	apps := make([]*entity.KYCApplication, 0, len(rows))
	for _, row := range rows {
		if !row.matches(term) {
			continue
		}
		app, err := rowToApplication(row)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// Save stores an application. With update set the customer ID must already
// exist and its row is overwritten. Otherwise the application is checked for
// duplicates, given the next customer ID and stored as Pending. The caller's
// value is never modified.
func (s *KYCStore) Save(app *entity.KYCApplication, update bool) (*entity.KYCApplication, error) {
	if app == nil {
		return nil, fmt.Errorf("%w: application is required", ErrInvalidRecord)
	}

	rows, err := s.table.ReadAll()
	if err != nil {
		return nil, err
	}

	saved := *app
	now := s.now().UTC().Truncate(time.Second)

	if update {
		idx := -1
		for i, row := range rows {
			if row["customer_id"] == saved.CustomerID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, saved.CustomerID)
		}

		existing, err := rowToApplication(rows[idx])
		if err != nil {
			return nil, err
		}
		saved.CreatedAt = existing.CreatedAt
		if saved.KYCStatus == "" {
			saved.KYCStatus = existing.KYCStatus
		}
		saved.UpdatedAt = now
		rows[idx] = applicationToRow(&saved)
	} else {
		if dup := findDuplicate(rows, &saved); dup != "" {
			return nil, fmt.Errorf("%w: matches customer ID %s", ErrDuplicateCustomer, dup)
		}
		saved.CustomerID = nextCustomerID(rows, now)
		saved.KYCStatus = entity.KYCStatusPending
		saved.CreatedAt = now
		saved.UpdatedAt = now
		rows = append(rows, applicationToRow(&saved))
	}

	if err := s.table.WriteAll(rows); err != nil {
		return nil, err
	}

	s.logger.Info("KYC record saved",
		zap.String("customer_id", saved.CustomerID),
		zap.Bool("updated", update))
	return &saved, nil
}

// UpdateStatus sets the KYC review status of a stored application
func (s *KYCStore) UpdateStatus(id string, status entity.KYCStatus) (*entity.KYCApplication, error) {
	app, err := s.FindByCustomerID(id)
	if err != nil {
		return nil, err
	}
	app.KYCStatus = status
	return s.Save(app, true)
}

// findDuplicate matches full name, date of birth and passport number
// case-insensitively and returns the existing customer ID
func findDuplicate(rows []Row, app *entity.KYCApplication) string {
	name := strings.TrimSpace(app.FullName)
	dob := strings.TrimSpace(app.DateOfBirth)
	passport := strings.TrimSpace(app.PassportNumber)

	for _, row := range rows {
		if strings.EqualFold(strings.TrimSpace(row["full_name"]), name) &&
			strings.EqualFold(strings.TrimSpace(row["date_of_birth"]), dob) &&
			strings.EqualFold(strings.TrimSpace(row["passport_number"]), passport) {
			return row["customer_id"]
		}
	}
	return ""
}

func applicationToRow(app *entity.KYCApplication) Row {
	row := Row(app.Fields())
	row["created_at"] = formatTime(app.CreatedAt)
	row["updated_at"] = formatTime(app.UpdatedAt)
	return row
}

func rowToApplication(row Row) (*entity.KYCApplication, error) {
	app := &entity.KYCApplication{}
	for key, value := range row {
		app.SetField(key, value)
	}

	var err error
	if app.CreatedAt, err = parseTime(row["created_at"]); err != nil {
		return nil, fmt.Errorf("customer %s: invalid created_at: %w", app.CustomerID, err)
	}
	if app.UpdatedAt, err = parseTime(row["updated_at"]); err != nil {
		return nil, fmt.Errorf("customer %s: invalid updated_at: %w", app.CustomerID, err)
	}
	return app, nil
}
