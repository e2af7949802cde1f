package port

import (
	"database/sql"
	"time"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
)

// InvoiceRepository defines persistence operations for invoice records
type InvoiceRepository interface {
	FindByInvoiceNumber(number string) (*entity.Record, error)
	ListAll() ([]*entity.Record, error)
	Search(term string) ([]*entity.Record, error)
	Upsert(rec *entity.Record) (*entity.Record, error)
	UpdateStatus(number string, status entity.RecordStatus, paymentDate string) (*entity.Record, error)
	Stats() (map[entity.RecordStatus]int, error)
}

// KYCRepository defines persistence operations for KYC applications
type KYCRepository interface {
	NextCustomerID(now time.Time) (string, error)
	FindByCustomerID(id string) (*entity.KYCApplication, error)
	ListAll() ([]*entity.KYCApplication, error)
	Search(term string) ([]*entity.KYCApplication, error)
	Save(app *entity.KYCApplication, update bool) (*entity.KYCApplication, error)
	UpdateStatus(id string, status entity.KYCStatus) (*entity.KYCApplication, error)
}

// DeliveryRepository defines persistence operations for notification attempts
type DeliveryRepository interface {
	Create(tx *sql.Tx, d *entity.Delivery) error
	GetByInvoiceNumber(invoiceNumber string) ([]*entity.Delivery, error)
	GetRecent(limit int) ([]*entity.Delivery, error)
	CountByStatus() (map[string]int, error)
}
