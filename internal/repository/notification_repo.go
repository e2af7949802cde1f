package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"go.uber.org/zap"
)

// NotificationRepository records notification delivery attempts
type NotificationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a delivery attempt and sets its ID
func (r *NotificationRepository) Create(tx *sql.Tx, d *entity.Delivery) error {
	query := `
		INSERT INTO notification_deliveries (
			invoice_number, recipient, channel, artifact_path,
			status, error_message, attempted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if d.AttemptedAt.IsZero() {
		d.AttemptedAt = time.Now()
	}

	var errorMsg interface{}
	if d.ErrorMessage != "" {
		errorMsg = d.ErrorMessage
	}

	args := []interface{}{
		d.InvoiceNumber,
		d.Recipient,
		d.Channel,
		d.ArtifactPath,
		d.Status,
		errorMsg,
		d.AttemptedAt.UTC(),
	}

	var result sql.Result
	var err error
	if tx != nil {
		result, err = tx.Exec(query, args...)
	} else {
		result, err = r.db.Exec(query, args...)
	}

	if err != nil {
		r.logger.Error("Failed to record delivery",
			zap.String("invoice_number", d.InvoiceNumber),
			zap.Error(err))
		return fmt.Errorf("failed to create delivery: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	d.ID = id
	return nil
}

// GetByInvoiceNumber returns every attempt for an invoice, oldest first
func (r *NotificationRepository) GetByInvoiceNumber(invoiceNumber string) ([]*entity.Delivery, error) {
	query := `
		SELECT id, invoice_number, recipient, channel, artifact_path,
			status, error_message, attempted_at
		FROM notification_deliveries
		WHERE invoice_number = ?
		ORDER BY attempted_at ASC, id ASC
	`

	rows, err := r.db.Query(query, invoiceNumber)
	if err != nil {
		r.logger.Error("Failed to query deliveries",
			zap.String("invoice_number", invoiceNumber),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get deliveries: %w", err)
	}
	defer rows.Close()

	return scanDeliveries(rows)
}

// GetRecent returns the latest attempts across all invoices, newest first
func (r *NotificationRepository) GetRecent(limit int) ([]*entity.Delivery, error) {
	query := `
		SELECT id, invoice_number, recipient, channel, artifact_path,
			status, error_message, attempted_at
		FROM notification_deliveries
		ORDER BY attempted_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		r.logger.Error("Failed to query recent deliveries", zap.Error(err))
		return nil, fmt.Errorf("failed to get recent deliveries: %w", err)
	}
	defer rows.Close()

	return scanDeliveries(rows)
}

// CountByStatus counts attempts per delivery status
func (r *NotificationRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM notification_deliveries GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count deliveries: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func scanDeliveries(rows *sql.Rows) ([]*entity.Delivery, error) {
	var deliveries []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		var errorMsg sql.NullString

		err := rows.Scan(
			&d.ID,
			&d.InvoiceNumber,
			&d.Recipient,
			&d.Channel,
			&d.ArtifactPath,
			&d.Status,
			&errorMsg,
			&d.AttemptedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}

		if errorMsg.Valid {
			d.ErrorMessage = errorMsg.String
		}
		deliveries = append(deliveries, &d)
	}
	return deliveries, rows.Err()
}
