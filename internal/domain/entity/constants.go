package entity

// RecordStatus is the lifecycle status of an invoice record
type RecordStatus string

// Status constants for Record
const (
	StatusPending   RecordStatus = "Pending"
	StatusGenerated RecordStatus = "Generated"
	StatusCompleted RecordStatus = "Completed"
	StatusRejected  RecordStatus = "Rejected"
)

var validRecordStatuses = map[RecordStatus]bool{
	StatusPending:   true,
	StatusGenerated: true,
	StatusCompleted: true,
	StatusRejected:  true,
}

// IsValid returns true if the status is a known record status
func (s RecordStatus) IsValid() bool {
	return validRecordStatuses[s]
}

// String returns the string representation of the status
func (s RecordStatus) String() string {
	return string(s)
}

// KYCStatus is the review status of a KYC application
type KYCStatus string

// Status constants for KYCApplication
const (
	KYCStatusPending   KYCStatus = "Pending"
	KYCStatusCompleted KYCStatus = "Completed"
	KYCStatusRejected  KYCStatus = "Rejected"
)

// Delivery status constants
const (
	DeliveryStatusSent   = "SENT"
	DeliveryStatusFailed = "FAILED"
	DeliveryStatusError  = "ERROR"
)

// Notification channels
const (
	ChannelSMTP = "smtp"
	ChannelLark = "lark"
)
