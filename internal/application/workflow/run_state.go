package workflow

import (
	"time"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	domainwf "github.com/vreb/brokerage-workflow/internal/domain/workflow"
)

// ValidationStatus is the outcome of the validate stage
type ValidationStatus struct {
	IsValid     bool      `json:"is_valid"`
	Errors      []string  `json:"errors,omitempty"`
	ValidatedAt time.Time `json:"validated_at"`
}

// GenerationStatus is the outcome of the generate stage
type GenerationStatus struct {
	IsGenerated bool      `json:"is_generated"`
	GeneratedAt time.Time `json:"generated_at"`
	FilePath    string    `json:"file_path"`
}

// NotificationStatus is the outcome of the notify stage
type NotificationStatus struct {
	IsSent    bool      `json:"is_sent"`
	SentAt    time.Time `json:"sent_at"`
	Recipient string    `json:"recipient"`
}

// RunState carries one record through a single pipeline run. Once Error is
// set no further stage executes.
type RunState struct {
	ID           string              `json:"id"`
	Record       *entity.Record      `json:"record"`
	Validation   *ValidationStatus   `json:"validation_status,omitempty"`
	Generation   *GenerationStatus   `json:"invoice_creation_status,omitempty"`
	Notification *NotificationStatus `json:"email_notification_status,omitempty"`
	Error        string              `json:"error,omitempty"`
	Completed    bool                `json:"completed"`
	State        domainwf.State      `json:"state"`
	Path         []domainwf.State    `json:"path"`
}

// Failed reports whether the run stopped on a stage error
func (rs *RunState) Failed() bool {
	return rs.Error != ""
}
