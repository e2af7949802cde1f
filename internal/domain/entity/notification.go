package entity

import "time"

// Delivery is one logged notification attempt for a generated document
type Delivery struct {
	ID            int64     `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	Recipient     string    `json:"recipient"`
	Channel       string    `json:"channel"`
	ArtifactPath  string    `json:"artifact_path"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	AttemptedAt   time.Time `json:"attempted_at"`
}
