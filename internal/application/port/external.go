package port

import "github.com/vreb/brokerage-workflow/internal/domain/entity"

// ApplicationRenderer renders the KYC application form
type ApplicationRenderer interface {
	RenderApplication(app *entity.KYCApplication, profile entity.Profile) (string, error)
}

// ReceiptRenderer renders the payment receipt for a settled invoice
type ReceiptRenderer interface {
	RenderReceipt(rec *entity.Record, profile entity.Profile) (string, error)
}

// KYCValidator checks a KYC application and returns every violation found
type KYCValidator interface {
	Validate(app *entity.KYCApplication) []string
}
