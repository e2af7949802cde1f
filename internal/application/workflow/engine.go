package workflow

import (
	"context"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
)

// WorkflowEngine runs a record through validate, generate and notify
type WorkflowEngine interface {
	// Run executes the pipeline once. It never panics and never returns nil;
	// failures are reported through RunState.Error.
	Run(ctx context.Context, rec *entity.Record) *RunState
}

// RecordValidator checks a record and returns every violation found
type RecordValidator interface {
	Validate(rec *entity.Record) []string
}

// InvoiceRenderer renders the tax invoice artifact and returns its path
type InvoiceRenderer interface {
	RenderInvoice(rec *entity.Record, profile entity.Profile) (string, error)
}
