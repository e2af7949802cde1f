package workflow

import (
	"context"

	domainwf "github.com/vreb/brokerage-workflow/internal/domain/workflow"
	"go.uber.org/zap"
)

// BuildPipelineStateMachine creates a state machine configured for the
// validate, generate, notify pipeline of one run. A stage's trigger only
// fires once that stage has recorded its outcome on rs. Every transition is logged.
func BuildPipelineStateMachine(rs *RunState, logger *zap.Logger) domainwf.StateMachine {
	builder := domainwf.NewBuilder()

	builder.Configure(domainwf.StateStart).
		Permit(domainwf.TriggerBegin, domainwf.StateValidating)

	builder.Configure(domainwf.StateValidating).
		PermitIf(domainwf.TriggerValidated, domainwf.StateGenerating, func(ctx context.Context) bool {
			return rs.Validation != nil && rs.Validation.IsValid
		}).
		Permit(domainwf.TriggerFail, domainwf.StateFailed)

	builder.Configure(domainwf.StateGenerating).
		PermitIf(domainwf.TriggerGenerated, domainwf.StateNotifying, func(ctx context.Context) bool {
			return rs.Generation != nil && rs.Generation.IsGenerated
		}).
		Permit(domainwf.TriggerFail, domainwf.StateFailed)

	builder.Configure(domainwf.StateNotifying).
		PermitIf(domainwf.TriggerNotified, domainwf.StateDone, func(ctx context.Context) bool {
			return rs.Notification != nil
		}).
		Permit(domainwf.TriggerFail, domainwf.StateFailed)

	// DONE and FAILED are terminal states - no outgoing transitions

	builder.OnTransition(func(from, to domainwf.State, trigger domainwf.Trigger) {
		logger.Info("Pipeline transition",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
			zap.String("trigger", trigger.String()))
	})

	return builder.Build(domainwf.StateStart)
}
