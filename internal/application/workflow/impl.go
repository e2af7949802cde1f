package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	domainwf "github.com/vreb/brokerage-workflow/internal/domain/workflow"
	"github.com/vreb/brokerage-workflow/internal/notification"
	"go.uber.org/zap"
)

// Stage error prefixes written to RunState.Error
const (
	prefixValidation   = "Validation failed"
	prefixGeneration   = "Invoice generation failed"
	prefixNotification = "Email notification failed"
)

var errNilRecord = errors.New("record is required")

// engineImpl holds only its collaborators; nothing carries over between runs
type engineImpl struct {
	validator RecordValidator
	renderer  InvoiceRenderer
	notifier  notification.Notifier
	profile   entity.Profile
	now       func() time.Time
	newID     func() string
	logger    *zap.Logger
}

// NewWorkflowEngine creates a new pipeline engine
func NewWorkflowEngine(
	validator RecordValidator,
	renderer InvoiceRenderer,
	notifier notification.Notifier,
	profile entity.Profile,
	logger *zap.Logger,
) WorkflowEngine {
	return &engineImpl{
		validator: validator,
		renderer:  renderer,
		notifier:  notifier,
		profile:   profile,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    logger,
	}
}

type stage struct {
	prefix  string
	trigger domainwf.Trigger
	run     func(ctx context.Context, rs *RunState) error
}

// Run implements WorkflowEngine
func (e *engineImpl) Run(ctx context.Context, rec *entity.Record) *RunState {
	rs := &RunState{
		ID:     e.newID(),
		Record: rec.Clone(),
	}
	logger := e.logger.With(zap.String("run_id", rs.ID))
	if rec != nil {
		logger = logger.With(zap.String("invoice_number", rec.InvoiceNumber))
	}

	machine := BuildPipelineStateMachine(rs, logger)
	if err := e.fire(ctx, machine, domainwf.TriggerBegin, logger); err != nil {
		rs.Error = fmt.Sprintf("state machine fire failed: %v", err)
	}

	stages := []stage{
		{prefix: prefixValidation, trigger: domainwf.TriggerValidated, run: e.validate},
		{prefix: prefixGeneration, trigger: domainwf.TriggerGenerated, run: e.generate},
		{prefix: prefixNotification, trigger: domainwf.TriggerNotified, run: e.notify},
	}

	for _, s := range stages {
		if rs.Error != "" {
			break
		}
		if err := e.runStage(ctx, rs, s); err != nil {
			rs.Error = fmt.Sprintf("%s: %v", s.prefix, err)
			logger.Warn("Pipeline stage failed", zap.String("error", rs.Error))
			_ = e.fire(ctx, machine, domainwf.TriggerFail, logger)
			break
		}
		if err := e.fire(ctx, machine, s.trigger, logger); err != nil {
			rs.Error = fmt.Sprintf("%s: %v", s.prefix, err)
			_ = e.fire(ctx, machine, domainwf.TriggerFail, logger)
			break
		}
	}

	rs.State = machine.State()
	rs.Path = machine.Path()
	rs.Completed = rs.State == domainwf.StateDone && rs.Error == ""

	logger.Info("Pipeline finished",
		zap.String("state", rs.State.String()),
		zap.Bool("completed", rs.Completed))
	return rs
}

// runStage executes one stage, converting panics and cancellation into errors
func (e *engineImpl) runStage(ctx context.Context, rs *RunState, s stage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.run(ctx, rs)
}

func (e *engineImpl) fire(ctx context.Context, machine domainwf.StateMachine, trigger domainwf.Trigger, logger *zap.Logger) error {
	if err := machine.Fire(ctx, trigger); err != nil {
		permitted := make([]string, 0)
		for _, t := range machine.PermittedTriggers() {
			permitted = append(permitted, t.String())
		}
		logger.Error("State machine fire failed",
			zap.String("trigger", trigger.String()),
			zap.String("state", machine.State().String()),
			zap.Strings("permitted", permitted),
			zap.Error(err))
		return err
	}
	return nil
}

func (e *engineImpl) validate(ctx context.Context, rs *RunState) error {
	if rs.Record == nil {
		rs.Validation = &ValidationStatus{Errors: []string{errNilRecord.Error()}}
		return errNilRecord
	}

	errs := e.validator.Validate(rs.Record)
	if len(errs) > 0 {
		rs.Validation = &ValidationStatus{IsValid: false, Errors: errs}
		return errors.New(strings.Join(errs, "; "))
	}

	rs.Validation = &ValidationStatus{IsValid: true, ValidatedAt: e.now()}
	return nil
}

func (e *engineImpl) generate(ctx context.Context, rs *RunState) error {
	rs.Record.ComputeAmounts(e.profile.VATRate)

	path, err := e.renderer.RenderInvoice(rs.Record, e.profile)
	if err != nil {
		return err
	}

	// an empty path means nothing was written; the GENERATED guard rejects it
	rs.Generation = &GenerationStatus{
		IsGenerated: path != "",
		GeneratedAt: e.now(),
		FilePath:    path,
	}
	if rs.Generation.IsGenerated {
		rs.Record.Status = entity.StatusGenerated
	}
	return nil
}

func (e *engineImpl) notify(ctx context.Context, rs *RunState) error {
	recipient := rs.Record.BillToEmail
	sent, err := e.notifier.Send(ctx, recipient, rs.Record, rs.Generation.FilePath)
	if err != nil {
		return err
	}

	rs.Notification = &NotificationStatus{
		IsSent:    sent,
		SentAt:    e.now(),
		Recipient: recipient,
	}
	return nil
}
