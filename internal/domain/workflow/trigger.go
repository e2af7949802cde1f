package workflow

// Trigger represents the outcome of a stage that moves the pipeline on
type Trigger string

const (
	TriggerBegin     Trigger = "BEGIN"
	TriggerValidated Trigger = "VALIDATED"
	TriggerGenerated Trigger = "GENERATED"
	TriggerNotified  Trigger = "NOTIFIED"
	TriggerFail      Trigger = "FAIL"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
