package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries the suggested next step for a warning or error.
	FieldErrorHint = "error_hint"
	// FieldInputPath is the device log being processed.
	FieldInputPath = "input_path"
	// FieldTablePath is the emitted table file.
	FieldTablePath = "table_path"
)

// FieldSessionID ties together the records of one invocation in a shared
// log file.
const FieldSessionID = "session_id"
