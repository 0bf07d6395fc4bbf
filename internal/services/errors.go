package services

import "fmt"

// Processing stages, recorded on failures so the user-facing message can be
// chosen per stage
const (
	StageValidation  = "validation"
	StageCalculation = "calculation"
	StageRendering   = "rendering"
	StageStorage     = "storage"
	StageStore       = "store"
	StageTimeout     = "timeout"
)

// ProcessingError wraps a failure with the stage it occurred in
type ProcessingError struct {
	Stage   string
	Code    string
	Message string
	Err     error
}

func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

func newProcessingError(stage, code, message string, err error) *ProcessingError {
	return &ProcessingError{Stage: stage, Code: code, Message: message, Err: err}
}

// UserMessage returns the message shown to the requesting user. Internal
// details stay in logs and the stored error record.
func UserMessage(err error) string {
	pe, ok := err.(*ProcessingError)
	if !ok {
		return "Failed to generate report. Please try again."
	}
	switch pe.Stage {
	case StageTimeout:
		return "The request timed out. Please try again."
	case StageStorage:
		return "Failed to save the report files. Please try again."
	case StageCalculation:
		return "Failed to perform astrological calculations. Please check your birth details."
	case StageValidation:
		return pe.Message
	default:
		return "Failed to generate report. Please try again."
	}
}

// ErrorCode returns the stable code recorded alongside a failure
func ErrorCode(err error) string {
	pe, ok := err.(*ProcessingError)
	if !ok {
		return "internal"
	}
	switch pe.Stage {
	case StageTimeout:
		return "deadline-exceeded"
	case StageStorage:
		return "unavailable"
	case StageCalculation, StageValidation:
		return "invalid-argument"
	default:
		if pe.Code != "" {
			return pe.Code
		}
		return "internal"
	}
}
