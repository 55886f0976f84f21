package errors

import (
	"errors"
	"fmt"
)

// PipelineError is a structured error carrying a stable code for the
// failure class plus a human-readable message. The pipeline either fully
// succeeds or aborts with one of these identifying the malformed input.
type PipelineError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// New creates a PipelineError with the given code and message.
func New(code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// Wrap creates a PipelineError wrapping an underlying cause.
func Wrap(code, message string, err error) *PipelineError {
	return &PipelineError{Code: code, Message: message, Err: err}
}

// Error codes for the failure classes the pipeline can report.
const (
	CodeInvalidDate  = "INVALID_DATE"
	CodeInvalidRow   = "INVALID_ROW"
	CodeMissingInput = "MISSING_INPUT"
	CodeEmptyInput   = "EMPTY_INPUT"
	CodeBadConfig    = "BAD_CONFIG"
	CodeWriteFailed  = "WRITE_FAILED"
)

// InvalidDate reports an unparseable date or timestamp cell. These abort
// the run: a report over silently dropped rows would be wrong, not partial.
func InvalidDate(source string, row int, value string) *PipelineError {
	return &PipelineError{
		Code:    CodeInvalidDate,
		Message: fmt.Sprintf("%s row %d: cannot parse date %q", source, row, value),
		Details: map[string]interface{}{"source": source, "row": row, "value": value},
	}
}

// InvalidRow reports a structurally broken row (wrong column count,
// violated item-count invariant).
func InvalidRow(source string, row int, reason string) *PipelineError {
	return &PipelineError{
		Code:    CodeInvalidRow,
		Message: fmt.Sprintf("%s row %d: %s", source, row, reason),
		Details: map[string]interface{}{"source": source, "row": row},
	}
}

// MissingInput reports an input table that could not be opened.
func MissingInput(source string, err error) *PipelineError {
	return Wrap(CodeMissingInput, fmt.Sprintf("input %s not readable", source), err)
}

// EmptyInput reports an input table with no data rows.
func EmptyInput(source string) *PipelineError {
	return New(CodeEmptyInput, fmt.Sprintf("input %s has no data rows", source))
}

// CodeOf returns the code of err if it is (or wraps) a PipelineError,
// otherwise the empty string.
func CodeOf(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsCode reports whether err carries the given pipeline error code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
