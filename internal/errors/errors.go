package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// FactsNotFound indicates the facts batch file does not exist
	FactsNotFound ErrorCode = "FACTS_NOT_FOUND"
	// FactsInvalid indicates the facts batch could not be decoded
	FactsInvalid ErrorCode = "FACTS_INVALID"
	// NoRuns indicates no analysis run has been recorded yet (cold start, not a failure)
	NoRuns ErrorCode = "NO_RUNS"
	// RunNotFound indicates the requested run id does not exist
	RunNotFound ErrorCode = "RUN_NOT_FOUND"
	// NodeNotFound indicates a node id that is not part of the analyzed graph
	NodeNotFound ErrorCode = "NODE_NOT_FOUND"
	// GraphMismatch indicates graph and metrics were produced from different inputs
	GraphMismatch ErrorCode = "GRAPH_MISMATCH"
	// StoreUnavailable indicates the run store could not be opened or queried
	StoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// Unauthorized indicates a missing or invalid API token
	Unauthorized ErrorCode = "UNAUTHORIZED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// MigraphError represents a migraph error with code, message, and suggestions
type MigraphError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new MigraphError
func New(code ErrorCode, message string, cause error) *MigraphError {
	return &MigraphError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: ErrorActions[code],
	}
}

// Error implements the error interface
func (e *MigraphError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *MigraphError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *MigraphError) WithDetails(details interface{}) *MigraphError {
	e.Details = details
	return e
}

// CodeOf extracts the error code from any error, defaulting to INTERNAL_ERROR
func CodeOf(err error) ErrorCode {
	if me, ok := err.(*MigraphError); ok {
		return me.Code
	}
	return InternalError
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool {
	me, ok := err.(*MigraphError)
	return ok && me.Code == code
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	FactsNotFound: {
		{
			Type:        RunCommand,
			Command:     "migraph analyze --facts=<path>",
			Safe:        true,
			Description: "Point migraph at the facts batch produced by the parser",
		},
	},
	NoRuns: {
		{
			Type:        RunCommand,
			Command:     "migraph analyze",
			Safe:        true,
			Description: "Run a first analysis to populate the run store",
		},
	},
	StoreUnavailable: {
		{
			Type:        RunCommand,
			Command:     "migraph init",
			Safe:        true,
			Description: "Initialize the .migraph directory and run store",
		},
	},
	Unauthorized: {
		{
			Type:        RunCommand,
			Command:     "migraph token create",
			Safe:        true,
			Description: "Create an API token and pass it as a bearer token",
		},
	},
}
