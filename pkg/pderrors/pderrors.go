// Package pderrors holds the error taxonomy of a pushdown run. Every kind
// carries the process exit code it maps to, so the CLI can translate any
// failure into a distinct exit status.
package pderrors

import (
	"errors"
)

// Exit codes returned by the pushdown binary.
const (
	ExitOK            = 0
	ExitUnknown       = 1
	ExitUsage         = 2
	ExitAuth          = 3
	ExitAnalysis      = 4
	ExitPolicyMissing = 5
	ExitReconcile     = 6
	ExitSourceFormat  = 7
	ExitPipeline      = 8
	ExitTimeout       = 9
	ExitConfig        = 10
)

const (
	ErrorCodeAuth         = "error-auth"
	ErrorCodeAnalysis     = "error-analysis"
	ErrorCodePolicyMiss   = "error-policy-missing"
	ErrorCodeReconcile    = "error-reconcile"
	ErrorCodeSourceFormat = "error-source-format"
	ErrorCodePipeline     = "error-pipeline"
	ErrorCodeTimeout      = "error-timeout"
	ErrorCodeConfig       = "error-config"
	ErrorCodeUsage        = "error-usage"
)

// PushdownError is implemented by every error kind in this package.
type PushdownError interface {
	error
	Code() string
	ExitCode() int
}

// ExitCodeFor returns the exit code for err. A timeout anywhere in the chain
// wins over the kind that wrapped it, so a stage that timed out exits with
// ExitTimeout rather than ExitPipeline.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	var timeout *TimeoutError
	if errors.As(err, &timeout) {
		return timeout.ExitCode()
	}
	var pe PushdownError
	if errors.As(err, &pe) {
		return pe.ExitCode()
	}
	return ExitUnknown
}

// CodeFor returns the string code for err, or "error-unknown".
func CodeFor(err error) string {
	var pe PushdownError
	if errors.As(err, &pe) {
		return pe.Code()
	}
	return "error-unknown"
}

// UsageError reports a command line the binary cannot act on.
type UsageError struct {
	Err error
}

func NewUsageError(err error) *UsageError {
	return &UsageError{Err: err}
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }
func (e *UsageError) Code() string  { return ErrorCodeUsage }
func (e *UsageError) ExitCode() int { return ExitUsage }

var _ PushdownError = (*UsageError)(nil)
