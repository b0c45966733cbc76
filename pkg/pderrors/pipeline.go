package pderrors

import (
	"fmt"
	"time"
)

// PipelineError identifies the build/deploy stage that failed. ExitCode of
// the failed process is -1 when the stage did not run an external process
// or the process never started.
type PipelineError struct {
	Stage       string
	ProcessExit int
	Err         error
}

func NewPipelineError(stage string, processExit int, err error) *PipelineError {
	return &PipelineError{Stage: stage, ProcessExit: processExit, Err: err}
}

func (e *PipelineError) Error() string {
	if e.ProcessExit > 0 {
		return fmt.Sprintf("stage %s failed with exit code %d: %v", e.Stage, e.ProcessExit, e.Err)
	}
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
func (e *PipelineError) Code() string  { return ErrorCodePipeline }
func (e *PipelineError) ExitCode() int { return ExitPipeline }

// TimeoutError means an external process or HTTP call outlived its
// deadline.
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
	Err       error
}

func NewTimeoutError(operation string, timeout time.Duration, err error) *TimeoutError {
	return &TimeoutError{Operation: operation, Timeout: timeout, Err: err}
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
func (e *TimeoutError) Code() string  { return ErrorCodeTimeout }
func (e *TimeoutError) ExitCode() int { return ExitTimeout }

// ConfigError reports invalid or missing configuration.
type ConfigError struct {
	Err error
}

func NewConfigError(err error) *ConfigError {
	return &ConfigError{Err: err}
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }
func (e *ConfigError) Code() string  { return ErrorCodeConfig }
func (e *ConfigError) ExitCode() int { return ExitConfig }

var (
	_ PushdownError = (*PipelineError)(nil)
	_ PushdownError = (*TimeoutError)(nil)
	_ PushdownError = (*ConfigError)(nil)
)
