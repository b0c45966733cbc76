package pderrors

import "fmt"

// AnalysisError means the job analyzer exited abnormally or produced no
// recognizable result.
type AnalysisError struct {
	JobPath string
	Reason  string
	Err     error
}

func NewAnalysisError(jobPath, reason string, err error) *AnalysisError {
	return &AnalysisError{JobPath: jobPath, Reason: reason, Err: err}
}

func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("analysis of %s failed: %s", e.JobPath, e.Reason)
	}
	return fmt.Sprintf("analysis of %s failed: %s: %v", e.JobPath, e.Reason, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
func (e *AnalysisError) Code() string  { return ErrorCodeAnalysis }
func (e *AnalysisError) ExitCode() int { return ExitAnalysis }

var _ PushdownError = (*AnalysisError)(nil)
