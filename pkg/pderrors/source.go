package pderrors

import "fmt"

// SourceFormatError means the job source cannot be rewritten for the
// harness, typically because it has no package declaration.
type SourceFormatError struct {
	Reason string
}

func NewSourceFormatError(format string, args ...any) *SourceFormatError {
	return &SourceFormatError{Reason: fmt.Sprintf(format, args...)}
}

func (e *SourceFormatError) Error() string {
	return "malformed job source: " + e.Reason
}

func (e *SourceFormatError) Code() string  { return ErrorCodeSourceFormat }
func (e *SourceFormatError) ExitCode() int { return ExitSourceFormat }

var _ PushdownError = (*SourceFormatError)(nil)
