package pderrors

import "fmt"

// PolicyMissingError means no lambda pushdown filter policy is attached to
// the container.
type PolicyMissingError struct {
	Container  string
	FilterName string
}

func NewPolicyMissingError(container, filterName string) *PolicyMissingError {
	return &PolicyMissingError{Container: container, FilterName: filterName}
}

func (e *PolicyMissingError) Error() string {
	return fmt.Sprintf("no %s filter policy found for container %s", e.FilterName, e.Container)
}

func (e *PolicyMissingError) Code() string  { return ErrorCodePolicyMiss }
func (e *PolicyMissingError) ExitCode() int { return ExitPolicyMissing }

// ReconcileError reports a policy controller call that did not succeed.
// Status is zero when no response was received.
type ReconcileError struct {
	Operation string
	Status    int
	Err       error
}

func NewReconcileError(operation string, status int, err error) *ReconcileError {
	return &ReconcileError{Operation: operation, Status: status, Err: err}
}

func (e *ReconcileError) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("%s: status %d: %v", e.Operation, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	default:
		return fmt.Sprintf("%s: unexpected status %d", e.Operation, e.Status)
	}
}

func (e *ReconcileError) Unwrap() error { return e.Err }
func (e *ReconcileError) Code() string  { return ErrorCodeReconcile }
func (e *ReconcileError) ExitCode() int { return ExitReconcile }

var (
	_ PushdownError = (*PolicyMissingError)(nil)
	_ PushdownError = (*ReconcileError)(nil)
)
