package pderrors

import "fmt"

// AuthError means the identity service was unreachable or rejected the
// configured credentials.
type AuthError struct {
	Endpoint string
	Err      error
}

func NewAuthError(endpoint string, err error) *AuthError {
	return &AuthError{Endpoint: endpoint, Err: err}
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication against %s failed: %v", e.Endpoint, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }
func (e *AuthError) Code() string  { return ErrorCodeAuth }
func (e *AuthError) ExitCode() int { return ExitAuth }

var _ PushdownError = (*AuthError)(nil)
