//go:generate mockgen --source types.go --destination mocks.go --package auth
package auth

import "context"

// Token is an opaque credential for the policy service.
type Token string

// Authenticator obtains a fresh token from the identity service.
type Authenticator interface {
	Authenticate(ctx context.Context) (Token, error)
}

// TokenSource hands out the token to use for policy service calls.
type TokenSource interface {
	Token(ctx context.Context) (Token, error)
}
