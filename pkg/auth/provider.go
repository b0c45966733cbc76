package auth

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Provider caches the first token obtained from its Authenticator and
// returns it for the rest of its lifetime. It is built once per run and
// shared by every component that talks to the policy service. Tokens are
// never refreshed, which holds because a run is short-lived.
type Provider struct {
	authenticator Authenticator

	mu    sync.Mutex
	token Token
	valid bool
}

// Compile-time check of interface implementation
var _ TokenSource = (*Provider)(nil)

func NewProvider(authenticator Authenticator) *Provider {
	return &Provider{authenticator: authenticator}
}

// Token returns the cached token, authenticating on first use. A failed
// attempt is not cached.
func (p *Provider) Token(ctx context.Context) (Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.valid {
		return p.token, nil
	}

	token, err := p.authenticator.Authenticate(ctx)
	if err != nil {
		return "", err
	}
	p.token = token
	p.valid = true
	log.Ctx(ctx).Debug().Msg("acquired policy service token")
	return p.token, nil
}
