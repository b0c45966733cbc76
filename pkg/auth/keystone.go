package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/openstack"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
	"github.com/bacalhau-project/lambdapushdown/pkg/telemetry"
)

type KeystoneParams struct {
	URL      string
	Username string
	Password string
	Tenant   string
	Timeout  time.Duration
}

// KeystoneAuthenticator authenticates with username, password and tenant
// against an OpenStack identity endpoint (v2.0 or v3).
type KeystoneAuthenticator struct {
	params KeystoneParams
}

// Compile-time check of interface implementation
var _ Authenticator = (*KeystoneAuthenticator)(nil)

func NewKeystoneAuthenticator(params KeystoneParams) *KeystoneAuthenticator {
	return &KeystoneAuthenticator{params: params}
}

func (k *KeystoneAuthenticator) Authenticate(ctx context.Context) (Token, error) {
	ctx, span := telemetry.NewSpan(ctx, "pushdown.auth.Keystone.Authenticate")
	defer span.End()

	if k.params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, k.params.Timeout)
		defer cancel()
	}

	provider, err := openstack.NewClient(k.params.URL)
	if err != nil {
		return "", telemetry.RecordError(span, pderrors.NewAuthError(k.params.URL, err))
	}
	provider.HTTPClient = http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	provider.Context = ctx

	err = openstack.Authenticate(provider, gophercloud.AuthOptions{
		IdentityEndpoint: k.params.URL,
		Username:         k.params.Username,
		Password:         k.params.Password,
		TenantName:       k.params.Tenant,
	})
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", telemetry.RecordError(span, pderrors.NewTimeoutError("authenticate", k.params.Timeout, ctx.Err()))
	}
	if err != nil {
		return "", telemetry.RecordError(span, pderrors.NewAuthError(k.params.URL, err))
	}

	token := provider.Token()
	if token == "" {
		return "", telemetry.RecordError(span,
			pderrors.NewAuthError(k.params.URL, errors.New("identity service returned an empty token")))
	}
	return Token(token), nil
}
