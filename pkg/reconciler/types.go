//go:generate mockgen --source types.go --destination mocks.go --package reconciler
package reconciler

import (
	"context"

	"github.com/bacalhau-project/lambdapushdown/pkg/auth"
	"github.com/bacalhau-project/lambdapushdown/pkg/models"
)

// PolicyClient is the part of the policy controller API the reconciler uses.
type PolicyClient interface {
	ListStaticPolicies(ctx context.Context, token auth.Token) ([]models.FilterPolicy, error)
	UpdatePolicyParams(ctx context.Context, token auth.Token, key, params string) (int, error)
}
