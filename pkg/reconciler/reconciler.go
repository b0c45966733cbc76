package reconciler

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/bacalhau-project/lambdapushdown/pkg/auth"
	"github.com/bacalhau-project/lambdapushdown/pkg/models"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
	"github.com/bacalhau-project/lambdapushdown/pkg/telemetry"
)

type Params struct {
	Tokens auth.TokenSource
	Client PolicyClient
	// FilterName identifies the lambda pushdown filter's policies.
	FilterName string
}

// Reconciler pushes each container's lambdas into the params of the
// container's pushdown filter policy.
type Reconciler struct {
	tokens     auth.TokenSource
	client     PolicyClient
	filterName string
}

func NewReconciler(params Params) *Reconciler {
	return &Reconciler{
		tokens:     params.Tokens,
		client:     params.Client,
		filterName: params.FilterName,
	}
}

// Reconcile updates the pushdown policy of every container in
// lambdasByContainer. Every container must resolve to a policy before any
// update is sent; one unresolved container yields PolicyMissing and no
// updates at all. Failed updates do not stop the remaining ones and nothing
// is rolled back.
//
// The returned error is only set when no token could be acquired. All other
// failures are described by the outcome.
func (r *Reconciler) Reconcile(
	ctx context.Context, lambdasByContainer map[string][]models.LambdaCandidate,
) (models.ReconciliationOutcome, error) {
	ctx, span := telemetry.NewSpan(ctx, "pushdown.reconciler.Reconcile",
		attribute.Int("containers", len(lambdasByContainer)))
	defer span.End()

	token, err := r.tokens.Token(ctx)
	if err != nil {
		return models.ReconciliationOutcome{}, telemetry.RecordError(span, err)
	}

	policies, err := r.client.ListStaticPolicies(ctx, token)
	if err != nil {
		return models.ReconciliationOutcome{Status: models.TransportFailure, Err: err}, nil
	}
	log.Ctx(ctx).Debug().Int("policies", len(policies)).Msg("fetched static policies")

	containers := models.SortedContainers(lambdasByContainer)
	resolved := make(map[string]models.FilterPolicy, len(containers))
	for _, container := range containers {
		policy, ok := r.resolve(policies, container)
		if !ok {
			missing := pderrors.NewPolicyMissingError(container, r.filterName)
			log.Ctx(ctx).Warn().Str("container", container).Msg("no pushdown policy for container, nothing updated")
			return models.ReconciliationOutcome{Status: models.PolicyMissing, Err: missing}, nil
		}
		resolved[container] = policy
	}

	outcome := models.ReconciliationOutcome{
		Status:     models.AllUpdated,
		Containers: make([]models.ContainerOutcome, 0, len(containers)),
	}
	var errs error
	for _, container := range containers {
		policy := resolved[container]
		result := models.ContainerOutcome{
			Container: container,
			PolicyKey: policy.UpdateKey(),
			Params:    EncodeParams(lambdasByContainer[container]),
		}

		result.HTTPStatus, result.Err = r.client.UpdatePolicyParams(ctx, token, result.PolicyKey, result.Params)
		if result.HTTPStatus != 0 {
			status := result.HTTPStatus
			outcome.LastHTTPStatus = &status
		}

		l := log.Ctx(ctx).With().Str("container", container).Str("policy", result.PolicyKey).Logger()
		if result.Err != nil {
			l.Warn().Err(result.Err).Msg("policy update failed")
			errs = multierr.Append(errs, result.Err)
		} else {
			l.Info().Int("status", result.HTTPStatus).Int("lambdas", len(lambdasByContainer[container])).Msg("policy updated")
		}
		outcome.Containers = append(outcome.Containers, result)
	}

	if errs != nil {
		outcome.Status = models.TransportFailure
		outcome.Err = errs
	}
	return outcome, nil
}

func (r *Reconciler) resolve(policies []models.FilterPolicy, container string) (models.FilterPolicy, bool) {
	for _, policy := range policies {
		if policy.FilterName == r.filterName && policy.AppliesTo(container) {
			return policy, true
		}
	}
	return models.FilterPolicy{}, false
}
