package orchestrator

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bacalhau-project/lambdapushdown/pkg/logger"
	"github.com/bacalhau-project/lambdapushdown/pkg/models"
	"github.com/bacalhau-project/lambdapushdown/pkg/source"
	"github.com/bacalhau-project/lambdapushdown/pkg/telemetry"
)

type Params struct {
	Analyzer   Analyzer
	Reconciler Reconciler
	Deployer   Deployer
	// Target is the package and class every job is rewritten to.
	Target source.Target
	// Strict stops the run when reconciliation did not update every policy.
	Strict bool
}

// Orchestrator drives a single run: analyze, reconcile, select source and
// deploy.
type Orchestrator struct {
	analyzer   Analyzer
	reconciler Reconciler
	deployer   Deployer
	target     source.Target
	strict     bool
}

func NewOrchestrator(params Params) *Orchestrator {
	return &Orchestrator{
		analyzer:   params.Analyzer,
		reconciler: params.Reconciler,
		deployer:   params.Deployer,
		target:     params.Target,
		strict:     params.Strict,
	}
}

// Run executes req. With pushdown disabled the analyzer is not run and the
// controller is reconciled with no lambdas, which clears nothing but still
// round-trips through the policy API.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	result := Result{RunID: uuid.NewString(), Pushdown: req.Pushdown}
	ctx = logger.ContextWithRunID(ctx, result.RunID)
	ctx, span := telemetry.NewSpan(ctx, "pushdown.orchestrator.Run",
		attribute.String("run_id", result.RunID),
		attribute.String("job", req.JobPath),
		attribute.Bool("pushdown", req.Pushdown),
	)
	defer span.End()

	log.Ctx(ctx).Info().Str("job", req.JobPath).Bool("pushdown", req.Pushdown).Msg("run started")

	lambdas := map[string][]models.LambdaCandidate{}
	if req.Pushdown {
		decomposition, err := o.analyzer.Analyze(ctx, req.AnalyzerPath, req.JobPath)
		if err != nil {
			return result, telemetry.RecordError(span, err)
		}
		result.Decomposition = &decomposition
		lambdas = decomposition.LambdasByContainer
	}

	outcome, err := o.reconciler.Reconcile(ctx, lambdas)
	if err != nil {
		return result, telemetry.RecordError(span, err)
	}
	result.Reconciliation = outcome
	if !outcome.Succeeded() {
		if o.strict {
			return result, telemetry.RecordError(span, outcome.Err)
		}
		log.Ctx(ctx).Warn().Err(outcome.Err).
			Stringer("status", outcome.Status).
			Bool("partial", outcome.Partial()).
			Msg("reconciliation incomplete, deploying anyway")
	}

	selected, err := source.Select(result.Decomposition, req.Pushdown, req.JobPath)
	if err != nil {
		return result, telemetry.RecordError(span, err)
	}
	rewritten, err := source.Rewrite(selected, source.ClassNameFromPath(req.JobPath), o.target)
	if err != nil {
		return result, telemetry.RecordError(span, err)
	}

	result.Deployment, err = o.deployer.Deploy(ctx, rewritten)
	if err != nil {
		return result, telemetry.RecordError(span, err)
	}

	log.Ctx(ctx).Info().Str("jar", result.Deployment.JarURI).Msg("run finished")
	return result, nil
}
