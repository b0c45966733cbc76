//go:generate mockgen --source types.go --destination mocks.go --package orchestrator
package orchestrator

import (
	"context"

	"github.com/bacalhau-project/lambdapushdown/pkg/models"
	"github.com/bacalhau-project/lambdapushdown/pkg/pipeline"
)

// Analyzer decomposes a job into pushdown candidates.
type Analyzer interface {
	Analyze(ctx context.Context, analyzerPath, jobPath string) (models.JobDecomposition, error)
}

// Reconciler records lambdas in the controller's filter policies.
type Reconciler interface {
	Reconcile(ctx context.Context, lambdasByContainer map[string][]models.LambdaCandidate) (models.ReconciliationOutcome, error)
}

// Deployer builds and submits job source.
type Deployer interface {
	Deploy(ctx context.Context, source string) (pipeline.Deployment, error)
}

// Request is one run of the pushdown pipeline.
type Request struct {
	AnalyzerPath string
	JobPath      string
	Pushdown     bool
}

// Result summarizes a completed run.
type Result struct {
	RunID          string
	Pushdown       bool
	Decomposition  *models.JobDecomposition
	Reconciliation models.ReconciliationOutcome
	Deployment     pipeline.Deployment
}
