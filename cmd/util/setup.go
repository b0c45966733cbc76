package util

import (
	"context"

	"github.com/pkg/errors"

	"github.com/bacalhau-project/lambdapushdown/pkg/analyzer"
	"github.com/bacalhau-project/lambdapushdown/pkg/auth"
	"github.com/bacalhau-project/lambdapushdown/pkg/config"
	"github.com/bacalhau-project/lambdapushdown/pkg/config/types"
	"github.com/bacalhau-project/lambdapushdown/pkg/controller"
	"github.com/bacalhau-project/lambdapushdown/pkg/executor/process"
	"github.com/bacalhau-project/lambdapushdown/pkg/orchestrator"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
	"github.com/bacalhau-project/lambdapushdown/pkg/pipeline"
	"github.com/bacalhau-project/lambdapushdown/pkg/publisher"
	"github.com/bacalhau-project/lambdapushdown/pkg/publisher/hdfs"
	"github.com/bacalhau-project/lambdapushdown/pkg/publisher/s3"
	"github.com/bacalhau-project/lambdapushdown/pkg/reconciler"
	"github.com/bacalhau-project/lambdapushdown/pkg/source"
	"github.com/bacalhau-project/lambdapushdown/pkg/system"
)

// NewTokenProvider builds the run's single credential provider.
func NewTokenProvider(cfg types.Config) *auth.Provider {
	return auth.NewProvider(auth.NewKeystoneAuthenticator(auth.KeystoneParams{
		URL:      cfg.Identity.URL,
		Username: cfg.Identity.Username,
		Password: cfg.Identity.Password,
		Tenant:   cfg.Identity.Tenant,
		Timeout:  cfg.Identity.Timeout,
	}))
}

func NewControllerClient(cfg types.Config) *controller.Client {
	return controller.NewClient(controller.Params{
		BaseURL: cfg.Controller.URL,
		Timeout: cfg.Controller.Timeout,
		Retries: cfg.Controller.Retries,
	})
}

func NewAnalyzer(cfg types.Config, runner process.Runner) *analyzer.Analyzer {
	return analyzer.NewAnalyzer(analyzer.Params{
		Runner:  runner,
		Java:    cfg.Executor.Java,
		Timeout: cfg.Pipeline.AnalyzeTimeout,
	})
}

func NewPublisher(ctx context.Context, cfg types.Config, runner process.Runner) (publisher.Publisher, error) {
	switch cfg.Storage.Type {
	case types.HDFS:
		return hdfs.NewPublisher(hdfs.PublisherParams{
			Runner:  runner,
			Command: cfg.Storage.HDFS.Command,
			Address: cfg.Storage.HDFS.Address,
			Path:    cfg.Storage.Path,
			Timeout: cfg.Pipeline.StageTimeout,
		}), nil
	case types.S3:
		awsConfig, err := s3.DefaultAWSConfig(ctx)
		if err != nil {
			return nil, pderrors.NewConfigError(errors.Wrap(err, "loading AWS configuration"))
		}
		return s3.NewPublisher(s3.PublisherParams{
			Uploader: s3.NewUploader(awsConfig, cfg.Storage.S3.Endpoint, cfg.Storage.S3.Region),
			Bucket:   cfg.Storage.S3.Bucket,
			Path:     cfg.Storage.Path,
			Timeout:  cfg.Pipeline.StageTimeout,
		}), nil
	default:
		return nil, pderrors.NewConfigError(errors.Errorf("unsupported storage type %q", cfg.Storage.Type))
	}
}

// NewOrchestrator wires every component of a run from cfg.
func NewOrchestrator(ctx context.Context, cfg types.Config, cm *system.CleanupManager) (*orchestrator.Orchestrator, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, pderrors.NewConfigError(err)
	}

	runner := process.NewLocalRunner()
	pub, err := NewPublisher(ctx, cfg, runner)
	if err != nil {
		return nil, err
	}

	return orchestrator.NewOrchestrator(orchestrator.Params{
		Analyzer: NewAnalyzer(cfg, runner),
		Reconciler: reconciler.NewReconciler(reconciler.Params{
			Tokens:     NewTokenProvider(cfg),
			Client:     NewControllerClient(cfg),
			FilterName: cfg.Policy.FilterName,
		}),
		Deployer: pipeline.NewPipeline(pipeline.Params{
			Runner:         runner,
			Publisher:      pub,
			Executor:       cfg.Executor,
			Spark:          cfg.Spark,
			StageTimeout:   cfg.Pipeline.StageTimeout,
			ArtifactWait:   cfg.Pipeline.ArtifactWait,
			CleanupManager: cm,
		}),
		Target: source.Target{
			Package: cfg.Executor.TargetPackage(),
			Class:   types.HarnessClass,
		},
		Strict: cfg.Policy.Strict,
	}), nil
}
