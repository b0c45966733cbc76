package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/bacalhau-project/lambdapushdown/pkg/config/types"
	"github.com/bacalhau-project/lambdapushdown/pkg/executor/process"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
	"github.com/bacalhau-project/lambdapushdown/pkg/publisher"
	"github.com/bacalhau-project/lambdapushdown/pkg/system"
	"github.com/bacalhau-project/lambdapushdown/pkg/telemetry"
)

type Params struct {
	Runner    process.Runner
	Publisher publisher.Publisher
	Executor  types.ExecutorConfig
	Spark     types.SparkConfig
	// StageTimeout bounds every external process the pipeline starts.
	StageTimeout time.Duration
	// ArtifactWait is how long a stage's output file may take to become
	// visible after the process that wrote it exited.
	ArtifactWait time.Duration
	// CleanupManager receives removal of generated files when
	// Executor.Cleanup is set.
	CleanupManager *system.CleanupManager
}

// Pipeline builds the harness jar from job source, publishes it and
// submits it to the cluster. Stages run strictly in order and a failed
// stage stops the pipeline.
type Pipeline struct {
	runner       process.Runner
	publisher    publisher.Publisher
	executor     types.ExecutorConfig
	spark        types.SparkConfig
	stageTimeout time.Duration
	artifactWait time.Duration
	cm           *system.CleanupManager
}

func NewPipeline(params Params) *Pipeline {
	return &Pipeline{
		runner:       params.Runner,
		publisher:    params.Publisher,
		executor:     params.Executor,
		spark:        params.Spark,
		stageTimeout: params.StageTimeout,
		artifactWait: params.ArtifactWait,
		cm:           params.CleanupManager,
	}
}

// Deploy runs every stage against source, which must already be rewritten
// to the harness package and class.
func (p *Pipeline) Deploy(ctx context.Context, source string) (Deployment, error) {
	ctx, span := telemetry.NewSpan(ctx, "pushdown.pipeline.Deploy",
		attribute.String("harness", p.executor.HarnessFQN()))
	defer span.End()

	if p.executor.Cleanup && p.cm != nil {
		p.cm.RegisterCallback("remove build artifacts", p.removeArtifacts)
	}

	deployment := Deployment{HarnessClass: p.executor.HarnessFQN()}
	stages := []struct {
		name string
		run  func(context.Context) error
	}{
		{StageWrite, func(context.Context) error { return p.write(source) }},
		{StageCompile, p.compile},
		{StagePackage, p.pack},
		{StagePublish, func(ctx context.Context) (err error) {
			deployment.JarURI, err = p.publisher.Publish(ctx, p.executor.JarPath())
			return err
		}},
		{StageSubmit, func(ctx context.Context) error { return p.submit(ctx, deployment.JarURI) }},
	}

	for _, stage := range stages {
		l := log.Ctx(ctx).With().Str("stage", stage.name).Logger()
		stageCtx := l.WithContext(ctx)
		stageCtx, stageSpan := telemetry.NewSpan(stageCtx, "pushdown.pipeline."+stage.name)

		l.Info().Msg("stage started")
		start := time.Now()
		err := stage.run(stageCtx)
		stageSpan.End()
		if err != nil {
			l.Error().Err(err).Msg("stage failed")
			return deployment, telemetry.RecordError(span, stageError(stage.name, err))
		}

		took := time.Since(start)
		l.Info().Dur("took", took).Msg("stage finished")
		deployment.Stages = append(deployment.Stages, StageReport{Name: stage.name, Duration: took})
	}
	return deployment, nil
}

func (p *Pipeline) write(source string) error {
	if err := os.MkdirAll(p.executor.Location, 0o755); err != nil { //nolint:gomnd
		return errors.Wrap(err, "creating executor location")
	}
	return errors.Wrap(os.WriteFile(p.executor.SourcePath(), []byte(source), 0o644), "writing job source") //nolint:gomnd
}

func (p *Pipeline) compile(ctx context.Context) error {
	_, err := p.runner.Run(ctx, process.Command{
		Name:    StageCompile,
		Path:    p.executor.Javac,
		Args:    []string{"-cp", filepath.Join(p.spark.LibsDir(), "*"), p.executor.SourcePath()},
		Timeout: p.stageTimeout,
	})
	if err != nil {
		return err
	}
	return system.WaitForFile(ctx, p.executor.ClassPath(), p.artifactWait)
}

// pack archives the class file from / so its entry path matches its package.
func (p *Pipeline) pack(ctx context.Context) error {
	_, err := p.runner.Run(ctx, process.Command{
		Name: StagePackage,
		Path: p.executor.Jar,
		Args: []string{
			"cfe", p.executor.JarPath(), p.executor.HarnessFQN(),
			"-C", "/", strings.TrimPrefix(p.executor.ClassPath(), "/"),
		},
		Timeout: p.stageTimeout,
	})
	if err != nil {
		return err
	}
	return system.WaitForFile(ctx, p.executor.JarPath(), p.artifactWait)
}

func (p *Pipeline) submit(ctx context.Context, jarURI string) error {
	_, err := p.runner.Run(ctx, process.Command{
		Name:    StageSubmit,
		Path:    filepath.Join(p.spark.Home, "bin", "spark-submit"),
		Args:    p.SubmitArgs(jarURI),
		Timeout: p.stageTimeout,
	})
	return err
}

// SubmitArgs is the spark-submit argument list for jarURI.
func (p *Pipeline) SubmitArgs(jarURI string) []string {
	args := []string{
		"--deploy-mode", "cluster",
		"--master", p.spark.Master,
		"--class", p.executor.HarnessFQN(),
	}
	if classPath := p.spark.DriverClassPathArg(); classPath != "" {
		args = append(args, "--driver-class-path", classPath)
	}
	if len(p.spark.Listeners) > 0 {
		args = append(args, "--conf", "spark.extraListeners="+strings.Join(p.spark.Listeners, ","))
	}
	args = append(args,
		"--executor-cores", strconv.Itoa(p.spark.ExecutorCores),
		"--executor-memory", p.spark.ExecutorMemoryArg(),
	)
	if jars := p.libraryJars(); len(jars) > 0 {
		args = append(args, "--jars", strings.Join(jars, ","))
	}
	return append(args, jarURI)
}

func (p *Pipeline) libraryJars() []string {
	jars, err := doublestar.FilepathGlob(filepath.Join(p.spark.LibsDir(), "*.jar"))
	if err != nil {
		return nil
	}
	sort.Strings(jars)
	return jars
}

func (p *Pipeline) removeArtifacts() error {
	var errs error
	for _, path := range []string{p.executor.SourcePath(), p.executor.ClassPath(), p.executor.JarPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// stageError keeps timeouts as they are and attributes anything else to
// the stage.
func stageError(stage string, err error) error {
	var timeoutErr *pderrors.TimeoutError
	if errors.As(err, &timeoutErr) {
		return timeoutErr
	}
	exitCode := -1
	var exitErr *process.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode
	}
	return pderrors.NewPipelineError(stage, exitCode, err)
}
