package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bacalhau-project/lambdapushdown/pkg/executor/process"
	"github.com/bacalhau-project/lambdapushdown/pkg/models"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
	"github.com/bacalhau-project/lambdapushdown/pkg/telemetry"
)

// ResultMarker opens the first line of the analyzer's structured result.
const ResultMarker = `{"original-job-code":`

type Params struct {
	Runner process.Runner
	// Java launches analyzers packaged as jars.
	Java    string
	Timeout time.Duration
}

// Analyzer runs an external job analyzer and decodes its structured result.
type Analyzer struct {
	runner  process.Runner
	java    string
	timeout time.Duration
}

func NewAnalyzer(params Params) *Analyzer {
	return &Analyzer{
		runner:  params.Runner,
		java:    params.Java,
		timeout: params.Timeout,
	}
}

// Analyze runs analyzerPath against jobPath and returns the decomposition it
// reports. Output before the result marker is diagnostics only.
func (a *Analyzer) Analyze(ctx context.Context, analyzerPath, jobPath string) (models.JobDecomposition, error) {
	ctx, span := telemetry.NewSpan(ctx, "pushdown.analyzer.Analyze",
		attribute.String("analyzer", analyzerPath),
		attribute.String("job", jobPath),
	)
	defer span.End()

	result, err := a.runner.Run(ctx, a.command(analyzerPath, jobPath))
	if err != nil {
		var exitErr *process.ExitError
		if errors.As(err, &exitErr) {
			return models.JobDecomposition{}, telemetry.RecordError(span,
				pderrors.NewAnalysisError(jobPath, "analyzer exited abnormally", err))
		}
		return models.JobDecomposition{}, telemetry.RecordError(span,
			pderrors.NewAnalysisError(jobPath, "analyzer did not run", err))
	}

	decomposition, err := ParseOutput(result.Output)
	if err != nil {
		return models.JobDecomposition{}, telemetry.RecordError(span,
			pderrors.NewAnalysisError(jobPath, "unrecognized analyzer output", err))
	}

	log.Ctx(ctx).Info().
		Int("containers", len(decomposition.LambdasByContainer)).
		Int("lambdas", decomposition.LambdaCount()).
		Msg("job analyzed")
	return decomposition, nil
}

func (a *Analyzer) command(analyzerPath, jobPath string) process.Command {
	cmd := process.Command{
		Name:    "analyze",
		Path:    analyzerPath,
		Args:    []string{jobPath},
		Timeout: a.timeout,
	}
	if strings.EqualFold(filepath.Ext(analyzerPath), ".jar") {
		cmd.Path = a.java
		cmd.Args = []string{"-jar", analyzerPath, jobPath}
	}
	return cmd
}

// ParseOutput locates the first line starting with ResultMarker and decodes
// the JSON document that begins there.
func ParseOutput(output []byte) (models.JobDecomposition, error) {
	var decomposition models.JobDecomposition

	offset := -1
	for start := 0; start < len(output); {
		end := bytes.IndexByte(output[start:], '\n')
		line := output[start:]
		if end >= 0 {
			line = output[start : start+end]
		}
		if bytes.HasPrefix(line, []byte(ResultMarker)) {
			offset = start
			break
		}
		if end < 0 {
			break
		}
		start += end + 1
	}
	if offset < 0 {
		return decomposition, errors.Errorf("no line starts with %s", ResultMarker)
	}

	decoder := json.NewDecoder(bytes.NewReader(output[offset:]))
	if err := decoder.Decode(&decomposition); err != nil {
		return decomposition, errors.Wrap(err, "decoding analyzer result")
	}
	if decomposition.LambdasByContainer == nil {
		decomposition.LambdasByContainer = map[string][]models.LambdaCandidate{}
	}
	return decomposition, nil
}
