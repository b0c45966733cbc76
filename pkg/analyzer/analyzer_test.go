//go:build unit || !integration

package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/bacalhau-project/lambdapushdown/pkg/executor/process"
	"github.com/bacalhau-project/lambdapushdown/pkg/models"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
)

const analyzerOutput = `loading classes
found 2 closures
{"original-job-code": "package com.acme;", "pushdown-job-code": "package com.acme; // pd",
 "lambdas": {"c1": [{"lambda-type-and-body": "map:x->x+1"}, {"lambda-type-and-body": "filter:x->x>0"}]}}
trailing diagnostics
`

type AnalyzerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	runner   *process.MockRunner
	analyzer *Analyzer
}

func TestAnalyzerSuite(t *testing.T) {
	suite.Run(t, new(AnalyzerSuite))
}

func (s *AnalyzerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.runner = process.NewMockRunner(s.ctrl)
	s.analyzer = NewAnalyzer(Params{Runner: s.runner, Java: "java", Timeout: time.Minute})
}

func (s *AnalyzerSuite) TestDecodesResult() {
	s.runner.EXPECT().Run(gomock.Any(), process.Command{
		Name:    "analyze",
		Path:    "/opt/analyzer",
		Args:    []string{"/jobs/Foo.java"},
		Timeout: time.Minute,
	}).Return(process.Result{Output: []byte(analyzerOutput)}, nil)

	decomposition, err := s.analyzer.Analyze(context.Background(), "/opt/analyzer", "/jobs/Foo.java")
	s.Require().NoError(err)
	s.Equal("package com.acme;", decomposition.OriginalSource)
	s.Equal("package com.acme; // pd", decomposition.PushdownSource)
	s.Equal([]models.LambdaCandidate{
		{TypeAndBody: "map:x->x+1"},
		{TypeAndBody: "filter:x->x>0"},
	}, decomposition.LambdasByContainer["c1"])
}

func (s *AnalyzerSuite) TestJarAnalyzerRunsWithJava() {
	s.runner.EXPECT().Run(gomock.Any(), process.Command{
		Name:    "analyze",
		Path:    "java",
		Args:    []string{"-jar", "/opt/analyzer.jar", "/jobs/Foo.java"},
		Timeout: time.Minute,
	}).Return(process.Result{Output: []byte(analyzerOutput)}, nil)

	_, err := s.analyzer.Analyze(context.Background(), "/opt/analyzer.jar", "/jobs/Foo.java")
	s.Require().NoError(err)
}

func (s *AnalyzerSuite) TestAbnormalExit() {
	s.runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(process.Result{ExitCode: 1}, &process.ExitError{ExitCode: 1})

	_, err := s.analyzer.Analyze(context.Background(), "/opt/analyzer", "/jobs/Foo.java")
	var analysisErr *pderrors.AnalysisError
	s.Require().True(errors.As(err, &analysisErr))
	s.Equal("/jobs/Foo.java", analysisErr.JobPath)
	s.Equal(pderrors.ExitAnalysis, pderrors.ExitCodeFor(err))
}

func (s *AnalyzerSuite) TestTimeoutKeepsTimeoutExitCode() {
	s.runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(process.Result{}, pderrors.NewTimeoutError("analyze", time.Minute, context.DeadlineExceeded))

	_, err := s.analyzer.Analyze(context.Background(), "/opt/analyzer", "/jobs/Foo.java")
	s.Require().Error(err)
	s.Equal(pderrors.ExitTimeout, pderrors.ExitCodeFor(err))
}

func (s *AnalyzerSuite) TestMissingMarker() {
	s.runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(process.Result{Output: []byte("nothing to see\n")}, nil)

	_, err := s.analyzer.Analyze(context.Background(), "/opt/analyzer", "/jobs/Foo.java")
	s.Equal(pderrors.ExitAnalysis, pderrors.ExitCodeFor(err))
}

func TestParseOutput(t *testing.T) {
	testCases := []struct {
		name       string
		output     string
		containers []string
		wantErr    bool
	}{
		{
			name:       "result on first line",
			output:     `{"original-job-code": "a", "pushdown-job-code": "b", "lambdas": {"x": []}}`,
			containers: []string{"x"},
		},
		{
			name:       "crlf diagnostics",
			output:     "warming up\r\n" + `{"original-job-code": "a", "pushdown-job-code": "b", "lambdas": {"y": [], "x": []}}`,
			containers: []string{"x", "y"},
		},
		{
			name:       "no lambdas",
			output:     `{"original-job-code": "a", "pushdown-job-code": "b"}`,
			containers: []string{},
		},
		{
			name:    "marker not at line start",
			output:  `log: {"original-job-code": "a"}`,
			wantErr: true,
		},
		{
			name:    "truncated result",
			output:  `{"original-job-code": "a", "lambdas": {`,
			wantErr: true,
		},
		{
			name:    "empty",
			output:  "",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decomposition, err := ParseOutput([]byte(tc.output))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", decomposition)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := decomposition.Containers()
			if len(got) != len(tc.containers) {
				t.Fatalf("containers = %v, want %v", got, tc.containers)
			}
			for i := range got {
				if got[i] != tc.containers[i] {
					t.Fatalf("containers = %v, want %v", got, tc.containers)
				}
			}
		})
	}
}
