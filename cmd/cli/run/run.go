package run

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bacalhau-project/lambdapushdown/cmd/util"
	"github.com/bacalhau-project/lambdapushdown/cmd/util/flags"
	"github.com/bacalhau-project/lambdapushdown/cmd/util/output"
	"github.com/bacalhau-project/lambdapushdown/pkg/models"
	"github.com/bacalhau-project/lambdapushdown/pkg/orchestrator"
	"github.com/bacalhau-project/lambdapushdown/pkg/pipeline"
)

type RunOptions struct {
	OutputOpts output.OutputOptions
	Quiet      bool
}

func NewRunOptions() *RunOptions {
	return &RunOptions{
		OutputOpts: output.OutputOptions{Format: output.TableFormat},
	}
}

func Flags(opts *RunOptions) *pflag.FlagSet {
	fset := pflag.NewFlagSet("run", pflag.ContinueOnError)
	fset.BoolVar(&opts.Quiet, "quiet", opts.Quiet, "Do not print the run summary.")
	fset.AddFlagSet(flags.OutputFormatFlags(&opts.OutputOpts))
	return fset
}

func NewCmd() *cobra.Command {
	opts := NewRunOptions()

	runCmd := &cobra.Command{
		Use:   "run <analyzer> <job-source> <True|False>",
		Short: "Analyze, reconcile policies, build and submit a job",
		Long: `Run the whole pushdown pipeline for one job. The third argument enables
pushdown only when it is exactly "True"; otherwise the job source is built as
it is and the analyzer is not started.`,
		Example: `  pushdown run /opt/analyzer.jar /jobs/WordCount.java True`,
		Args:    util.UsageArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, opts, args)
		},
	}
	runCmd.Flags().AddFlagSet(Flags(opts))
	return runCmd
}

func Run(cmd *cobra.Command, opts *RunOptions, args []string) error {
	ctx := cmd.Context()
	cfg := util.GetConfig(cmd)

	o, err := util.NewOrchestrator(ctx, cfg, util.GetCleanupManager(ctx))
	if err != nil {
		return err
	}

	result, err := o.Run(ctx, orchestrator.Request{
		AnalyzerPath: args[0],
		JobPath:      args[1],
		Pushdown:     util.PushdownEnabled(args[2]),
	})
	if err != nil {
		return err
	}
	if opts.Quiet {
		return nil
	}
	return printSummary(cmd, opts, result)
}

var containerColumns = []output.TableColumn[models.ContainerOutcome]{
	{
		ColumnConfig: table.ColumnConfig{Name: "container"},
		Value:        func(c models.ContainerOutcome) string { return c.Container },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "policy"},
		Value:        func(c models.ContainerOutcome) string { return c.PolicyKey },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "status", Align: text.AlignRight},
		Value: func(c models.ContainerOutcome) string {
			if c.HTTPStatus == 0 {
				return "-"
			}
			return strconv.Itoa(c.HTTPStatus)
		},
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "updated"},
		Value:        func(c models.ContainerOutcome) string { return strconv.FormatBool(c.Updated()) },
	},
}

var stageColumns = []output.TableColumn[pipeline.StageReport]{
	{
		ColumnConfig: table.ColumnConfig{Name: "stage"},
		Value:        func(s pipeline.StageReport) string { return s.Name },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "took", Align: text.AlignRight},
		Value:        func(s pipeline.StageReport) string { return s.Duration.Round(time.Millisecond).String() },
	},
}

func printSummary(cmd *cobra.Command, opts *RunOptions, result orchestrator.Result) error {
	cmd.Printf("Run %s: reconciliation %s\n", result.RunID, result.Reconciliation.Status)
	if len(result.Reconciliation.Containers) > 0 {
		if err := output.Output(cmd, containerColumns, opts.OutputOpts, result.Reconciliation.Containers); err != nil {
			return err
		}
	}
	if err := output.Output(cmd, stageColumns, opts.OutputOpts, result.Deployment.Stages); err != nil {
		return err
	}
	cmd.Println(output.GreenStr(fmt.Sprintf("Submitted %s from %s", result.Deployment.HarnessClass, result.Deployment.JarURI)))
	return nil
}
