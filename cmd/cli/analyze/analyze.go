package analyze

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/bacalhau-project/lambdapushdown/cmd/util"
	"github.com/bacalhau-project/lambdapushdown/cmd/util/flags"
	"github.com/bacalhau-project/lambdapushdown/cmd/util/output"
	"github.com/bacalhau-project/lambdapushdown/pkg/executor/process"
	"github.com/bacalhau-project/lambdapushdown/pkg/models"
	"github.com/bacalhau-project/lambdapushdown/pkg/reconciler"
)

type AnalyzeOptions struct {
	OutputOpts output.OutputOptions
}

func NewAnalyzeOptions() *AnalyzeOptions {
	return &AnalyzeOptions{
		OutputOpts: output.OutputOptions{Format: output.TableFormat},
	}
}

// ContainerLambdas is one row of the analyze output.
type ContainerLambdas struct {
	Container string `json:"container"`
	Lambdas   int    `json:"lambdas"`
	Params    string `json:"params"`
}

func NewCmd() *cobra.Command {
	opts := NewAnalyzeOptions()

	analyzeCmd := &cobra.Command{
		Use:   "analyze <analyzer> <job-source>",
		Short: "Show the lambdas the analyzer finds in a job, without changing anything",
		Args:  util.UsageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
	}
	analyzeCmd.Flags().AddFlagSet(flags.OutputFormatFlags(&opts.OutputOpts))
	return analyzeCmd
}

var columns = []output.TableColumn[ContainerLambdas]{
	{
		ColumnConfig: table.ColumnConfig{Name: "container"},
		Value:        func(c ContainerLambdas) string { return c.Container },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "lambdas", Align: text.AlignRight},
		Value:        func(c ContainerLambdas) string { return strconv.Itoa(c.Lambdas) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "params", WidthMax: 80},
		Value:        func(c ContainerLambdas) string { return c.Params },
	},
}

func runAnalyze(cmd *cobra.Command, opts *AnalyzeOptions, args []string) error {
	cfg := util.GetConfig(cmd)
	a := util.NewAnalyzer(cfg, process.NewLocalRunner())

	decomposition, err := a.Analyze(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return output.Output(cmd, columns, opts.OutputOpts, Rows(decomposition))
}

// Rows lists each container of decomposition with the params its policy
// would receive.
func Rows(decomposition models.JobDecomposition) []ContainerLambdas {
	rows := make([]ContainerLambdas, 0, len(decomposition.LambdasByContainer))
	for _, container := range decomposition.Containers() {
		lambdas := decomposition.LambdasByContainer[container]
		rows = append(rows, ContainerLambdas{
			Container: container,
			Lambdas:   len(lambdas),
			Params:    reconciler.EncodeParams(lambdas),
		})
	}
	return rows
}
