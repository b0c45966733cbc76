package policies

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/bacalhau-project/lambdapushdown/cmd/util"
	"github.com/bacalhau-project/lambdapushdown/cmd/util/flags"
	"github.com/bacalhau-project/lambdapushdown/cmd/util/output"
	"github.com/bacalhau-project/lambdapushdown/pkg/models"
)

type PoliciesOptions struct {
	All        bool
	OutputOpts output.OutputOptions
}

func NewPoliciesOptions() *PoliciesOptions {
	return &PoliciesOptions{
		OutputOpts: output.OutputOptions{Format: output.TableFormat},
	}
}

func NewCmd() *cobra.Command {
	opts := NewPoliciesOptions()

	policiesCmd := &cobra.Command{
		Use:   "policies",
		Short: "List the controller's static policies for the pushdown filter",
		Args:  util.UsageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPolicies(cmd, opts)
		},
	}
	policiesCmd.Flags().BoolVar(&opts.All, "all", opts.All, "List policies of every filter.")
	policiesCmd.Flags().AddFlagSet(flags.OutputFormatFlags(&opts.OutputOpts))
	return policiesCmd
}

var columns = []output.TableColumn[models.FilterPolicy]{
	{
		ColumnConfig: table.ColumnConfig{Name: "id"},
		Value:        func(p models.FilterPolicy) string { return string(p.ID) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "target"},
		Value:        func(p models.FilterPolicy) string { return p.TargetID },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "filter"},
		Value:        func(p models.FilterPolicy) string { return p.FilterName },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "params", WidthMax: 80},
		Value:        func(p models.FilterPolicy) string { return p.Params },
	},
}

func runPolicies(cmd *cobra.Command, opts *PoliciesOptions) error {
	ctx := cmd.Context()
	cfg := util.GetConfig(cmd)

	token, err := util.NewTokenProvider(cfg).Token(ctx)
	if err != nil {
		return err
	}
	list, err := util.NewControllerClient(cfg).ListStaticPolicies(ctx, token)
	if err != nil {
		return err
	}
	if !opts.All {
		list = lo.Filter(list, func(p models.FilterPolicy, _ int) bool {
			return p.FilterName == cfg.Policy.FilterName
		})
	}
	return output.Output(cmd, columns, opts.OutputOpts, list)
}
