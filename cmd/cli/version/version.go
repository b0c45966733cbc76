package version

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/bacalhau-project/lambdapushdown/cmd/util"
	"github.com/bacalhau-project/lambdapushdown/cmd/util/flags"
	"github.com/bacalhau-project/lambdapushdown/cmd/util/output"
	"github.com/bacalhau-project/lambdapushdown/pkg/version"
)

type VersionOptions struct {
	OutputOpts output.OutputOptions
}

func NewCmd() *cobra.Command {
	oV := &VersionOptions{OutputOpts: output.OutputOptions{Format: output.TableFormat}}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Get the pushdown version",
		Args:  util.UsageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return output.Output(cmd, columns, oV.OutputOpts, []version.BuildVersionInfo{*version.Get()})
		},
	}
	versionCmd.Flags().AddFlagSet(flags.OutputFormatFlags(&oV.OutputOpts))
	return versionCmd
}

var columns = []output.TableColumn[version.BuildVersionInfo]{
	{
		ColumnConfig: table.ColumnConfig{Name: "version"},
		Value:        func(v version.BuildVersionInfo) string { return v.GitVersion },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "commit"},
		Value:        func(v version.BuildVersionInfo) string { return v.GitCommit },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "platform"},
		Value:        func(v version.BuildVersionInfo) string { return v.GOOS + "/" + v.GOARCH },
	},
}
