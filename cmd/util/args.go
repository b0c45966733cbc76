package util

import (
	"github.com/spf13/cobra"

	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
)

// UsageArgs marks argument validation failures as usage errors.
func UsageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return pderrors.NewUsageError(err)
		}
		return nil
	}
}

// PushdownEnabled interprets the pushdown argument. Only "True" enables it.
func PushdownEnabled(arg string) bool {
	return arg == "True"
}
