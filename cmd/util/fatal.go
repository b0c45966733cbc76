package util

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bacalhau-project/lambdapushdown/cmd/util/output"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
)

var Fatal = fatalError

// fatalError prints err and exits with the code of its error kind.
func fatalError(cmd *cobra.Command, err error) {
	if msg := err.Error(); msg != "" {
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		cmd.PrintErr(output.RedStr(pderrors.CodeFor(err) + ": " + msg))
	}
	os.Exit(pderrors.ExitCodeFor(err))
}
