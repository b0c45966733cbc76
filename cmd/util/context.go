package util

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bacalhau-project/lambdapushdown/pkg/config/types"
	"github.com/bacalhau-project/lambdapushdown/pkg/system"
)

type contextKey struct {
	name string
}

var (
	SystemManagerKey = contextKey{name: "context key for storing the system manager"}
	ConfigKey        = contextKey{name: "context key for storing the resolved configuration"}
)

// GetCleanupManager returns the cleanup manager the root command stored in
// the command context.
func GetCleanupManager(ctx context.Context) *system.CleanupManager {
	if cm, ok := ctx.Value(SystemManagerKey).(*system.CleanupManager); ok {
		return cm
	}
	return system.NewCleanupManager()
}

// GetConfig returns the configuration the root command resolved.
func GetConfig(cmd *cobra.Command) types.Config {
	cfg, _ := cmd.Context().Value(ConfigKey).(types.Config)
	return cfg
}
