//go:build unit || !integration

package util

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/bacalhau-project/lambdapushdown/pkg/config"
	"github.com/bacalhau-project/lambdapushdown/pkg/config/types"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
	"github.com/bacalhau-project/lambdapushdown/pkg/system"
)

func TestPushdownEnabled(t *testing.T) {
	require.True(t, PushdownEnabled("True"))
	for _, arg := range []string{"true", "TRUE", "False", "1", "yes", ""} {
		require.False(t, PushdownEnabled(arg), arg)
	}
}

func TestUsageArgs(t *testing.T) {
	validate := UsageArgs(cobra.ExactArgs(2))
	require.NoError(t, validate(&cobra.Command{}, []string{"a", "b"}))

	err := validate(&cobra.Command{}, []string{"a"})
	require.Equal(t, pderrors.ExitUsage, pderrors.ExitCodeFor(err))
}

func TestGetCleanupManagerFallsBack(t *testing.T) {
	require.NotNil(t, GetCleanupManager(context.Background()))

	cm := system.NewCleanupManager()
	ctx := context.WithValue(context.Background(), SystemManagerKey, cm)
	require.Same(t, cm, GetCleanupManager(ctx))
}

func TestNewOrchestratorRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default
	cfg.Executor.Location = ""

	_, err := NewOrchestrator(context.Background(), cfg, system.NewCleanupManager())
	var configErr *pderrors.ConfigError
	require.True(t, errors.As(err, &configErr))
	require.Equal(t, pderrors.ExitConfig, pderrors.ExitCodeFor(err))
}

func TestNewPublisherUnknownStorage(t *testing.T) {
	cfg := config.Default
	cfg.Storage.Type = types.UnknownStorage

	_, err := NewPublisher(context.Background(), cfg, nil)
	require.Equal(t, pderrors.ExitConfig, pderrors.ExitCodeFor(err))
}
