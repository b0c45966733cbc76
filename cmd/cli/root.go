package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bacalhau-project/lambdapushdown/cmd/cli/analyze"
	"github.com/bacalhau-project/lambdapushdown/cmd/cli/policies"
	"github.com/bacalhau-project/lambdapushdown/cmd/cli/run"
	"github.com/bacalhau-project/lambdapushdown/cmd/cli/version"
	"github.com/bacalhau-project/lambdapushdown/cmd/util"
	"github.com/bacalhau-project/lambdapushdown/cmd/util/flags"
	"github.com/bacalhau-project/lambdapushdown/pkg/config"
	"github.com/bacalhau-project/lambdapushdown/pkg/config/types"
	"github.com/bacalhau-project/lambdapushdown/pkg/logger"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
	"github.com/bacalhau-project/lambdapushdown/pkg/system"
	"github.com/bacalhau-project/lambdapushdown/pkg/telemetry"
)

type RootOptions struct {
	ConfigDir   string
	LoggingMode logger.LogMode
}

func NewRootOptions() *RootOptions {
	mode := logger.LogModeDefault
	if logType, set := os.LookupEnv("LOG_TYPE"); set {
		if parsed, err := logger.ParseLogMode(strings.ToLower(logType)); err == nil {
			mode = parsed
		}
	}
	return &RootOptions{
		ConfigDir:   config.DefaultPath(),
		LoggingMode: mode,
	}
}

func NewRootCmd() *cobra.Command {
	opts := NewRootOptions()
	runOpts := run.NewRunOptions()

	rootCmd := &cobra.Command{
		Use:   "pushdown <analyzer> <job-source> <True|False>",
		Short: "Push job lambdas down into storage filters and deploy the job",
		Long: `Analyze a cluster job, record its pushdown lambdas in the storage
controller's filter policies, then build, publish and submit the job.

Called with three arguments it behaves like "pushdown run".`,
		Args:          util.UsageArgs(rootArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger.ConfigureLogging(opts.LoggingMode)

			cfg, err := config.Load(opts.ConfigDir)
			if err != nil {
				return pderrors.NewConfigError(err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), util.ConfigKey, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return run.Run(cmd, runOpts, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", opts.ConfigDir,
		"Directory holding config.yaml and .env.")
	rootCmd.PersistentFlags().Var(flags.LoggingFlag(&opts.LoggingMode), "log-mode",
		`Log format: 'default','json','combined'`)
	rootCmd.PersistentFlags().String("controller-url", config.Default.Controller.URL,
		fmt.Sprintf("Policy controller base URL. Also %s.", config.KeyAsEnvVar(types.ControllerURL)))
	rootCmd.PersistentFlags().Bool("strict", config.Default.Policy.Strict,
		"Fail the run when any policy could not be updated.")
	bindFlag(rootCmd, "controller-url", types.ControllerURL)
	bindFlag(rootCmd, "strict", types.PolicyStrict)

	rootCmd.Flags().AddFlagSet(run.Flags(runOpts))
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return pderrors.NewUsageError(err)
	})

	rootCmd.AddCommand(
		run.NewCmd(),
		analyze.NewCmd(),
		policies.NewCmd(),
		version.NewCmd(),
	)
	return rootCmd
}

func Execute() {
	rootCmd := NewRootCmd()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	telemetry.SetupFromEnvs()
	cm := system.NewCleanupManager()
	cm.RegisterCallback("flush traces", telemetry.Cleanup)
	ctx = context.WithValue(ctx, util.SystemManagerKey, cm)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	// failures are logged by the manager
	_ = cm.Cleanup(ctx)
	if err != nil {
		util.Fatal(cmd, err)
	}
}

func rootArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 3 {
		return fmt.Errorf("expected <analyzer> <job-source> <True|False>, got %d argument(s)", len(args))
	}
	return nil
}

func bindFlag(cmd *cobra.Command, name, key string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
		panic(fmt.Sprintf("DEVELOPER ERROR: binding flag %s: %s", name, err))
	}
}
