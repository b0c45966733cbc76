package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/bacalhau-project/lambdapushdown/pkg/config/types"
)

const (
	environmentVariablePrefix = "PUSHDOWN"
	configType                = "yaml"
	configName                = "config"
	dotEnvName                = ".env"
)

var (
	environmentVariableReplace = strings.NewReplacer(".", "_")
	configDecoderHook          = viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	javaIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// Load resolves the configuration from defaults, an optional config.yaml and
// .env file in path, PUSHDOWN_* environment variables and any flags already
// bound to viper.
func Load(path string) (types.Config, error) {
	if err := loadDotEnv(path); err != nil {
		return types.Config{}, err
	}

	viper.SetConfigName(configName)
	viper.SetConfigType(configType)
	viper.SetEnvPrefix(environmentVariablePrefix)
	viper.SetEnvKeyReplacer(environmentVariableReplace)
	viper.AutomaticEnv()
	if path != "" {
		viper.AddConfigPath(path)
	}
	SetDefault(Default)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, errors.Wrap(err, "reading config file")
		}
		log.Debug().Str("path", path).Msg("no config file found, using defaults and environment")
	}

	var out types.Config
	if err := viper.Unmarshal(&out, configDecoderHook); err != nil {
		return types.Config{}, errors.Wrap(err, "decoding config")
	}
	return out, nil
}

// SetDefault registers every key of cfg as a viper default. AutomaticEnv only
// sees keys viper knows about, so every key needs a default, even an empty one.
func SetDefault(cfg types.Config) {
	defaults := map[string]any{
		types.ControllerURL:          cfg.Controller.URL,
		types.ControllerTimeout:      cfg.Controller.Timeout,
		types.ControllerRetries:      cfg.Controller.Retries,
		types.IdentityURL:            cfg.Identity.URL,
		types.IdentityUsername:       cfg.Identity.Username,
		types.IdentityPassword:       cfg.Identity.Password,
		types.IdentityTenant:         cfg.Identity.Tenant,
		types.IdentityTimeout:        cfg.Identity.Timeout,
		types.PolicyFilterName:       cfg.Policy.FilterName,
		types.PolicyStrict:           cfg.Policy.Strict,
		types.ExecutorLocation:       cfg.Executor.Location,
		types.ExecutorJavac:          cfg.Executor.Javac,
		types.ExecutorJar:            cfg.Executor.Jar,
		types.ExecutorJava:           cfg.Executor.Java,
		types.ExecutorCleanup:        cfg.Executor.Cleanup,
		types.SparkHome:              cfg.Spark.Home,
		types.SparkMaster:            cfg.Spark.Master,
		types.SparkExecutorCores:     cfg.Spark.ExecutorCores,
		types.SparkExecutorMemory:    cfg.Spark.ExecutorMemory.String(),
		types.SparkDriverClassPath:   cfg.Spark.DriverClassPath,
		types.SparkListeners:         cfg.Spark.Listeners,
		types.StorageKind:            cfg.Storage.Type.String(),
		types.StoragePath:            cfg.Storage.Path,
		types.StorageHDFSCommand:     cfg.Storage.HDFS.Command,
		types.StorageHDFSAddress:     cfg.Storage.HDFS.Address,
		types.StorageS3Bucket:        cfg.Storage.S3.Bucket,
		types.StorageS3Region:        cfg.Storage.S3.Region,
		types.StorageS3Endpoint:      cfg.Storage.S3.Endpoint,
		types.PipelineStageTimeout:   cfg.Pipeline.StageTimeout,
		types.PipelineAnalyzeTimeout: cfg.Pipeline.AnalyzeTimeout,
		types.PipelineArtifactWait:   cfg.Pipeline.ArtifactWait,
	}
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
}

// Validate checks cfg for values the run cannot work with.
func Validate(cfg types.Config) error {
	var err error
	if verr := validator.New().Struct(cfg); verr != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(verr, &fieldErrs) {
			for _, fe := range fieldErrs {
				err = multierr.Append(err, fmt.Errorf("%s: failed %q check", fe.Namespace(), fe.Tag()))
			}
		} else {
			err = multierr.Append(err, verr)
		}
	}

	for _, part := range strings.Split(cfg.Executor.TargetPackage(), ".") {
		if part != "" && !javaIdentifier.MatchString(part) {
			err = multierr.Append(err, fmt.Errorf(
				"executor location %q cannot be used as a package: %q is not a Java identifier", cfg.Executor.Location, part))
			break
		}
	}

	switch cfg.Storage.Type {
	case types.HDFS:
		if cfg.Storage.HDFS.Command == "" || cfg.Storage.HDFS.Address == "" {
			err = multierr.Append(err, fmt.Errorf("hdfs storage needs both a command and an address"))
		}
	case types.S3:
		if cfg.Storage.S3.Bucket == "" {
			err = multierr.Append(err, fmt.Errorf("s3 storage needs a bucket"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown storage type: %q", cfg.Storage.Type.String()))
	}
	return err
}

// Reset clears all configuration, useful for testing.
func Reset() {
	viper.Reset()
}

// KeyAsEnvVar returns the environment variable corresponding to a config key
func KeyAsEnvVar(key string) string {
	return strings.ToUpper(
		fmt.Sprintf("%s_%s", environmentVariablePrefix, environmentVariableReplace.Replace(key)),
	)
}

// DefaultPath is the directory searched for config.yaml and .env when none
// is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".pushdown")
}

func loadDotEnv(path string) error {
	for _, dir := range []string{".", path} {
		if dir == "" {
			continue
		}
		file := filepath.Join(dir, dotEnvName)
		if _, err := os.Stat(file); err != nil {
			continue
		}
		// existing environment variables win over the file
		if err := godotenv.Load(file); err != nil {
			return errors.Wrapf(err, "loading %s", file)
		}
	}
	return nil
}
