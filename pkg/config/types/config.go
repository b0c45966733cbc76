package types

import (
	"time"

	"github.com/c2h5oh/datasize"
)

// Config is the fully resolved configuration of a pushdown run.
type Config struct {
	Controller ControllerConfig
	Identity   IdentityConfig
	Policy     PolicyConfig
	Executor   ExecutorConfig
	Spark      SparkConfig
	Storage    StorageConfig
	Pipeline   PipelineConfig
}

// ControllerConfig addresses the policy controller API.
type ControllerConfig struct {
	URL     string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
	// Retries is the number of extra attempts per call. Zero disables retries.
	Retries int `validate:"gte=0"`
}

// IdentityConfig holds the credentials used to obtain a policy service token.
type IdentityConfig struct {
	URL      string        `validate:"required,url"`
	Username string        `validate:"required"`
	Password string        `validate:"required"`
	Tenant   string        `validate:"required"`
	Timeout  time.Duration `validate:"gt=0"`
}

type PolicyConfig struct {
	FilterName string `validate:"required"`
	// Strict makes any reconciliation outcome other than AllUpdated fatal.
	Strict bool
}

// ExecutorConfig describes where the harness source is written and which
// JDK tools build it.
type ExecutorConfig struct {
	Location string `validate:"required,startswith=/"`
	Javac    string `validate:"required"`
	Jar      string `validate:"required"`
	Java     string `validate:"required"`
	Cleanup  bool
}

type SparkConfig struct {
	Home            string            `validate:"required"`
	Master          string            `validate:"required"`
	ExecutorCores   int               `validate:"gt=0"`
	ExecutorMemory  datasize.ByteSize `validate:"gt=0"`
	DriverClassPath string
	Listeners       []string
}

type StorageConfig struct {
	Type StorageType
	Path string `validate:"required,startswith=/"`
	HDFS HDFSConfig
	S3   S3Config
}

type HDFSConfig struct {
	Command string
	Address string
}

type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string
}

type PipelineConfig struct {
	StageTimeout   time.Duration `validate:"gt=0"`
	AnalyzeTimeout time.Duration `validate:"gt=0"`
	ArtifactWait   time.Duration `validate:"gte=0"`
}
