//nolint:gomnd
package config

import (
	"time"

	"github.com/c2h5oh/datasize"

	"github.com/bacalhau-project/lambdapushdown/pkg/config/types"
)

// Default is the configuration used when nothing overrides a key.
var Default = types.Config{
	Controller: types.ControllerConfig{
		URL:     "http://127.0.0.1:9000/",
		Timeout: 30 * time.Second,
	},
	Identity: types.IdentityConfig{
		URL:     "http://127.0.0.1:5000/v2.0",
		Timeout: 30 * time.Second,
	},
	Policy: types.PolicyConfig{
		FilterName: "lambdapushdown",
	},
	Executor: types.ExecutorConfig{
		Javac: "/usr/bin/javac",
		Jar:   "jar",
		Java:  "java",
	},
	Spark: types.SparkConfig{
		Master:          "spark://127.0.0.1:7077",
		ExecutorCores:   20,
		ExecutorMemory:  28 * datasize.GB,
		DriverClassPath: "jars/stocator-1.0.9.jar",
		Listeners: []string{
			"ch.cern.sparkmeasure.FlightRecorderStageMetrics",
			"ch.cern.sparkmeasure.FlightRecorderTaskMetrics",
		},
	},
	Storage: types.StorageConfig{
		Type: types.HDFS,
		Path: "/" + types.HarnessClass + ".jar",
		HDFS: types.HDFSConfig{
			Command: "hdfs",
			Address: "127.0.0.1:9000",
		},
	},
	Pipeline: types.PipelineConfig{
		StageTimeout:   10 * time.Minute,
		AnalyzeTimeout: 10 * time.Minute,
		ArtifactWait:   5 * time.Second,
	},
}
