package types

// Config keys, as used by viper, flags and PUSHDOWN_* environment variables.
const (
	ControllerURL     = "Controller.URL"
	ControllerTimeout = "Controller.Timeout"
	ControllerRetries = "Controller.Retries"

	IdentityURL      = "Identity.URL"
	IdentityUsername = "Identity.Username"
	IdentityPassword = "Identity.Password"
	IdentityTenant   = "Identity.Tenant"
	IdentityTimeout  = "Identity.Timeout"

	PolicyFilterName = "Policy.FilterName"
	PolicyStrict     = "Policy.Strict"

	ExecutorLocation = "Executor.Location"
	ExecutorJavac    = "Executor.Javac"
	ExecutorJar      = "Executor.Jar"
	ExecutorJava     = "Executor.Java"
	ExecutorCleanup  = "Executor.Cleanup"

	SparkHome            = "Spark.Home"
	SparkMaster          = "Spark.Master"
	SparkExecutorCores   = "Spark.ExecutorCores"
	SparkExecutorMemory  = "Spark.ExecutorMemory"
	SparkDriverClassPath = "Spark.DriverClassPath"
	SparkListeners       = "Spark.Listeners"

	StorageKind        = "Storage.Type"
	StoragePath        = "Storage.Path"
	StorageHDFSCommand = "Storage.HDFS.Command"
	StorageHDFSAddress = "Storage.HDFS.Address"
	StorageS3Bucket    = "Storage.S3.Bucket"
	StorageS3Region    = "Storage.S3.Region"
	StorageS3Endpoint  = "Storage.S3.Endpoint"

	PipelineStageTimeout   = "Pipeline.StageTimeout"
	PipelineAnalyzeTimeout = "Pipeline.AnalyzeTimeout"
	PipelineArtifactWait   = "Pipeline.ArtifactWait"
)
