package pipeline

import "time"

// Stage names, in execution order.
const (
	StageWrite   = "write"
	StageCompile = "compile"
	StagePackage = "package"
	StagePublish = "publish"
	StageSubmit  = "submit"
)

// StageReport records a stage that completed.
type StageReport struct {
	Name     string
	Duration time.Duration
}

// Deployment describes a job that was built, published and submitted.
type Deployment struct {
	HarnessClass string
	JarURI       string
	Stages       []StageReport
}
