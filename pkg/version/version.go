// Package version carries the build version, injected with -ldflags.
package version

import (
	"runtime"
)

// GITVERSION is set at build time.
var GITVERSION = "v0.0.0-dev"

// GITCOMMIT is set at build time.
var GITCOMMIT = ""

type BuildVersionInfo struct {
	GitVersion string `json:"gitversion"`
	GitCommit  string `json:"gitcommit"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

func Get() *BuildVersionInfo {
	return &BuildVersionInfo{
		GitVersion: GITVERSION,
		GitCommit:  GITCOMMIT,
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}
}
