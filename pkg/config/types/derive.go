package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// HarnessClass is the class name every submitted job is compiled under.
const HarnessClass = "SparkJobMigratory"

// TargetPackage derives the Java package of the harness from the executor
// location, e.g. /opt/pushdown/executor/ becomes opt.pushdown.executor. The
// class file then sits at a path matching its package when archived from /.
func (c ExecutorConfig) TargetPackage() string {
	trimmed := strings.Trim(filepath.ToSlash(filepath.Clean(c.Location)), "/")
	return strings.ReplaceAll(trimmed, "/", ".")
}

// HarnessFQN is the fully qualified harness class name.
func (c ExecutorConfig) HarnessFQN() string {
	pkg := c.TargetPackage()
	if pkg == "" {
		return HarnessClass
	}
	return pkg + "." + HarnessClass
}

func (c ExecutorConfig) SourcePath() string {
	return filepath.Join(c.Location, HarnessClass+".java")
}

func (c ExecutorConfig) ClassPath() string {
	return filepath.Join(c.Location, HarnessClass+".class")
}

func (c ExecutorConfig) JarPath() string {
	return filepath.Join(c.Location, HarnessClass+".jar")
}

// ExecutorMemoryArg renders the executor memory the way spark-submit expects
// it, in whole mebibytes.
func (c SparkConfig) ExecutorMemoryArg() string {
	return fmt.Sprintf("%dm", uint64(c.ExecutorMemory.MBytes()))
}

// LibsDir is the directory holding the engine's jars.
func (c SparkConfig) LibsDir() string {
	return filepath.Join(c.Home, "jars")
}

// DriverClassPathArg resolves DriverClassPath against the engine home.
func (c SparkConfig) DriverClassPathArg() string {
	if c.DriverClassPath == "" || filepath.IsAbs(c.DriverClassPath) {
		return c.DriverClassPath
	}
	return filepath.Join(c.Home, c.DriverClassPath)
}
