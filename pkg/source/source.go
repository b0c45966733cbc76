package source

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/bacalhau-project/lambdapushdown/pkg/models"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
)

var packageDecl = regexp.MustCompile(`\bpackage\s+[\w.]+\s*;`)

// Target is what the selected source gets rewritten to.
type Target struct {
	Package string
	Class   string
}

// Select picks the job source to build. With pushdown disabled it is the
// job file as it is on disk, regardless of decomposition. With pushdown
// enabled it is the rewritten source from the decomposition.
func Select(decomposition *models.JobDecomposition, pushdownEnabled bool, jobPath string) (string, error) {
	if !pushdownEnabled {
		content, err := os.ReadFile(jobPath)
		if err != nil {
			return "", errors.Wrapf(err, "reading job source %s", jobPath)
		}
		return string(content), nil
	}
	if decomposition == nil {
		return "", errors.New("pushdown enabled without a job decomposition")
	}
	return decomposition.PushdownSource, nil
}

// Rewrite moves source into target: the package declaration is replaced
// with target.Package and every occurrence of className with target.Class.
// The declaration itself is never renamed. An empty target.Package drops the
// declaration so the class lands in the default package.
func Rewrite(source, className string, target Target) (string, error) {
	loc := packageDecl.FindStringIndex(source)
	if loc == nil {
		return "", pderrors.NewSourceFormatError("no package declaration in source of %s", className)
	}

	rename := func(text string) string {
		if className == "" || className == target.Class {
			return text
		}
		return strings.ReplaceAll(text, className, target.Class)
	}

	decl := ""
	if target.Package != "" {
		decl = "package " + target.Package + ";"
	}
	return rename(source[:loc[0]]) + decl + rename(source[loc[1]:]), nil
}

// ClassNameFromPath derives the job class name from its source file name.
func ClassNameFromPath(jobPath string) string {
	base := filepath.Base(jobPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
