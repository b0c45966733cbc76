//go:generate mockgen --source types.go --destination mocks.go --package process
package process

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Runner runs an external process to completion.
type Runner interface {
	// Run starts the command, waits for it to exit and returns its combined
	// output. A non-zero exit is reported as *ExitError, an expired deadline
	// as *pderrors.TimeoutError.
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Command describes one external process invocation.
type Command struct {
	// Name labels the invocation in logs and errors, e.g. "compile".
	Name string
	Path string
	Args []string
	Dir  string
	// Env replaces the inherited environment when non-nil.
	Env []string
	// Timeout bounds the process run time. Zero means no limit beyond ctx.
	Timeout time.Duration
}

func (c Command) String() string {
	return strings.TrimSpace(c.Path + " " + strings.Join(c.Args, " "))
}

// Result of a process that ran.
type Result struct {
	ExitCode int
	Output   []byte
	Duration time.Duration
}

const outputTailLines = 20

// ExitError reports a process that ran but exited non-zero.
type ExitError struct {
	Command  Command
	ExitCode int
	// Tail holds the last lines of combined output.
	Tail string
}

func (e *ExitError) Error() string {
	if e.Tail == "" {
		return fmt.Sprintf("%s exited with code %d", e.Command.Path, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Command.Path, e.ExitCode, e.Tail)
}

func tail(output []byte, lines int) string {
	all := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
	if len(all) > lines {
		all = all[len(all)-lines:]
	}
	return strings.TrimSpace(strings.Join(all, "\n"))
}
