package process

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bacalhau-project/lambdapushdown/pkg/logger"
	"github.com/bacalhau-project/lambdapushdown/pkg/pderrors"
)

// LocalRunner runs commands as child processes of this one. Output is
// captured and streamed to the debug log line by line.
type LocalRunner struct{}

const waitDelay = 2 * time.Second

// Compile-time check of interface implementation
var _ Runner = (*LocalRunner)(nil)

func NewLocalRunner() *LocalRunner {
	return &LocalRunner{}
}

func (r *LocalRunner) Run(ctx context.Context, c Command) (Result, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	l := log.Ctx(ctx).With().Str("command", c.Name).Logger()

	cmd := exec.CommandContext(ctx, c.Path, c.Args...) //nolint:gosec // commands come from configuration
	cmd.Dir = c.Dir
	// children that keep the output pipes open must not block Wait forever
	cmd.WaitDelay = waitDelay
	if c.Env != nil {
		cmd.Env = c.Env
	}

	var output bytes.Buffer
	lines := logger.NewLineWriter(l, zerolog.DebugLevel)
	combined := io.MultiWriter(&output, lines)
	cmd.Stdout = combined
	cmd.Stderr = combined

	l.Info().Msgf(">> EXECUTING: %s", c)
	start := time.Now()
	err := cmd.Run()
	lines.Flush()

	result := Result{
		ExitCode: -1,
		Output:   output.Bytes(),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return result, pderrors.NewTimeoutError(c.Name, c.Timeout, ctx.Err())
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			l.Debug().Int("exit_code", result.ExitCode).Dur("took", result.Duration).Msg("process failed")
			return result, &ExitError{Command: c, ExitCode: result.ExitCode, Tail: tail(result.Output, outputTailLines)}
		}
		return result, errors.Wrapf(err, "starting %s", c.Path)
	}

	l.Debug().Dur("took", result.Duration).Msg("process finished")
	return result, nil
}
