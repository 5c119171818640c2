package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/stratalab/fscap/internal/port"
)

// Runner executes external commands, capturing standard output.
// Standard error is logged at debug level and never mixed into the
// captured stream.
type Runner struct {
	logger *zap.Logger
}

// Ensure Runner implements port.Executor
var _ port.Executor = (*Runner)(nil)

// NewRunner creates a new Runner
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes argv[0] with the remaining arguments and blocks until
// the process exits or ctx is done. A non-zero exit is reported
// through the status; err is non-nil only for launch failures.
func (r *Runner) Run(ctx context.Context, argv []string) (int, string, error) {
	if len(argv) == 0 {
		return 0, "", fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if stderr.Len() > 0 {
		r.logger.Debug("command wrote to stderr",
			zap.Strings("argv", argv),
			zap.String("stderr", stderr.String()))
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), stdout.String(), nil
		}
		return 0, "", fmt.Errorf("failed to run %s: %w", argv[0], err)
	}

	return 0, stdout.String(), nil
}
