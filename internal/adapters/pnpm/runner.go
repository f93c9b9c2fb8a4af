package pnpm

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/zerr"
)

// Runner executes the package manager with the given arguments in dir and
// returns its standard output.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// NewExecRunner returns a Runner invoking binary as a child process.
func NewExecRunner(binary string) Runner {
	return func(ctx context.Context, dir string, args ...string) ([]byte, error) {
		cmd := exec.CommandContext(ctx, binary, args...)
		cmd.Dir = dir

		out, err := cmd.Output()
		if err == nil {
			return out, nil
		}

		runErr := zerr.Wrap(domain.ErrPackageManagerFailed, binary+" "+strings.Join(args, " "))
		runErr = zerr.With(runErr, "dir", dir)

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			runErr = zerr.With(runErr, "exit_code", exitErr.ExitCode())
			return nil, zerr.With(runErr, "stderr", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, zerr.With(runErr, "reason", err.Error())
	}
}
