package adapters

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"sysdep/internal/ports"
	"sysdep/internal/shared"
	"sysdep/internal/types"
)

// ExecRunner runs external commands through os/exec. All engine
// interactions with the host's package managers go through this
// adapter so tests can substitute canned output.
type ExecRunner struct{}

func NewExecRunner() ExecRunner {
	return ExecRunner{}
}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", shared.CommandError(exitErr.Stderr, err)
		}
		return "", err
	}
	return string(out), nil
}

func (ExecRunner) Run(ctx context.Context, cmd types.Command) error {
	execCmd := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	execCmd.Stdin = os.Stdin
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	return execCmd.Run()
}

func (ExecRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

var _ ports.CommandRunner = ExecRunner{}
