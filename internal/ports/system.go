package ports

import (
	"context"

	"sysdep/internal/types"
)

// CommandRunner executes external commands. Installers depend on this
// port instead of os/exec so tests can substitute canned output.
type CommandRunner interface {
	// Output runs a command and returns its combined standard output.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// Run executes a command wired to the process's stdio.
	Run(ctx context.Context, cmd types.Command) error

	// LookPath reports whether an executable is reachable via PATH.
	LookPath(name string) bool
}

// OsDetectPort determines the identity of the host platform.
type OsDetectPort interface {
	Detect(ctx context.Context) (types.OsIdentity, error)
}
