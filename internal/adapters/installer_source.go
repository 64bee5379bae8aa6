package adapters

import (
	"context"
	"fmt"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"sysdep/internal/core"
	"sysdep/internal/ports"
	"sysdep/internal/types"
)

// SourceInstaller handles script-style rules: keys whose install data
// is an installation script (inline or behind a URI) rather than a
// package name. Scripts are never detectable as installed, so every
// token is always considered missing and reruns are idempotent only if
// the script itself is.
type SourceInstaller struct {
	Runner ports.CommandRunner
}

func NewSourceInstaller(runner ports.CommandRunner) SourceInstaller {
	return SourceInstaller{Runner: runner}
}

func (SourceInstaller) Name() types.InstallerName {
	return types.InstallerSource
}

func (SourceInstaller) DetectInstalled(ctx context.Context) (types.InstalledSet, error) {
	return types.InstalledSet{}, nil
}

// MissingTokens delegates to the generic filter; since nothing is ever
// detected as installed, every token comes back.
func (SourceInstaller) MissingTokens(tokens []string, installed types.InstalledSet) []string {
	return core.MissingTokens(tokens, installed)
}

func (SourceInstaller) InstallCommands(tokens []string, opts types.InstallOptions) []types.Command {
	sorted := sortedTokens(tokens)
	commands := make([]types.Command, 0, len(sorted))
	for _, token := range sorted {
		script := token
		if strings.Contains(token, "://") {
			script = fmt.Sprintf("set -e; tmp=\"$(mktemp -d)\"; curl -fsSL %s -o \"$tmp/install.sh\"; sh \"$tmp/install.sh\"", shellquote.Join(token))
		}
		commands = append(commands, elevate([]string{"sh", "-c", script}, opts))
	}
	return commands
}

var _ ports.Installer = SourceInstaller{}
