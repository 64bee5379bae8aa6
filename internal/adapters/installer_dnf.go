package adapters

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sysdep/internal/core"
	"sysdep/internal/ports"
	"sysdep/internal/types"
)

// DnfInstaller drives the Fedora-family native package manager.
type DnfInstaller struct {
	Runner ports.CommandRunner
}

func NewDnfInstaller(runner ports.CommandRunner) DnfInstaller {
	return DnfInstaller{Runner: runner}
}

func (DnfInstaller) Name() types.InstallerName {
	return types.InstallerDnf
}

func (d DnfInstaller) DetectInstalled(ctx context.Context) (types.InstalledSet, error) {
	if !d.Runner.LookPath("rpm") {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("rpm not found in PATH")
	}
	out, err := d.Runner.Output(ctx, "rpm", "-qa", "--qf", "%{NAME}\n")
	if err != nil {
		log.Warn().Err(err).Msg("rpm probe failed, assuming nothing installed")
		return types.InstalledSet{}, nil
	}
	installed := types.InstalledSet{}
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name != "" {
			installed[name] = struct{}{}
		}
	}
	return installed, nil
}

func (DnfInstaller) MissingTokens(tokens []string, installed types.InstalledSet) []string {
	return core.MissingTokens(tokens, installed)
}

func (DnfInstaller) InstallCommands(tokens []string, opts types.InstallOptions) []types.Command {
	verb := "install"
	if opts.Reinstall {
		verb = "reinstall"
	}
	sorted := sortedTokens(tokens)
	commands := make([]types.Command, 0, len(sorted))
	for _, token := range sorted {
		argv := []string{"dnf", verb, "--assumeyes"}
		if opts.Quiet {
			argv = append(argv, "-q")
		}
		argv = append(argv, token)
		commands = append(commands, elevate(argv, opts))
	}
	return commands
}

var _ ports.Installer = DnfInstaller{}
