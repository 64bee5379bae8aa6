package adapters

import (
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
	"github.com/rs/zerolog/log"

	"sysdep/internal/core"
	"sysdep/internal/ports"
	"sysdep/internal/types"
)

// AptInstaller drives the Debian-family native package manager.
// Detection queries the dpkg database; installation renders one
// apt-get command per package.
type AptInstaller struct {
	Runner ports.CommandRunner
}

func NewAptInstaller(runner ports.CommandRunner) AptInstaller {
	return AptInstaller{Runner: runner}
}

func (AptInstaller) Name() types.InstallerName {
	return types.InstallerApt
}

// DetectInstalled lists installed packages via dpkg-query. A missing
// dpkg-query binary is fatal for this installer; a failing query
// degrades to an empty installed set so resolution can still report
// what would be installed.
func (a AptInstaller) DetectInstalled(ctx context.Context) (types.InstalledSet, error) {
	if !a.Runner.LookPath("dpkg-query") {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("dpkg-query not found in PATH")
	}
	out, err := a.Runner.Output(ctx, "dpkg-query", "-W", "-f=${Package} ${Version} ${db:Status-Status}\n")
	if err != nil {
		log.Warn().Err(err).Msg("dpkg-query probe failed, assuming nothing installed")
		return types.InstalledSet{}, nil
	}
	return parseDpkgQuery(out), nil
}

// parseDpkgQuery extracts the installed package set from dpkg-query
// output lines of the form "name version status". Lines whose version
// does not parse as a Debian version are garbage in the query output
// and are skipped, like non-PEP 440 lines in the pip probe.
func parseDpkgQuery(out string) types.InstalledSet {
	installed := types.InstalledSet{}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 3 || fields[2] != "installed" {
			continue
		}
		name, version := fields[0], fields[1]
		if _, err := debversion.NewVersion(version); err != nil {
			log.Debug().Str("package", name).Str("version", version).Msg("skipping dpkg line with a non-Debian version string")
			continue
		}
		installed[name] = struct{}{}
	}
	return installed
}

func (AptInstaller) MissingTokens(tokens []string, installed types.InstalledSet) []string {
	return core.MissingTokens(tokens, installed)
}

func (AptInstaller) InstallCommands(tokens []string, opts types.InstallOptions) []types.Command {
	sorted := sortedTokens(tokens)
	commands := make([]types.Command, 0, len(sorted))
	for _, token := range sorted {
		argv := []string{"apt-get", "install"}
		if opts.Quiet {
			argv = append(argv, "-y", "-qq")
		}
		if opts.Reinstall {
			argv = append(argv, "--reinstall")
		}
		argv = append(argv, token)
		commands = append(commands, elevate(argv, opts))
	}
	return commands
}

// sortedTokens copies and alphabetically sorts install tokens so
// command generation is reproducible across runs for the same input.
func sortedTokens(tokens []string) []string {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.Strings(sorted)
	return sorted
}

// elevate prefixes a command with sudo -H unless the run already holds
// the privileged identity.
func elevate(argv []string, opts types.InstallOptions) types.Command {
	if opts.Elevate {
		argv = append([]string{"sudo", "-H"}, argv...)
	}
	return types.Command{Argv: argv}
}

var _ ports.Installer = AptInstaller{}
