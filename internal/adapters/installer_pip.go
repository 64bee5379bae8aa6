package adapters

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/rs/zerolog/log"

	"sysdep/internal/ports"
	"sysdep/internal/shared"
	"sysdep/internal/types"
)

// PipInstaller drives the Python package manager. It requires the
// OS-native manager's runtime to be present first; the registry's
// install ordering guarantees that.
type PipInstaller struct {
	Runner ports.CommandRunner
}

func NewPipInstaller(runner ports.CommandRunner) PipInstaller {
	return PipInstaller{Runner: runner}
}

func (PipInstaller) Name() types.InstallerName {
	return types.InstallerPip
}

// DetectInstalled parses `pip freeze` output. Names are normalized per
// PEP 503 so document tokens match regardless of underscore/dot
// spelling; versions must parse as PEP 440 or the line is skipped.
func (p PipInstaller) DetectInstalled(ctx context.Context) (types.InstalledSet, error) {
	if !p.Runner.LookPath("python3") {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("python3 not found in PATH")
	}
	out, err := p.Runner.Output(ctx, "python3", "-m", "pip", "freeze")
	if err != nil {
		log.Warn().Err(err).Msg("pip freeze probe failed, assuming nothing installed")
		return types.InstalledSet{}, nil
	}
	installed := types.InstalledSet{}
	for _, line := range strings.Split(out, "\n") {
		name, version, found := strings.Cut(strings.TrimSpace(line), "==")
		if !found || name == "" {
			// Editable and direct-reference lines carry no version pin.
			continue
		}
		if _, err := pep440.Parse(version); err != nil {
			log.Debug().Str("line", line).Msg("pip freeze line has a non-PEP 440 version")
			continue
		}
		installed[shared.NormalizePipName(name)] = struct{}{}
	}
	return installed, nil
}

// MissingTokens compares document tokens against the installed set
// under PEP 503 normalization, so a document's `PyYAML` matches the
// `pyyaml` that pip freeze reports. The returned tokens keep the
// document spelling.
func (PipInstaller) MissingTokens(tokens []string, installed types.InstalledSet) []string {
	var missing []string
	for _, token := range tokens {
		if !installed.Has(shared.NormalizePipName(token)) {
			missing = append(missing, token)
		}
	}
	return missing
}

func (PipInstaller) InstallCommands(tokens []string, opts types.InstallOptions) []types.Command {
	sorted := sortedTokens(tokens)
	commands := make([]types.Command, 0, len(sorted))
	for _, token := range sorted {
		argv := []string{"python3", "-m", "pip", "install", "-U"}
		if opts.Quiet {
			argv = append(argv, "-q")
		}
		if opts.Reinstall {
			argv = append(argv, "-I")
		}
		argv = append(argv, token)
		commands = append(commands, elevate(argv, opts))
	}
	return commands
}

var _ ports.Installer = PipInstaller{}
