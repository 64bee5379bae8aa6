package ports

import (
	"context"

	"sysdep/internal/types"
)

// Installer is the capability contract for one package-manager family.
//
// DetectInstalled runs a read-only probe against the host's package
// database. A missing probe binary is fatal for the installer and is
// returned as an error; a probe that exists but fails degrades to an
// empty installed set (the adapter logs the failure and returns nil).
type Installer interface {
	Name() types.InstallerName

	DetectInstalled(ctx context.Context) (types.InstalledSet, error)

	// MissingTokens filters requested tokens down to those absent from
	// the installed set, preserving input order and spelling. Families
	// whose installed sets hold canonicalized names compare under that
	// canonical form.
	MissingTokens(tokens []string, installed types.InstalledSet) []string

	// InstallCommands renders the install commands for the given
	// tokens. Tokens are emitted in alphabetical order, one command per
	// token, so simulate output is reproducible for identical input.
	InstallCommands(tokens []string, opts types.InstallOptions) []types.Command
}
