package types

import (
	"fmt"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// InstallerRule carries the install data for one (key, os, version,
// installer) combination. Package-manager installers use Packages;
// the source installer uses URI and/or Script.
type InstallerRule struct {
	Packages []string
	URI      string
	Script   string
}

// Empty reports whether the rule carries no install data at all.
// Empty rules are legal: they mark a key as satisfied-by-default on
// that OS.
func (r InstallerRule) Empty() bool {
	return len(r.Packages) == 0 && r.URI == "" && r.Script == ""
}

// Tokens returns the install tokens this rule contributes. For
// package-manager rules these are package names; for source rules the
// URI (or inline script) is the token.
func (r InstallerRule) Tokens() []string {
	if len(r.Packages) > 0 {
		return r.Packages
	}
	if r.URI != "" {
		return []string{r.URI}
	}
	if r.Script != "" {
		return []string{r.Script}
	}
	return nil
}

// RuleSet holds the rules applying to one (os, version), keyed by
// installer name.
type RuleSet map[InstallerName]InstallerRule

// OSRule maps an OS version to its RuleSet. The VersionAny entry holds
// unqualified (all-versions) rules.
type OSRule map[string]RuleSet

// KeyRule maps an OS name to its OSRule. The OsAny entry holds rules
// applying to any OS.
type KeyRule map[string]OSRule

// SourceDocument is one loaded dependency database. Read-only once
// loaded; Origin identifies the document (its source URL or path).
type SourceDocument struct {
	Origin string
	Rules  map[string]KeyRule
}

// OsIdentity names the platform a resolution targets, either detected
// from the host or supplied as a "name:version" override.
type OsIdentity struct {
	Name    string
	Version string
}

func (o OsIdentity) String() string {
	return fmt.Sprintf("%s:%s", o.Name, o.Version)
}

// ParseOsIdentity parses a "name:version" override string.
func ParseOsIdentity(value string) (OsIdentity, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return OsIdentity{}, fmt.Errorf("invalid os override %q, expected name:version", value)
	}
	return OsIdentity{Name: parts[0], Version: parts[1]}, nil
}

// ResolvedInstall maps an installer name to the ordered, deduplicated
// install tokens resolved for it.
type ResolvedInstall map[InstallerName][]string

// Merge appends tokens for an installer, preserving first-seen order
// and dropping duplicates.
func (r ResolvedInstall) Merge(name InstallerName, tokens []string) {
	seen := make(map[string]struct{}, len(r[name]))
	for _, token := range r[name] {
		seen[token] = struct{}{}
	}
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		r[name] = append(r[name], token)
	}
}

// InstalledSet is the set of package identifiers an installer family
// reports as present on the host.
type InstalledSet map[string]struct{}

// Has reports membership.
func (s InstalledSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// InstallOptions tunes install command generation.
type InstallOptions struct {
	// Reinstall forces commands for every token, bypassing the
	// missing-token filter.
	Reinstall bool
	// Quiet renders non-interactive, low-chatter commands.
	Quiet bool
	// Elevate prefixes commands with sudo -H when the current process
	// does not already run privileged.
	Elevate bool
}

// Command is one executable install command.
type Command struct {
	Argv []string
}

// String renders the command shell-quoted for simulate output.
func (c Command) String() string {
	return shellquote.Join(c.Argv...)
}
