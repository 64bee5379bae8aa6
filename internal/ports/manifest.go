package ports

import "sysdep/internal/types"

// ManifestPort discovers and parses package manifests in workspace
// roots. The engine consumes manifests as an opaque mapping from
// package name to declared dependency keys.
type ManifestPort interface {
	// LoadWorkspace scans the given roots for package manifests and
	// returns them keyed by package name.
	LoadWorkspace(roots []string) (map[string]types.PackageManifest, error)
}
