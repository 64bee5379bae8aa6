package types

// DeclaredDependency is one abstract dependency key declared by a
// package manifest, tagged with the lifecycle phase that needs it.
type DeclaredDependency struct {
	Key  string
	Type DependencyType
}

// PackageManifest is the engine-facing view of one workspace package:
// its name, the abstract keys it declares, and the names of other
// workspace-local packages it depends on. Local dependencies are kept
// apart from system keys so that include-dependencies expansion can
// walk them without ever asking a package manager for a workspace
// package.
type PackageManifest struct {
	Name         string
	Path         string
	Dependencies []DeclaredDependency
	LocalDepends []string
}

// KeysOf returns the declared keys matching the requested dependency
// types, preserving declaration order and deduplicating. An empty
// filter selects every type.
func (m PackageManifest) KeysOf(filter []DependencyType) []string {
	wanted := make(map[DependencyType]struct{}, len(filter))
	for _, t := range filter {
		wanted[t] = struct{}{}
	}
	seen := make(map[string]struct{})
	var keys []string
	for _, dep := range m.Dependencies {
		if len(wanted) > 0 {
			if _, ok := wanted[dep.Type]; !ok {
				continue
			}
		}
		if _, dup := seen[dep.Key]; dup {
			continue
		}
		seen[dep.Key] = struct{}{}
		keys = append(keys, dep.Key)
	}
	return keys
}
