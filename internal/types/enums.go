package types

// DependencyType classifies why a package declares a dependency key.
// It mirrors the manifest tag the key was extracted from and is used
// to filter which keys are in scope for an operation.
type DependencyType string

const (
	DependencyTypeBuild     DependencyType = "build"
	DependencyTypeBuildtool DependencyType = "buildtool"
	DependencyTypeRun       DependencyType = "run"
	DependencyTypeTest      DependencyType = "test"
	DependencyTypeDoc       DependencyType = "doc"
	DependencyTypeDocBuild  DependencyType = "doc_build"
)

// AllDependencyTypes lists every valid dependency type in a stable order.
var AllDependencyTypes = []DependencyType{
	DependencyTypeBuild,
	DependencyTypeBuildtool,
	DependencyTypeRun,
	DependencyTypeTest,
	DependencyTypeDoc,
	DependencyTypeDocBuild,
}

// InstallerName identifies one package-manager family.
type InstallerName string

const (
	InstallerApt    InstallerName = "apt"
	InstallerDnf    InstallerName = "dnf"
	InstallerPip    InstallerName = "pip"
	InstallerSource InstallerName = "source"

	// InstallerDefault is a parse-time placeholder for bare package
	// lists in a source document. The resolver substitutes the default
	// installer of the OS being resolved, so documents parse the same
	// regardless of target OS.
	InstallerDefault InstallerName = "_default"
)

// KnownInstallerNames is the set of installer names that may appear in
// source documents. The parser uses it to tell an installer-keyed rule
// mapping apart from a version-keyed one.
var KnownInstallerNames = map[InstallerName]struct{}{
	InstallerApt:    {},
	InstallerDnf:    {},
	InstallerPip:    {},
	InstallerSource: {},
}

// OsAny and VersionAny are the reserved wildcard markers in source
// documents: a rule under OsAny applies to every OS that has no more
// specific rule, a rule under VersionAny to every version of its OS.
const (
	OsAny      = "*"
	VersionAny = "*"
)
