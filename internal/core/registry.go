package core

import (
	"context"
	"sort"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"sysdep/internal/types"
)

// Registry holds the static installer applicability tables: which
// installer families an OS supports, which ancestor OS names are
// consulted when the primary OS has no rule, the default installer a
// bare package list binds to, and the prerequisite relation that fixes
// install ordering between families.
type Registry struct {
	installers map[string][]types.InstallerName
	fallback   map[string][]string
	defaults   map[string]types.InstallerName
	prereqs    map[types.InstallerName][]types.InstallerName
}

var debianFamily = []types.InstallerName{types.InstallerApt, types.InstallerPip, types.InstallerSource}
var fedoraFamily = []types.InstallerName{types.InstallerDnf, types.InstallerPip, types.InstallerSource}

// DefaultRegistry builds the registry for the supported platforms.
// Derivative distributions consult their base, nearest first.
func DefaultRegistry() *Registry {
	r := &Registry{
		installers: map[string][]types.InstallerName{
			"debian":    debianFamily,
			"ubuntu":    debianFamily,
			"linuxmint": debianFamily,
			"pop":       debianFamily,
			"raspbian":  debianFamily,
			"fedora":    fedoraFamily,
			"rhel":      fedoraFamily,
			"almalinux": fedoraFamily,
			"rocky":     fedoraFamily,
		},
		fallback: map[string][]string{
			"ubuntu":    {"debian"},
			"linuxmint": {"ubuntu", "debian"},
			"pop":       {"ubuntu", "debian"},
			"raspbian":  {"debian"},
			"rhel":      {"fedora"},
			"almalinux": {"rhel", "fedora"},
			"rocky":     {"rhel", "fedora"},
		},
		defaults: map[string]types.InstallerName{
			"debian":    types.InstallerApt,
			"ubuntu":    types.InstallerApt,
			"linuxmint": types.InstallerApt,
			"pop":       types.InstallerApt,
			"raspbian":  types.InstallerApt,
			"fedora":    types.InstallerDnf,
			"rhel":      types.InstallerDnf,
			"almalinux": types.InstallerDnf,
			"rocky":     types.InstallerDnf,
		},
		prereqs: map[types.InstallerName][]types.InstallerName{
			types.InstallerPip:    {types.InstallerApt, types.InstallerDnf},
			types.InstallerSource: {types.InstallerApt, types.InstallerDnf},
		},
	}
	r.validate(context.Background())
	return r
}

// validate asserts the static tables are coherent: every OS has a
// registered default that is among its installers, and every fallback
// ancestor is itself a known OS.
func (r *Registry) validate(ctx context.Context) {
	for osName, names := range r.installers {
		assert.NotEmpty(ctx, osName, "registry os name must not be empty")
		def, ok := r.defaults[osName]
		assert.Assert(ctx, ok, "registry os without default installer: "+osName)
		found := false
		for _, name := range names {
			if name == def {
				found = true
			}
		}
		assert.Assert(ctx, found, "default installer not applicable to os: "+osName)
	}
	for osName, chain := range r.fallback {
		_, ok := r.installers[osName]
		assert.Assert(ctx, ok, "fallback declared for unknown os: "+osName)
		for _, parent := range chain {
			_, ok := r.installers[parent]
			assert.Assert(ctx, ok, "fallback ancestor is not a known os: "+parent)
		}
	}
}

// SupportsOs reports whether the OS name is known to the registry.
func (r *Registry) SupportsOs(osName string) bool {
	_, ok := r.installers[osName]
	return ok
}

// InstallersFor returns the ordered installer names applicable to an OS.
func (r *Registry) InstallersFor(osName string) []types.InstallerName {
	return r.installers[osName]
}

// DefaultInstaller returns the installer a bare package list binds to.
func (r *Registry) DefaultInstaller(osName string) (types.InstallerName, bool) {
	name, ok := r.defaults[osName]
	return name, ok
}

// FallbackChain returns the OS names consulted during resolution:
// the OS itself, its declared ancestors nearest first, and finally the
// any-OS marker.
func (r *Registry) FallbackChain(osName string) []string {
	chain := []string{osName}
	chain = append(chain, r.fallback[osName]...)
	return append(chain, types.OsAny)
}

// InstallOrder sorts installer names into the stable order install
// commands must run in: families with fewer prerequisites first,
// alphabetical among equals. The relation is declared statically, not
// discovered, so the order is reproducible.
func (r *Registry) InstallOrder(names []types.InstallerName) []types.InstallerName {
	ordered := make([]types.InstallerName, len(names))
	copy(ordered, names)
	sort.Slice(ordered, func(i, j int) bool {
		ri, rj := len(r.prereqs[ordered[i]]), len(r.prereqs[ordered[j]])
		if ri != rj {
			return ri < rj
		}
		return ordered[i] < ordered[j]
	})
	return ordered
}
