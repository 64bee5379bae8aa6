package core

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysdep/internal/types"
)

func testResolver(t *testing.T) Resolver {
	t.Helper()
	docs := []types.SourceDocument{{
		Origin: "https://example.org/base.yaml",
		Rules: map[string]types.KeyRule{
			"curl": {
				"ubuntu": {types.VersionAny: {types.InstallerDefault: {Packages: []string{"curl"}}}},
				"debian": {"squeeze": {types.InstallerDefault: {Packages: []string{"curl"}}}},
			},
			"boost": {
				"ubuntu": {
					"lucid":          {types.InstallerDefault: {Packages: []string{"libboost1.40-all-dev"}}},
					types.VersionAny: {types.InstallerDefault: {Packages: []string{"libboost-all-dev"}}},
				},
				"fedora": {types.VersionAny: {types.InstallerDefault: {Packages: []string{"boost-devel"}}}},
			},
			// Defined only for the fallback ancestor.
			"tinyxml": {
				"debian": {types.VersionAny: {types.InstallerDefault: {Packages: []string{"libtinyxml-dev"}}}},
			},
			// Version-qualified entries that may all miss.
			"eigen": {
				"ubuntu": {"noble": {types.InstallerDefault: {Packages: []string{"libeigen3-dev"}}}},
				"debian": {types.VersionAny: {types.InstallerDefault: {Packages: []string{"libeigen3-dev"}}}},
			},
			// Explicitly empty for ubuntu: satisfied with nothing to do.
			"builtin": {
				"ubuntu": {types.VersionAny: {}},
				"debian": {types.VersionAny: {types.InstallerDefault: {Packages: []string{"should-not-appear"}}}},
			},
			"epydoc": {
				types.OsAny: {types.VersionAny: {types.InstallerPip: {Packages: []string{"epydoc"}}}},
			},
			"tinyxml2": {
				types.OsAny: {types.VersionAny: {types.InstallerSource: {URI: "https://example.org/installers/tinyxml2.sh"}}},
			},
			// Names an installer that never applies to debian-family OSes.
			"broken": {
				"ubuntu": {types.VersionAny: {types.InstallerDnf: {Packages: []string{"whatever"}}}},
			},
		},
	}}
	return NewResolver(BuildView(docs), DefaultRegistry())
}

func TestResolveVersionQualifiedMatch(t *testing.T) {
	r := testResolver(t)

	resolved, err := r.Resolve("boost", types.OsIdentity{Name: "ubuntu", Version: "lucid"})
	require.NoError(t, err)
	assert.Equal(t, types.ResolvedInstall{
		types.InstallerApt: {"libboost1.40-all-dev"},
	}, resolved)
}

func TestResolveFallsBackToUnqualifiedEntry(t *testing.T) {
	r := testResolver(t)

	resolved, err := r.Resolve("boost", types.OsIdentity{Name: "ubuntu", Version: "noble"})
	require.NoError(t, err)
	assert.Equal(t, []string{"libboost-all-dev"}, resolved[types.InstallerApt])
}

func TestResolveWalksOsFallbackChain(t *testing.T) {
	r := testResolver(t)

	// tinyxml is only defined for debian; ubuntu and linuxmint inherit it.
	for _, osName := range []string{"ubuntu", "linuxmint"} {
		resolved, err := r.Resolve("tinyxml", types.OsIdentity{Name: osName, Version: "any"})
		require.NoError(t, err, osName)
		assert.Equal(t, []string{"libtinyxml-dev"}, resolved[types.InstallerApt], osName)
	}
}

func TestResolveVersionMissContinuesFallback(t *testing.T) {
	r := testResolver(t)

	// eigen has only a noble entry for ubuntu; on lucid the walk must
	// continue to the debian ancestor instead of failing.
	resolved, err := r.Resolve("eigen", types.OsIdentity{Name: "ubuntu", Version: "lucid"})
	require.NoError(t, err)
	assert.Equal(t, []string{"libeigen3-dev"}, resolved[types.InstallerApt])
}

func TestResolveEmptyRuleStopsFallback(t *testing.T) {
	r := testResolver(t)

	// An applicable empty rule means "nothing to install" and must shadow
	// the ancestor definition.
	resolved, err := r.Resolve("builtin", types.OsIdentity{Name: "ubuntu", Version: "noble"})
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestResolveAnyOsRule(t *testing.T) {
	r := testResolver(t)

	resolved, err := r.Resolve("epydoc", types.OsIdentity{Name: "fedora", Version: "40"})
	require.NoError(t, err)
	assert.Equal(t, types.ResolvedInstall{types.InstallerPip: {"epydoc"}}, resolved)

	resolved, err = r.Resolve("tinyxml2", types.OsIdentity{Name: "ubuntu", Version: "noble"})
	require.NoError(t, err)
	assert.Equal(t, types.ResolvedInstall{
		types.InstallerSource: {"https://example.org/installers/tinyxml2.sh"},
	}, resolved)
}

func TestResolveDefaultInstallerPerOs(t *testing.T) {
	r := testResolver(t)

	resolved, err := r.Resolve("boost", types.OsIdentity{Name: "fedora", Version: "40"})
	require.NoError(t, err)
	assert.Equal(t, []string{"boost-devel"}, resolved[types.InstallerDnf])
	assert.NotContains(t, resolved, types.InstallerApt)
}

func TestResolveUnknownKey(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve("no-such-key", types.OsIdentity{Name: "ubuntu", Version: "noble"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, errorText(err), "no rule for key 'no-such-key'")
}

func TestResolveKeyUndefinedForOs(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve("curl", types.OsIdentity{Name: "fedora", Version: "40"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, errorText(err), "not resolvable for OS fedora:40")
}

func TestResolveUnsupportedOs(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve("curl", types.OsIdentity{Name: "plan9", Version: "1"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestResolveInapplicableInstallerIsMalformed(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve("broken", types.OsIdentity{Name: "ubuntu", Version: "noble"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, errorText(err), "malformed source document https://example.org/base.yaml")
}

func TestResolveManyDeduplicatesAcrossKeys(t *testing.T) {
	docs := []types.SourceDocument{{
		Origin: "merge.yaml",
		Rules: map[string]types.KeyRule{
			"a": {"ubuntu": {types.VersionAny: {types.InstallerDefault: {Packages: []string{"shared", "only-a"}}}}},
			"b": {"ubuntu": {types.VersionAny: {types.InstallerDefault: {Packages: []string{"only-b", "shared"}}}}},
		},
	}}
	r := NewResolver(BuildView(docs), DefaultRegistry())

	resolved, err := r.ResolveMany([]string{"a", "b"}, types.OsIdentity{Name: "ubuntu", Version: "noble"})
	require.NoError(t, err)
	assert.Equal(t, []string{"shared", "only-a", "only-b"}, resolved[types.InstallerApt])
}

func TestResolveManyFailsOnFirstUnresolvable(t *testing.T) {
	r := testResolver(t)

	_, err := r.ResolveMany([]string{"curl", "no-such-key"}, types.OsIdentity{Name: "ubuntu", Version: "noble"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestResolveIsDeterministic(t *testing.T) {
	r := testResolver(t)
	os := types.OsIdentity{Name: "ubuntu", Version: "lucid"}

	first, err := r.ResolveMany([]string{"boost", "curl", "epydoc"}, os)
	require.NoError(t, err)
	for range 10 {
		again, err := r.ResolveMany([]string{"boost", "curl", "epydoc"}, os)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMissingTokens(t *testing.T) {
	installed := types.InstalledSet{"curl": {}, "git": {}}

	missing := MissingTokens([]string{"zlib", "curl", "cmake"}, installed)
	assert.Equal(t, []string{"zlib", "cmake"}, missing)

	assert.Nil(t, MissingTokens(nil, installed))
	assert.Nil(t, MissingTokens([]string{"curl", "git"}, installed))
}

func errorText(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return builder.Msg
	}
	return err.Error()
}
