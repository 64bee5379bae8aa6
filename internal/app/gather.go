package app

import (
	"context"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sysdep/internal/core"
	"sysdep/internal/types"
)

// run is the per-invocation state: the merged view, the target OS and
// the lazily-fetched installed sets. It exists so that check-style
// filtering and command generation within one invocation share a
// single probe per installer.
type run struct {
	service   Service
	view      *core.View
	resolver  core.Resolver
	os        types.OsIdentity
	manifests map[string]types.PackageManifest
	installed map[types.InstallerName]types.InstalledSet
}

// prepare builds the merged view, settles the OS identity and, when
// requested, loads the workspace manifests.
func (s Service) prepare(ctx context.Context, req CommonRequest, needManifests bool) (*run, error) {
	docs, err := s.Sources.Load(req.CacheDir)
	if err != nil {
		return nil, err
	}
	view := core.BuildView(docs)

	var identity types.OsIdentity
	if req.OsOverride != "" {
		identity, err = types.ParseOsIdentity(req.OsOverride)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(err.Error())
		}
	} else {
		identity, err = s.OsDetect.Detect(ctx)
		if err != nil {
			return nil, err
		}
	}
	if !s.Registry.SupportsOs(identity.Name) {
		return nil, core.ErrUnsupportedOs(identity.Name)
	}
	log.Debug().Str("os", identity.String()).Int("keys", view.Len()).Msg("view prepared")

	r := &run{
		service:   s,
		view:      view,
		resolver:  core.NewResolver(view, s.Registry),
		os:        identity,
		installed: map[types.InstallerName]types.InstalledSet{},
	}
	if needManifests {
		manifests, err := s.Manifests.LoadWorkspace(req.Workspace)
		if err != nil {
			return nil, err
		}
		r.manifests = manifests
	}
	return r, nil
}

// installedFor returns the installed set for an installer, probing the
// host at most once per invocation.
func (r *run) installedFor(ctx context.Context, name types.InstallerName) (types.InstalledSet, error) {
	if cached, ok := r.installed[name]; ok {
		return cached, nil
	}
	installer, ok := r.service.Installers[name]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("no installer implementation registered for: " + string(name))
	}
	installed, err := installer.DetectInstalled(ctx)
	if err != nil {
		return nil, err
	}
	r.installed[name] = installed
	return installed, nil
}

// gatherKeys collects the dependency keys declared by the requested
// packages, filtered by dependency type and optionally expanded
// through workspace-local dependencies. With strict set, a package
// that has no manifest is an error; otherwise it contributes nothing,
// which makes it trivially satisfied for check and install.
func (r *run) gatherKeys(packages []string, depTypes []types.DependencyType, includeDeps bool, strict bool) ([]string, error) {
	selected := packages
	if includeDeps {
		selected = r.expandLocalDepends(packages)
	}

	seen := map[string]struct{}{}
	var keys []string
	for _, name := range selected {
		manifest, ok := r.manifests[name]
		if !ok {
			if strict {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg("no manifest found for package '" + name + "'")
			}
			log.Debug().Str("package", name).Msg("package has no manifest, treating as dependency-free")
			continue
		}
		for _, key := range manifest.KeysOf(depTypes) {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// expandLocalDepends closes the package set over workspace-local
// dependencies, breadth first, preserving request order.
func (r *run) expandLocalDepends(packages []string) []string {
	seen := map[string]struct{}{}
	var expanded []string
	queue := append([]string(nil), packages...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		expanded = append(expanded, name)
		if manifest, ok := r.manifests[name]; ok {
			queue = append(queue, manifest.LocalDepends...)
		}
	}
	return expanded
}

func sortedInstallerNames(resolved types.ResolvedInstall) []types.InstallerName {
	names := make([]types.InstallerName, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
