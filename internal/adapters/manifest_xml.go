package adapters

import (
	"encoding/xml"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sysdep/internal/ports"
	"sysdep/internal/types"
)

// ManifestXMLAdapter discovers package.xml manifests in workspace roots
// and extracts their declared dependency keys. Parsed files are cached
// by modification time since the same manifest is consulted by several
// operations within one invocation.
type ManifestXMLAdapter struct {
	mu    sync.Mutex
	cache map[string]manifestCacheEntry
}

func NewManifestXMLAdapter() *ManifestXMLAdapter {
	return &ManifestXMLAdapter{cache: map[string]manifestCacheEntry{}}
}

type packageXML struct {
	Name            string         `xml:"name"`
	Depend          []simpleDepend `xml:"depend"`
	BuildDepend     []simpleDepend `xml:"build_depend"`
	BuildtoolDepend []simpleDepend `xml:"buildtool_depend"`
	ExecDepend      []simpleDepend `xml:"exec_depend"`
	RunDepend       []simpleDepend `xml:"run_depend"`
	TestDepend      []simpleDepend `xml:"test_depend"`
	DocDepend       []simpleDepend `xml:"doc_depend"`
}

type simpleDepend struct {
	Value string `xml:",chardata"`
}

type manifestCacheEntry struct {
	modTime  time.Time
	manifest types.PackageManifest
}

// LoadWorkspace scans the roots for package.xml files, parses them and
// splits each package's dependencies into system keys and
// workspace-local package references.
func (a *ManifestXMLAdapter) LoadWorkspace(roots []string) (map[string]types.PackageManifest, error) {
	var paths []string
	for _, root := range roots {
		found, err := findManifests(root)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}

	manifests := make(map[string]types.PackageManifest, len(paths))
	for _, path := range paths {
		manifest, err := a.loadManifest(path)
		if err != nil {
			return nil, err
		}
		manifests[manifest.Name] = manifest
	}

	// Keys naming other workspace packages are local dependencies, not
	// system packages; resolve them through the workspace instead of a
	// package manager.
	for name, manifest := range manifests {
		var system []types.DeclaredDependency
		var local []string
		seenLocal := map[string]struct{}{}
		for _, dep := range manifest.Dependencies {
			if _, isLocal := manifests[dep.Key]; isLocal {
				if _, dup := seenLocal[dep.Key]; !dup {
					seenLocal[dep.Key] = struct{}{}
					local = append(local, dep.Key)
				}
				continue
			}
			system = append(system, dep)
		}
		manifest.Dependencies = system
		manifest.LocalDepends = local
		manifests[name] = manifest
	}
	return manifests, nil
}

func findManifests(root string) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is empty")
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if shouldSkipWorkspaceDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Base(path) == "package.xml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan workspace").
			WithCause(err)
	}
	return paths, nil
}

func shouldSkipWorkspaceDir(name string) bool {
	switch name {
	case "install", "build", "log", ".git", ".colcon", ".ros", "devel":
		return true
	default:
		return false
	}
}

func (a *ManifestXMLAdapter) loadManifest(path string) (types.PackageManifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.PackageManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to stat manifest: " + path).
			WithCause(err)
	}

	a.mu.Lock()
	cached, hit := a.cache[path]
	a.mu.Unlock()
	if hit && cached.modTime.Equal(info.ModTime()) {
		return cached.manifest, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.PackageManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read manifest: " + path).
			WithCause(err)
	}
	var parsed packageXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return types.PackageManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse manifest: " + path).
			WithCause(err)
	}
	if strings.TrimSpace(parsed.Name) == "" {
		return types.PackageManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest has no package name: " + path)
	}

	manifest := types.PackageManifest{
		Name:         strings.TrimSpace(parsed.Name),
		Path:         path,
		Dependencies: declaredDependencies(parsed),
	}

	a.mu.Lock()
	a.cache[path] = manifestCacheEntry{modTime: info.ModTime(), manifest: manifest}
	a.mu.Unlock()
	return manifest, nil
}

// declaredDependencies flattens the manifest tags into typed keys.
// The plain <depend> tag spans both build and run phases.
func declaredDependencies(parsed packageXML) []types.DeclaredDependency {
	var deps []types.DeclaredDependency
	add := func(entries []simpleDepend, depType types.DependencyType) {
		for _, entry := range entries {
			key := strings.TrimSpace(entry.Value)
			if key == "" {
				continue
			}
			deps = append(deps, types.DeclaredDependency{Key: key, Type: depType})
		}
	}
	add(parsed.Depend, types.DependencyTypeBuild)
	add(parsed.Depend, types.DependencyTypeRun)
	add(parsed.BuildDepend, types.DependencyTypeBuild)
	add(parsed.BuildtoolDepend, types.DependencyTypeBuildtool)
	add(parsed.ExecDepend, types.DependencyTypeRun)
	add(parsed.RunDepend, types.DependencyTypeRun)
	add(parsed.TestDepend, types.DependencyTypeTest)
	add(parsed.DocDepend, types.DependencyTypeDoc)
	return deps
}

var _ ports.ManifestPort = (*ManifestXMLAdapter)(nil)
