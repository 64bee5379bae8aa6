package app

import "sysdep/internal/types"

// CommonRequest carries the inputs shared by every operation.
type CommonRequest struct {
	CacheDir        string
	Workspace       []string
	OsOverride      string
	DependencyTypes []types.DependencyType
	IncludeDeps     bool
}

type CheckRequest struct {
	CommonRequest
	Packages []string
}

type CheckResult struct {
	Os      types.OsIdentity
	Missing map[types.InstallerName][]string
}

// Satisfied reports whether every installer's missing set is empty.
func (r CheckResult) Satisfied() bool {
	for _, tokens := range r.Missing {
		if len(tokens) > 0 {
			return false
		}
	}
	return true
}

type InstallRequest struct {
	CommonRequest
	Packages  []string
	Simulate  bool
	Reinstall bool
	Quiet     bool
}

// InstallGroup is the ordered command batch for one installer family.
// Tokens and Commands are index-aligned, both alphabetically sorted.
type InstallGroup struct {
	Installer types.InstallerName
	Tokens    []string
	Commands  []types.Command
}

type InstallResult struct {
	Os       types.OsIdentity
	Groups   []InstallGroup
	Executed bool
}

type KeysRequest struct {
	CommonRequest
	Packages []string
}

type KeysResult struct {
	Keys []string
}

type WhereDefinedRequest struct {
	CacheDir string
	Key      string
}

type WhereDefinedResult struct {
	Origin string
}

type WhatNeedsRequest struct {
	CommonRequest
	Key string
}

type WhatNeedsResult struct {
	Packages []string
}

type SearchRequest struct {
	CommonRequest
	Query string
}

// PackageMatch groups close package tokens under the key that
// resolves to them.
type PackageMatch struct {
	Key    string
	Tokens []string
}

type SearchResult struct {
	Keys     []string
	Packages []PackageMatch
}
