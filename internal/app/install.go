package app

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"sysdep/internal/core"
	"sysdep/internal/types"
)

// Install computes the minimal install commands for the requested
// packages and either returns them (simulate) or executes them,
// installer group by installer group in the registry's dependency
// order. A failing command aborts the run; already-executed installs
// are not rolled back.
func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	r, err := s.prepare(ctx, req.CommonRequest, true)
	if err != nil {
		return InstallResult{}, err
	}
	keys, err := r.gatherKeys(req.Packages, req.DependencyTypes, req.IncludeDeps, false)
	if err != nil {
		return InstallResult{}, err
	}
	resolved, err := r.resolver.ResolveMany(keys, r.os)
	if err != nil {
		return InstallResult{}, err
	}

	opts := types.InstallOptions{
		Reinstall: req.Reinstall,
		Quiet:     req.Quiet,
		Elevate:   !s.Privileged(),
	}

	order := s.Registry.InstallOrder(sortedInstallerNames(resolved))
	var groups []InstallGroup
	for _, name := range order {
		installer, ok := s.Installers[name]
		if !ok {
			return InstallResult{}, core.ErrInstallerExecution(name, resolved[name][0], nil)
		}
		tokens := resolved[name]
		if !req.Reinstall {
			installed, err := r.installedFor(ctx, name)
			if err != nil {
				return InstallResult{}, err
			}
			tokens = installer.MissingTokens(tokens, installed)
		}
		if len(tokens) == 0 {
			continue
		}
		sorted := make([]string, len(tokens))
		copy(sorted, tokens)
		sort.Strings(sorted)

		groups = append(groups, InstallGroup{
			Installer: name,
			Tokens:    sorted,
			Commands:  installer.InstallCommands(sorted, opts),
		})
	}

	result := InstallResult{Os: r.os, Groups: groups}
	if req.Simulate {
		return result, nil
	}

	for _, group := range groups {
		for i, cmd := range group.Commands {
			log.Info().Str("installer", string(group.Installer)).Str("command", cmd.String()).Msg("executing install command")
			if err := s.Runner.Run(ctx, cmd); err != nil {
				return InstallResult{}, core.ErrInstallerExecution(group.Installer, group.Tokens[i], err)
			}
		}
	}
	result.Executed = true
	return result, nil
}
