package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sysdep/internal/types"
)

// Check resolves every key declared by the requested packages and
// reports, per installer, the tokens not yet present on the host. A
// package without dependencies (or without a manifest) is trivially
// satisfied. A missing probe binary is fatal for that installer only:
// the remaining installers are still evaluated before the failure is
// reported.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	r, err := s.prepare(ctx, req.CommonRequest, true)
	if err != nil {
		return CheckResult{}, err
	}
	keys, err := r.gatherKeys(req.Packages, req.DependencyTypes, req.IncludeDeps, false)
	if err != nil {
		return CheckResult{}, err
	}
	resolved, err := r.resolver.ResolveMany(keys, r.os)
	if err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{Os: r.os, Missing: map[types.InstallerName][]string{}}
	var unprobeable []string
	for _, name := range sortedInstallerNames(resolved) {
		installed, err := r.installedFor(ctx, name)
		if err != nil {
			if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
				log.Error().Err(err).Str("installer", string(name)).Msg("inspection command unavailable")
				unprobeable = append(unprobeable, string(name))
				continue
			}
			return CheckResult{}, err
		}
		if missing := s.Installers[name].MissingTokens(resolved[name], installed); len(missing) > 0 {
			result.Missing[name] = missing
		}
	}
	if len(unprobeable) > 0 {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("inspection command unavailable for installer(s): " + strings.Join(unprobeable, ", "))
	}
	return result, nil
}
