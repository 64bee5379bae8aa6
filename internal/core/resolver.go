package core

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"sysdep/internal/types"
)

// Resolver resolves abstract keys against a merged view for a fixed
// OS identity using the registry's applicability tables. It holds no
// mutable state: the same view and identity always yield the same
// result.
type Resolver struct {
	View     *View
	Registry *Registry
}

func NewResolver(view *View, registry *Registry) Resolver {
	return Resolver{View: view, Registry: registry}
}

// Resolve maps one key to its per-installer install tokens for the
// given OS.
//
// Resolution order: the version-qualified entry for the OS, then its
// unqualified entry, then the same two checks against each fallback
// ancestor nearest first, then the any-OS rules. An applicable rule,
// even an empty one, stops the walk; an OS entry whose version
// qualifiers all miss does not.
func (r Resolver) Resolve(key string, os types.OsIdentity) (types.ResolvedInstall, error) {
	rule, ok := r.View.Lookup(key)
	if !ok {
		return nil, ErrUnresolvableKey(key)
	}
	if !r.Registry.SupportsOs(os.Name) {
		return nil, ErrUnsupportedOs(os.Name)
	}

	for _, osName := range r.Registry.FallbackChain(os.Name) {
		osRule, ok := rule[osName]
		if !ok {
			continue
		}
		ruleSet, ok := osRule[os.Version]
		if !ok {
			ruleSet, ok = osRule[types.VersionAny]
		}
		if !ok {
			continue
		}
		log.Debug().
			Str("key", key).
			Str("os", os.String()).
			Str("matched_os", osName).
			Msg("rule matched")
		return r.expand(key, ruleSet, os)
	}
	return nil, ErrUnresolvableKeyForOs(key, os)
}

// expand turns a matched RuleSet into a ResolvedInstall, binding bare
// package lists to the OS default installer and rejecting installer
// names that are not applicable to the OS being resolved.
func (r Resolver) expand(key string, ruleSet types.RuleSet, os types.OsIdentity) (types.ResolvedInstall, error) {
	valid := make(map[types.InstallerName]struct{})
	for _, name := range r.Registry.InstallersFor(os.Name) {
		valid[name] = struct{}{}
	}

	names := make([]types.InstallerName, 0, len(ruleSet))
	for name := range ruleSet {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	resolved := types.ResolvedInstall{}
	for _, name := range names {
		installer := name
		if installer == types.InstallerDefault {
			def, ok := r.Registry.DefaultInstaller(os.Name)
			if !ok {
				return nil, ErrUnsupportedOs(os.Name)
			}
			installer = def
		}
		if _, ok := valid[installer]; !ok {
			origin, _ := r.View.Origin(key)
			detail := fmt.Sprintf("key '%s' names installer '%s' which does not apply to OS '%s'", key, installer, os.Name)
			return nil, ErrMalformedSource(origin, detail, nil)
		}
		resolved.Merge(installer, ruleSet[name].Tokens())
	}
	return resolved, nil
}

// ResolveMany resolves a set of keys and unions the results per
// installer, preserving first-seen token order and deduplicating
// exactly. Any unresolvable key fails the whole call.
func (r Resolver) ResolveMany(keys []string, os types.OsIdentity) (types.ResolvedInstall, error) {
	merged := types.ResolvedInstall{}
	for _, key := range keys {
		resolved, err := r.Resolve(key, os)
		if err != nil {
			return nil, err
		}
		for installer, tokens := range resolved {
			merged.Merge(installer, tokens)
		}
	}
	return merged, nil
}

// MissingTokens filters requested tokens down to those absent from the
// installed set, preserving input order. It never reorders and never
// invents tokens.
func MissingTokens(requested []string, installed types.InstalledSet) []string {
	var missing []string
	for _, token := range requested {
		if !installed.Has(token) {
			missing = append(missing, token)
		}
	}
	return missing
}
