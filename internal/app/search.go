package app

import (
	"context"
	"sort"

	"sysdep/internal/core"
)

// Search finds close matches for a query that may not be an exact key.
// Keys are scored first; an exact key is trivially its own closest
// match. Only when no key qualifies are the package tokens resolvable
// under the requested OS scored, grouped by the key that owns them.
// With no qualifying candidates in either section the query is
// unresolvable.
func (s Service) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	r, err := s.prepare(ctx, req.CommonRequest, false)
	if err != nil {
		return SearchResult{}, err
	}

	if closest := core.RankMatches(req.Query, r.view.Keys()); len(closest) > 0 {
		return SearchResult{Keys: closest}, nil
	}

	owners := map[string][]string{}
	var tokens []string
	for _, key := range r.view.Keys() {
		resolved, err := r.resolver.Resolve(key, r.os)
		if err != nil {
			// Keys without a rule for this OS simply contribute no
			// candidate packages.
			continue
		}
		for _, name := range sortedInstallerNames(resolved) {
			for _, token := range resolved[name] {
				if _, seen := owners[token]; !seen {
					tokens = append(tokens, token)
				}
				owners[token] = appendUnique(owners[token], key)
			}
		}
	}
	sort.Strings(tokens)

	ranked := core.RankMatches(req.Query, tokens)
	if len(ranked) == 0 {
		return SearchResult{}, core.ErrUnresolvableKey(req.Query)
	}

	matchIndex := map[string]int{}
	var matches []PackageMatch
	for _, token := range ranked {
		for _, key := range owners[token] {
			idx, ok := matchIndex[key]
			if !ok {
				idx = len(matches)
				matchIndex[key] = idx
				matches = append(matches, PackageMatch{Key: key})
			}
			matches[idx].Tokens = append(matches[idx].Tokens, token)
		}
	}
	return SearchResult{Packages: matches}, nil
}

func appendUnique(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}
