package app

import (
	"context"
	"sort"
)

// Keys lists the dependency keys declared by the requested packages,
// filtered by dependency type, without resolving them. Unlike check
// and install, an undiscoverable package is an error here: the caller
// asked about that specific package.
func (s Service) Keys(ctx context.Context, req KeysRequest) (KeysResult, error) {
	r, err := s.prepare(ctx, req.CommonRequest, true)
	if err != nil {
		return KeysResult{}, err
	}
	keys, err := r.gatherKeys(req.Packages, req.DependencyTypes, req.IncludeDeps, true)
	if err != nil {
		return KeysResult{}, err
	}
	sort.Strings(keys)
	return KeysResult{Keys: keys}, nil
}
