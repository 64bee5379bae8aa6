package app

import (
	"context"
	"sort"
)

// WhatNeeds reverse-indexes the workspace: it returns the packages
// that declare a dependency on the given key, filtered by the
// requested dependency types. An explicit --os override additionally
// verifies the key resolves for that OS.
func (s Service) WhatNeeds(ctx context.Context, req WhatNeedsRequest) (WhatNeedsResult, error) {
	r, err := s.prepare(ctx, req.CommonRequest, true)
	if err != nil {
		return WhatNeedsResult{}, err
	}
	if req.OsOverride != "" {
		if _, err := r.resolver.Resolve(req.Key, r.os); err != nil {
			return WhatNeedsResult{}, err
		}
	}

	var packages []string
	for name, manifest := range r.manifests {
		for _, key := range manifest.KeysOf(req.DependencyTypes) {
			if key == req.Key {
				packages = append(packages, name)
				break
			}
		}
	}
	sort.Strings(packages)
	return WhatNeedsResult{Packages: packages}, nil
}
