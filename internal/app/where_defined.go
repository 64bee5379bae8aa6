package app

import (
	"context"

	"sysdep/internal/core"
)

// WhereDefined names the document whose entry for a key won the view
// merge. Selection happens before OS narrowing, so no OS identity is
// involved.
func (s Service) WhereDefined(ctx context.Context, req WhereDefinedRequest) (WhereDefinedResult, error) {
	docs, err := s.Sources.Load(req.CacheDir)
	if err != nil {
		return WhereDefinedResult{}, err
	}
	view := core.BuildView(docs)
	origin, ok := view.Origin(req.Key)
	if !ok {
		return WhereDefinedResult{}, core.ErrUnresolvableKey(req.Key)
	}
	return WhereDefinedResult{Origin: origin}, nil
}
