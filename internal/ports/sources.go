package ports

import "sysdep/internal/types"

// SourceCachePort loads the already-materialized dependency-database
// cache into SourceDocuments, in the priority order recorded by the
// cache index. Fetching and freshness of the cache belong to an
// external collaborator; the engine only reads it.
type SourceCachePort interface {
	Load(cacheDir string) ([]types.SourceDocument, error)
}
