package core

import (
	"sort"

	"github.com/rs/zerolog/log"

	"sysdep/internal/types"
)

type viewEntry struct {
	rule   types.KeyRule
	origin string
}

// View is the merged, OS-agnostic lookup table built from the loaded
// source documents. Immutable once built.
type View struct {
	entries map[string]viewEntry
	keys    []string
}

// BuildView merges documents in load order with first-wins semantics:
// the first document defining any rule for a key owns that key
// entirely. Entries for the same key in later documents are ignored,
// never merged field by field, so definitions from different
// authorities cannot be silently combined.
func BuildView(docs []types.SourceDocument) *View {
	view := &View{entries: make(map[string]viewEntry)}
	for _, doc := range docs {
		for key, rule := range doc.Rules {
			if existing, taken := view.entries[key]; taken {
				log.Debug().
					Str("key", key).
					Str("winner", existing.origin).
					Str("ignored", doc.Origin).
					Msg("key already defined by earlier document")
				continue
			}
			view.entries[key] = viewEntry{rule: rule, origin: doc.Origin}
			view.keys = append(view.keys, key)
		}
	}
	sort.Strings(view.keys)
	return view
}

// Lookup returns the winning rule for a key.
func (v *View) Lookup(key string) (types.KeyRule, bool) {
	entry, ok := v.entries[key]
	return entry.rule, ok
}

// Origin returns the identity of the document that won the merge for a
// key. Document selection happens before any OS narrowing, so the
// origin is independent of OS and version.
func (v *View) Origin(key string) (string, bool) {
	entry, ok := v.entries[key]
	return entry.origin, ok
}

// Keys returns every key in the view, sorted.
func (v *View) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Len returns the number of keys in the view.
func (v *View) Len() int {
	return len(v.entries)
}
