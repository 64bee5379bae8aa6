package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"sysdep/internal/core"
	"sysdep/internal/ports"
	"sysdep/internal/types"
)

// SourceCacheAdapter reads an already-materialized dependency-database
// cache: an index.yaml naming the documents in priority order plus the
// raw document files in the ecosystem's YAML format. Documents are
// consumed unmodified so third-party-authored databases keep working.
type SourceCacheAdapter struct{}

func NewSourceCacheAdapter() SourceCacheAdapter {
	return SourceCacheAdapter{}
}

type cacheIndex struct {
	Sources []cacheIndexEntry `yaml:"sources"`
}

type cacheIndexEntry struct {
	Origin   string `yaml:"origin"`
	File     string `yaml:"file"`
	Required bool   `yaml:"required"`
}

// Load reads the cache index and every listed document. A malformed
// document is skipped with a warning unless the index marks it
// required, in which case loading fails.
func (a SourceCacheAdapter) Load(cacheDir string) ([]types.SourceDocument, error) {
	if strings.TrimSpace(cacheDir) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cache directory is required")
	}
	indexPath := filepath.Join(cacheDir, "index.yaml")
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read cache index: " + indexPath).
			WithCause(err)
	}
	var index cacheIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, core.ErrMalformedSource(indexPath, "index is not valid YAML", err)
	}
	if len(index.Sources) == 0 {
		return nil, core.ErrMalformedSource(indexPath, "index lists no sources", nil)
	}

	var docs []types.SourceDocument
	for _, entry := range index.Sources {
		doc, err := a.loadDocument(cacheDir, entry)
		if err != nil {
			if entry.Required {
				return nil, err
			}
			log.Warn().Err(err).Str("origin", entry.Origin).Msg("skipping malformed source document")
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (a SourceCacheAdapter) loadDocument(cacheDir string, entry cacheIndexEntry) (types.SourceDocument, error) {
	origin := entry.Origin
	if origin == "" {
		origin = entry.File
	}
	path := filepath.Join(cacheDir, entry.File)
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SourceDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read source document: " + path).
			WithCause(err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return types.SourceDocument{}, core.ErrMalformedSource(origin, "document is not a mapping", err)
	}

	doc := types.SourceDocument{Origin: origin, Rules: make(map[string]types.KeyRule, len(raw))}
	for key, value := range raw {
		rule, err := parseKeyRule(origin, key, value)
		if err != nil {
			return types.SourceDocument{}, err
		}
		doc.Rules[key] = rule
	}
	log.Debug().Str("origin", origin).Int("keys", len(doc.Rules)).Msg("source document loaded")
	return doc, nil
}

// parseKeyRule interprets the value of one key: a mapping from OS name
// (or the any-OS marker) to either install data, a version-qualified
// mapping, or an installer-keyed mapping.
func parseKeyRule(origin string, key string, value any) (types.KeyRule, error) {
	osMap, ok := value.(map[string]any)
	if !ok {
		return nil, core.ErrMalformedSource(origin, fmt.Sprintf("key '%s' must map OS names to rules", key), nil)
	}
	rule := make(types.KeyRule, len(osMap))
	for osName, osValue := range osMap {
		osRule, err := parseOSRule(origin, key, osName, osValue)
		if err != nil {
			return nil, err
		}
		rule[osName] = osRule
	}
	return rule, nil
}

func parseOSRule(origin string, key string, osName string, value any) (types.OSRule, error) {
	ctx := fmt.Sprintf("key '%s' os '%s'", key, osName)
	switch typed := value.(type) {
	case nil:
		// A null rule is a deliberate "nothing to install here".
		return types.OSRule{types.VersionAny: types.RuleSet{}}, nil
	case string, []any:
		rule, err := parseInstallerRule(origin, ctx, typed)
		if err != nil {
			return nil, err
		}
		return types.OSRule{types.VersionAny: types.RuleSet{types.InstallerDefault: rule}}, nil
	case map[string]any:
		if isInstallerMap(typed) {
			ruleSet, err := parseRuleSet(origin, ctx, typed)
			if err != nil {
				return nil, err
			}
			return types.OSRule{types.VersionAny: ruleSet}, nil
		}
		osRule := make(types.OSRule, len(typed))
		for version, versionValue := range typed {
			ruleSet, err := parseVersionRule(origin, ctx, version, versionValue)
			if err != nil {
				return nil, err
			}
			osRule[version] = ruleSet
		}
		return osRule, nil
	default:
		return nil, core.ErrMalformedSource(origin, ctx+" has unsupported shape", nil)
	}
}

func parseVersionRule(origin string, ctx string, version string, value any) (types.RuleSet, error) {
	ctx = fmt.Sprintf("%s version '%s'", ctx, version)
	switch typed := value.(type) {
	case nil:
		return types.RuleSet{}, nil
	case string, []any:
		rule, err := parseInstallerRule(origin, ctx, typed)
		if err != nil {
			return nil, err
		}
		return types.RuleSet{types.InstallerDefault: rule}, nil
	case map[string]any:
		if isInstallerMap(typed) {
			return parseRuleSet(origin, ctx, typed)
		}
		return nil, core.ErrMalformedSource(origin, ctx+" mixes installer and version qualifiers", nil)
	default:
		return nil, core.ErrMalformedSource(origin, ctx+" has unsupported shape", nil)
	}
}

func parseRuleSet(origin string, ctx string, value map[string]any) (types.RuleSet, error) {
	ruleSet := make(types.RuleSet, len(value))
	for name, ruleValue := range value {
		installer := types.InstallerName(name)
		rule, err := parseInstallerRule(origin, fmt.Sprintf("%s installer '%s'", ctx, name), ruleValue)
		if err != nil {
			return nil, err
		}
		ruleSet[installer] = rule
	}
	return ruleSet, nil
}

// parseInstallerRule interprets the install data for one installer: a
// scalar or sequence of package tokens, or a structured record with
// packages / uri / script fields. Unknown record fields are ignored to
// stay compatible with documents authored for other consumers.
func parseInstallerRule(origin string, ctx string, value any) (types.InstallerRule, error) {
	switch typed := value.(type) {
	case nil:
		return types.InstallerRule{}, nil
	case string:
		return types.InstallerRule{Packages: strings.Fields(typed)}, nil
	case []any:
		packages, ok := toStrings(typed)
		if !ok {
			return types.InstallerRule{}, core.ErrMalformedSource(origin, ctx+" has a non-string package token", nil)
		}
		return types.InstallerRule{Packages: packages}, nil
	case map[string]any:
		rule := types.InstallerRule{}
		if packages, present := typed["packages"]; present {
			switch p := packages.(type) {
			case string:
				rule.Packages = strings.Fields(p)
			case []any:
				converted, ok := toStrings(p)
				if !ok {
					return types.InstallerRule{}, core.ErrMalformedSource(origin, ctx+" has a non-string package token", nil)
				}
				rule.Packages = converted
			default:
				return types.InstallerRule{}, core.ErrMalformedSource(origin, ctx+" packages field has unsupported shape", nil)
			}
		}
		if uri, ok := typed["uri"].(string); ok {
			rule.URI = uri
		}
		if script, ok := typed["script"].(string); ok {
			rule.Script = script
		}
		return rule, nil
	default:
		return types.InstallerRule{}, core.ErrMalformedSource(origin, ctx+" has unsupported shape", nil)
	}
}

// isInstallerMap reports whether every key of the mapping is a known
// installer name, distinguishing installer-keyed rule mappings from
// version-keyed ones.
func isInstallerMap(value map[string]any) bool {
	if len(value) == 0 {
		return false
	}
	for name := range value {
		if _, ok := types.KnownInstallerNames[types.InstallerName(name)]; !ok {
			return false
		}
	}
	return true
}

func toStrings(values []any) ([]string, bool) {
	out := make([]string, 0, len(values))
	for _, value := range values {
		s, ok := value.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

var _ ports.SourceCachePort = SourceCacheAdapter{}
