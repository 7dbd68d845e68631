// Package catalog compiles the slskd OpenAPI specification into a catalog
// of MCP tool definitions. The catalog is a pure, serializable value: the
// MCP runtime registers its tools, and the export command writes it as JSON.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Document is the parsed OpenAPI specification. It is read-only input for
// the whole pipeline.
type Document map[string]any

// Load reads and parses an OpenAPI JSON document from disk.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse spec file %s: %w", path, err)
	}
	return doc, nil
}

// Paths returns the paths mapping of the spec.
func (d Document) Paths() map[string]any {
	return getMap(d, "paths")
}

// Schemas returns the component schemas of the spec.
func (d Document) Schemas() map[string]any {
	return getMap(getMap(d, "components"), "schemas")
}

// Version returns the declared API version, or "unknown".
func (d Document) Version() string {
	if v := getString(getMap(d, "info"), "version"); v != "" {
		return v
	}
	return "unknown"
}

// ResolveRef resolves a JSON pointer of the form "#/a/b/c" against the
// document by sequential mapping lookups. A dangling reference is a spec
// authoring bug and is reported as an error rather than ignored.
func ResolveRef(doc Document, ref string) (map[string]any, error) {
	var node any = map[string]any(doc)
	for _, part := range strings.Split(strings.TrimLeft(ref, "#/"), "/") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unresolvable reference %q: %q is not an object", ref, part)
		}
		node, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("unresolvable reference %q: missing segment %q", ref, part)
		}
	}
	m, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("reference %q does not point to an object", ref)
	}
	return m, nil
}

// --- map access helpers ---

func getMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

func getSlice(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getBool(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}
