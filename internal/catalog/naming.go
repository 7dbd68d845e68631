package catalog

import (
	"regexp"
	"strings"
)

// namePrefix namespaces every generated tool name.
const namePrefix = "slskd_"

// methodVerbs maps HTTP methods to naming verbs. GET is special-cased in
// BuildToolName: "get" for identifier-scoped paths, "list" otherwise.
var methodVerbs = map[string]string{
	"get":    "list",
	"post":   "create",
	"put":    "update",
	"delete": "delete",
	"patch":  "update",
}

// plurals is the curated singular -> plural table for slskd resources.
// "server" is a singleton resource and keeps its form.
var plurals = map[string]string{
	"search":       "searches",
	"conversation": "conversations",
	"transfer":     "transfers",
	"download":     "downloads",
	"upload":       "uploads",
	"room":         "rooms",
	"share":        "shares",
	"user":         "users",
	"file":         "files",
	"event":        "events",
	"log":          "logs",
	"message":      "messages",
	"member":       "members",
	"directory":    "directories",
	"option":       "options",
	"report":       "reports",
	"metric":       "metrics",
	"response":     "responses",
	"server":       "server",
}

var singulars = func() map[string]string {
	m := make(map[string]string, len(plurals))
	for s, p := range plurals {
		m[p] = s
	}
	return m
}()

func pluralize(word string) string {
	if p, ok := plurals[word]; ok {
		return p
	}
	if _, ok := singulars[word]; ok {
		return word
	}
	return word + "s"
}

func singularize(word string) string {
	if s, ok := singulars[word]; ok {
		return s
	}
	if _, ok := plurals[word]; ok {
		return word
	}
	switch {
	case strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ses"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	}
	return word
}

var (
	camelUpperRun   = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	camelBoundary   = regexp.MustCompile(`([a-z\d])([A-Z])`)
	separatorChars  = regexp.MustCompile(`[.\-]`)
	invalidChars    = regexp.MustCompile(`[^a-z0-9_]`)
	underscoreRuns  = regexp.MustCompile(`_+`)
	placeholderMark = "{"
)

func camelToSnake(name string) string {
	name = camelUpperRun.ReplaceAllString(name, "${1}_${2}")
	name = camelBoundary.ReplaceAllString(name, "${1}_${2}")
	return strings.ToLower(name)
}

// sanitizeSegment converts a path segment into identifier-safe words.
func sanitizeSegment(segment string) string {
	name := camelToSnake(segment)
	name = separatorChars.ReplaceAllString(name, "_")
	name = invalidChars.ReplaceAllString(name, "")
	name = underscoreRuns.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// extractPathParts strips the API prefix and returns the literal segments,
// discarding {param} placeholders.
func extractPathParts(path string) []string {
	stripped := false
	for _, prefix := range []string{"/api/v0/", "/api/"} {
		if strings.HasPrefix(path, prefix) {
			path = path[len(prefix):]
			stripped = true
			break
		}
	}
	if !stripped {
		path = strings.TrimLeft(path, "/")
	}

	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" && !strings.HasPrefix(p, placeholderMark) {
			parts = append(parts, p)
		}
	}
	return parts
}

// hasPathParam reports whether the path carries an identifier placeholder.
func hasPathParam(path string) bool {
	for _, p := range strings.Split(path, "/") {
		if strings.HasPrefix(p, placeholderMark) {
			return true
		}
	}
	return false
}

// BuildToolName derives a convention-following identifier for an operation
// from its HTTP method and path, e.g.
//
//	GET    /api/v0/searches             -> slskd_list_searches
//	GET    /api/v0/searches/{id}        -> slskd_get_search
//	POST   /api/v0/searches             -> slskd_create_search
//	DELETE /api/v0/searches/{id}        -> slskd_delete_search
//	GET    /api/v0/transfers/downloads  -> slskd_list_transfers_downloads
func BuildToolName(method, path string) string {
	method = strings.ToLower(method)
	parts := extractPathParts(path)
	hasID := hasPathParam(path)

	verb, ok := methodVerbs[method]
	if !ok {
		verb = method
	}
	if method == "get" {
		if hasID {
			verb = "get"
		} else {
			verb = "list"
		}
	}

	if len(parts) == 0 {
		return namePrefix + verb + "_root"
	}

	clean := make([]string, len(parts))
	for i, p := range parts {
		clean[i] = sanitizeSegment(p)
	}

	// Single-segment paths get singular/plural treatment; multi-segment
	// paths join verbatim.
	if len(clean) == 1 {
		resource := clean[0]
		switch {
		case verb == "list":
			resource = pluralize(resource)
		case hasID || verb == "create":
			resource = singularize(resource)
		}
		return namePrefix + verb + "_" + resource
	}

	return namePrefix + verb + "_" + strings.Join(clean, "_")
}
