package catalog

import "strings"

// defaultModule is assigned when no path prefix matches.
const defaultModule = "application"

// modulePrefixes maps API path prefixes to logical modules. Matching is
// longest-prefix; equal-length ties keep the earlier entry.
var modulePrefixes = []struct {
	prefix string
	module string
}{
	{"/api/v0/searches", "searches"},
	{"/api/v0/transfers", "transfers"},
	{"/api/v0/users", "users"},
	{"/api/v0/files", "files"},
	{"/api/v0/conversations", "conversations"},
	{"/api/v0/rooms", "rooms"},
	{"/api/v0/server", "server"},
	{"/api/v0/application", "application"},
	{"/api/v0/options", "options"},
	{"/api/v0/shares", "shares"},
	{"/api/v0/session", "session"},
	{"/api/v0/telemetry", "telemetry"},
	{"/api/v0/relay", "relay"},
	{"/api/v0/events", "events"},
	{"/api/v0/logs", "logs"},
}

// PathToModule buckets an API path into its logical module by longest
// path-prefix match.
func PathToModule(path string) string {
	best := defaultModule
	bestLen := 0
	for _, e := range modulePrefixes {
		if strings.HasPrefix(path, e.prefix) && len(e.prefix) > bestLen {
			best = e.module
			bestLen = len(e.prefix)
		}
	}
	return best
}

// ModuleNames returns every known module name including the default.
func ModuleNames() []string {
	names := make([]string, 0, len(modulePrefixes))
	seen := make(map[string]bool)
	for _, e := range modulePrefixes {
		if !seen[e.module] {
			seen[e.module] = true
			names = append(names, e.module)
		}
	}
	return names
}
