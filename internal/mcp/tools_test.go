package mcp

import (
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/slskdtools/slskd-mcp/internal/catalog"
)

func sampleCatalog() *catalog.Catalog {
	tools := []catalog.Tool{
		{
			Name:   "slskd_list_searches",
			Method: "get",
			Path:   "/api/v0/searches",
			Module: "searches",
		},
		{
			Name:       "slskd_create_search",
			Method:     "post",
			Path:       "/api/v0/searches",
			Module:     "searches",
			IsMutation: true,
			Params: []catalog.Param{
				{Name: "searchText", Type: catalog.TypeString, Required: true, In: "body"},
			},
		},
		{
			Name:   "slskd_list_transfers_downloads",
			Method: "get",
			Path:   "/api/v0/transfers/downloads",
			Module: "transfers",
		},
	}
	return &catalog.Catalog{
		Tools:     tools,
		ToolCount: len(tools),
		Version:   "0.21.4",
	}
}

func TestBuildToolSchema(t *testing.T) {
	tool := catalog.Tool{
		Name:        "slskd_create_search",
		Method:      "post",
		Path:        "/api/v0/searches",
		IsMutation:  true,
		Description: "Performs a search.",
		Params: []catalog.Param{
			{Name: "searchText", Type: catalog.TypeString, Required: true, In: "body", Description: "The search query."},
			{Name: "searchTimeout", Type: catalog.TypeInteger, In: "body"},
			{Name: "minimumFileSize", Type: catalog.TypeNumber, In: "body"},
			{Name: "filterResponses", Type: catalog.TypeBoolean, In: "body"},
			{Name: "rooms", Type: "array[string]", In: "body"},
		},
	}

	built := BuildTool(tool, Options{ConfirmMutations: true})

	if built.Name != "slskd_create_search" {
		t.Errorf("Name = %q", built.Name)
	}
	if built.Description != "Performs a search." {
		t.Errorf("Description = %q", built.Description)
	}

	props := built.InputSchema.Properties
	wantTypes := map[string]string{
		"searchText":      "string",
		"searchTimeout":   "number",
		"minimumFileSize": "number",
		"filterResponses": "boolean",
		"rooms":           "array",
		"confirm":         "boolean",
	}
	if len(props) != len(wantTypes) {
		t.Fatalf("got %d properties, want %d: %v", len(props), len(wantTypes), props)
	}
	for name, wantType := range wantTypes {
		prop, ok := props[name].(map[string]any)
		if !ok {
			t.Errorf("property %q missing or wrong shape", name)
			continue
		}
		if prop["type"] != wantType {
			t.Errorf("property %q type = %v, want %q", name, prop["type"], wantType)
		}
	}

	required := built.InputSchema.Required
	if len(required) != 1 || required[0] != "searchText" {
		t.Errorf("Required = %v, want [searchText]", required)
	}
}

func TestBuildToolNoConfirmForReads(t *testing.T) {
	tool := catalog.Tool{Name: "slskd_list_searches", Method: "get", Path: "/api/v0/searches"}
	built := BuildTool(tool, Options{ConfirmMutations: true})
	if _, ok := built.InputSchema.Properties["confirm"]; ok {
		t.Error("confirm property added to a read-only tool")
	}
}

func TestBuildToolNoConfirmWhenDisabled(t *testing.T) {
	tool := catalog.Tool{Name: "slskd_delete_search", Method: "delete", Path: "/api/v0/searches/{id}", IsMutation: true}
	built := BuildTool(tool, Options{ConfirmMutations: false})
	if _, ok := built.InputSchema.Properties["confirm"]; ok {
		t.Error("confirm property added with confirmation disabled")
	}
}

// metaToolNames are always registered regardless of gating options.
var metaToolNames = []string{"slskd_report_issue", "slskd_get_overview", "slskd_search_tools"}

func assertHasTools(t *testing.T, tools []mcpgo.Tool, names ...string) {
	t.Helper()
	present := make(map[string]bool, len(tools))
	for _, tool := range tools {
		present[tool.Name] = true
	}
	for _, name := range names {
		if !present[name] {
			t.Errorf("tools/list missing %q", name)
		}
	}
}

func TestRegisterToolsAll(t *testing.T) {
	s := newTestServer()
	p := NewProxy("http://localhost:5030", "", testLogger())

	count := RegisterTools(s, p, sampleCatalog(), Options{}, testLogger())
	if count != 6 {
		t.Errorf("RegisterTools() = %d, want 3 catalog + 3 meta tools", count)
	}

	tools := listTools(t, s)
	if len(tools) != 6 {
		t.Fatalf("tools/list returned %d tools, want 6", len(tools))
	}
	assertHasTools(t, tools, metaToolNames...)
}

func TestRegisterToolsReadOnly(t *testing.T) {
	s := newTestServer()
	p := NewProxy("http://localhost:5030", "", testLogger())

	count := RegisterTools(s, p, sampleCatalog(), Options{ReadOnly: true}, testLogger())
	if count != 5 {
		t.Errorf("RegisterTools() = %d, want 5 with mutations excluded", count)
	}

	tools := listTools(t, s)
	for _, tool := range tools {
		if tool.Name == "slskd_create_search" {
			t.Error("mutation tool registered in read-only mode")
		}
	}
	// meta tools stay available in read-only mode
	assertHasTools(t, tools, metaToolNames...)
}

func TestRegisterToolsModuleFilter(t *testing.T) {
	s := newTestServer()
	p := NewProxy("http://localhost:5030", "", testLogger())

	count := RegisterTools(s, p, sampleCatalog(), Options{Modules: []string{"transfers"}}, testLogger())
	if count != 4 {
		t.Errorf("RegisterTools() = %d, want 1 catalog + 3 meta tools", count)
	}

	tools := listTools(t, s)
	if len(tools) != 4 {
		t.Fatalf("tools/list returned %d tools, want 4", len(tools))
	}
	for _, tool := range tools {
		if tool.Name == "slskd_list_searches" || tool.Name == "slskd_create_search" {
			t.Errorf("tool %q registered outside the enabled module", tool.Name)
		}
	}
	// meta tools ignore module filtering
	assertHasTools(t, tools, append([]string{"slskd_list_transfers_downloads"}, metaToolNames...)...)
}

func TestOptionsModuleEnabled(t *testing.T) {
	all := Options{}
	if !all.moduleEnabled("searches") || !all.moduleEnabled("anything") {
		t.Error("empty Modules should enable every module")
	}

	scoped := Options{Modules: []string{"searches", "transfers"}}
	if !scoped.moduleEnabled("searches") {
		t.Error("searches should be enabled")
	}
	if scoped.moduleEnabled("rooms") {
		t.Error("rooms should be disabled")
	}
}
