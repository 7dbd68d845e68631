package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// reportIssueNudge is appended to every tool description so agents surface
// unexpected failures instead of retrying blindly.
const reportIssueNudge = "If unexpected errors occur, call slskd_report_issue."

// mutationMethods are the verbs that imply a side-effecting call.
var mutationMethods = map[string]bool{
	"post": true, "put": true, "patch": true, "delete": true,
}

// methodOrder fixes the per-path verb processing order so catalog output is
// reproducible run to run.
var methodOrder = []string{"get", "post", "put", "delete", "patch"}

// Builder drives the compilation pipeline over every operation in a spec
// document. It holds no state across Build calls beyond its configuration.
type Builder struct {
	doc       Document
	skipPaths map[string]bool
}

// NewBuilder creates a Builder for the given spec document.
func NewBuilder(doc Document) *Builder {
	return &Builder{doc: doc, skipPaths: make(map[string]bool)}
}

// SkipPaths excludes paths (non-API endpoints) from generation.
func (b *Builder) SkipPaths(paths ...string) {
	for _, p := range paths {
		b.skipPaths[p] = true
	}
}

// Build compiles the whole spec into a Catalog.
func Build(doc Document) (*Catalog, error) {
	return NewBuilder(doc).Build()
}

// Build walks every (path, method) pair in sorted-path, fixed-verb order and
// assembles the tool collection, then deduplicates names and builds the
// module index.
func (b *Builder) Build() (*Catalog, error) {
	paths := b.doc.Paths()
	sortedPaths := make([]string, 0, len(paths))
	for p := range paths {
		sortedPaths = append(sortedPaths, p)
	}
	sort.Strings(sortedPaths)

	var tools []Tool
	for _, path := range sortedPaths {
		if b.skipPaths[path] {
			continue
		}
		item, _ := paths[path].(map[string]any)
		for _, method := range methodOrder {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			tool, err := b.buildTool(method, path, op)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", strings.ToUpper(method), path, err)
			}
			tools = append(tools, tool)
		}
	}

	deduplicateNames(tools)

	modules := make(map[string][]string)
	for _, t := range tools {
		modules[t.Module] = append(modules[t.Module], t.Name)
	}

	return &Catalog{
		Tools:     tools,
		Modules:   modules,
		ToolCount: len(tools),
		Version:   b.doc.Version(),
	}, nil
}

// buildTool runs the per-operation pipeline: naming, module assignment,
// parameter extraction, response classification, flag computation, and
// description synthesis, applying the correction tables at their fixed
// points.
func (b *Builder) buildTool(method, path string, op map[string]any) (Tool, error) {
	key := operationKey{Method: method, Path: path}

	name := BuildToolName(method, path)
	if override, ok := nameOverrides[key]; ok {
		name = override
	}

	params, err := ParseParameters(b.doc, op, method)
	if err != nil {
		return Tool{}, err
	}
	for i := range params {
		if desc, ok := paramDescriptionOverrides[paramKey{Tool: name, Param: params[i].Name}]; ok {
			params[i].Description = desc
		}
	}

	responseType, err := ResponseTypeOf(b.doc, op)
	if err != nil {
		return Tool{}, err
	}
	if responseType == ResponseNone {
		if override, ok := responseTypeOverrides[key]; ok {
			responseType = override
		}
	}

	hasBase64 := false
	bodyCount := 0
	arrayBody := false
	for _, p := range params {
		if IsBase64Param(p.Name) {
			hasBase64 = true
		}
		if p.In == "body" {
			bodyCount++
			arrayBody = p.Name == "body" && IsArrayType(p.Type)
		}
	}

	var tags []string
	for _, t := range getSlice(op, "tags") {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
		}
	}

	return Tool{
		Name:            name,
		Method:          method,
		Path:            path,
		Params:          params,
		Module:          PathToModule(path),
		IsMutation:      mutationMethods[method],
		IsList:          responseType == ResponseArray || responseType == ResponsePaging,
		IsArrayBody:     bodyCount == 1 && arrayBody,
		HasBase64Params: hasBase64,
		ResponseType:    responseType,
		Description:     buildDescription(method, path, op, responseType, name),
		Tags:            tags,
	}, nil
}

// buildDescription synthesizes the tool description: spec summary, else the
// first sentence of the spec description, else a phrase derived from the
// tool name. Trailing periods are trimmed before suffixing so a description
// never contains two consecutive periods.
func buildDescription(method, path string, op map[string]any, responseType, name string) string {
	doc := getString(op, "summary")
	if doc == "" {
		if d := getString(op, "description"); d != "" {
			doc = strings.SplitN(d, ".", 2)[0]
		}
	}
	if doc == "" {
		parts := strings.Split(strings.TrimPrefix(name, namePrefix), "_")
		verb := parts[0]
		if verb != "" {
			verb = strings.ToUpper(verb[:1]) + verb[1:]
		}
		resource := strings.Join(parts[1:], " ")
		hasID := hasPathParam(path)
		switch {
		case hasID && method == "get":
			doc = "Get " + resource + " by ID"
		case hasID && method == "delete":
			doc = "Delete " + resource + " by ID"
		case hasID && (method == "put" || method == "patch"):
			doc = "Update " + resource + " by ID"
		default:
			doc = verb + " " + resource
		}
	}

	doc = strings.TrimRight(doc, ". \t")
	switch responseType {
	case ResponseArray:
		doc += ". Returns a list"
	case ResponsePaging:
		doc += ". Returns paginated results"
	}
	if enumDoc, ok := responseEnumDocs[name]; ok {
		doc += ". " + strings.TrimRight(enumDoc, ".")
	}
	doc += ". " + reportIssueNudge
	if hint, ok := workflowHints[name]; ok {
		doc += " " + hint
	}
	return doc
}

// deduplicateNames resolves catalog-wide name collisions in two passes:
// first by appending the HTTP verb, then by appending an ordinal for any
// residual collision. Two sequential scans keep the suffixing deterministic.
func deduplicateNames(tools []Tool) {
	seen := make(map[string]int)
	for i := range tools {
		name := tools[i].Name
		if _, ok := seen[name]; ok {
			seen[name]++
			tools[i].Name = name + "_" + tools[i].Method
		} else {
			seen[name] = 1
		}
	}

	final := make(map[string]int)
	for i := range tools {
		name := tools[i].Name
		if _, ok := final[name]; ok {
			final[name]++
			tools[i].Name = fmt.Sprintf("%s_%d", name, final[name])
		} else {
			final[name] = 1
		}
	}
}
