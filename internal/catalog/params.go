package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// arrayObjectGuidance steers callers toward sub-resource endpoints when a
// nested collection write fails.
const arrayObjectGuidance = "Pass as JSON array of objects. If creation fails," +
	" manage these via their dedicated sub-resource endpoints instead."

// ParseParameters produces the ordered, typed parameter list for one
// operation: declared path/query parameters first (in spec order), then
// body-derived parameters.
func ParseParameters(doc Document, op map[string]any, method string) ([]Param, error) {
	isUpdate := method == "put" || method == "patch"

	var params []Param
	for _, raw := range getSlice(op, "parameters") {
		decl, _ := raw.(map[string]any)
		schema := getMap(decl, "schema")

		typ, err := TypeOf(doc, schema)
		if err != nil {
			return nil, err
		}
		enum, err := EnumValues(doc, schema)
		if err != nil {
			return nil, err
		}

		required := getBool(decl, "required")
		var def any
		if !required {
			def = sanitizeDefault(schema["default"])
		}

		location := getString(decl, "in")
		if location == "" {
			location = "query"
		}

		params = append(params, Param{
			Name:        getString(decl, "name"),
			Type:        typ,
			Required:    required,
			Default:     def,
			Description: annotateEnum(stripHTML(getString(decl, "description")), enum),
			Enum:        enum,
			In:          location,
			Nullable:    getBool(schema, "nullable"),
		})
	}

	bodySchema := getMap(getMap(getMap(getMap(op, "requestBody"), "content"), "application/json"), "schema")
	if len(bodySchema) == 0 {
		return params, nil
	}

	resolved := bodySchema
	if ref, ok := bodySchema["$ref"].(string); ok {
		var err error
		resolved, err = ResolveRef(doc, ref)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case getString(resolved, "type") == TypeObject || resolved["properties"] != nil || resolved["allOf"] != nil:
		bodyParams, err := flattenObjectSchema(doc, bodySchema, isUpdate)
		if err != nil {
			return nil, err
		}
		declared := make(map[string]bool, len(params))
		for _, p := range params {
			declared[p.Name] = true
		}
		// Declared path/query parameters win on a name collision.
		for _, p := range bodyParams {
			if !declared[p.Name] {
				params = append(params, p)
			}
		}
	case getString(resolved, "type") == "array":
		itemType, err := TypeOf(doc, getMap(resolved, "items"))
		if err != nil {
			return nil, err
		}
		params = append(params, Param{
			Name:        "body",
			Type:        ArrayOf(itemType),
			Required:    true,
			Description: "Request body (array)",
			In:          "body",
		})
	}

	return params, nil
}

// flattenObjectSchema converts an object-shaped request body schema into a
// list of independent top-level parameters. readOnly properties and the
// server-assigned "id" are never accepted as caller input. For update
// operations every field is forced optional with no default so a partial
// update cannot overwrite fields with spec-declared defaults.
func flattenObjectSchema(doc Document, schema map[string]any, isUpdate bool) ([]Param, error) {
	if ref, ok := schema["$ref"].(string); ok {
		resolved, err := ResolveRef(doc, ref)
		if err != nil {
			return nil, err
		}
		schema = resolved
	}

	if branches, ok := schema["allOf"].([]any); ok {
		merged, err := mergeAllOf(doc, branches)
		if err != nil {
			return nil, err
		}
		schema = merged
	}

	properties := getMap(schema, "properties")
	required := make(map[string]bool)
	for _, r := range getSlice(schema, "required") {
		if name, ok := r.(string); ok {
			required[name] = true
		}
	}

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var params []Param
	for _, name := range names {
		prop, _ := properties[name].(map[string]any)
		if getBool(prop, "readOnly") {
			continue
		}
		if name == "id" {
			continue
		}

		typ, err := TypeOf(doc, prop)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		enum, err := EnumValues(doc, prop)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}

		description := annotateEnum(stripHTML(getString(prop, "description")), enum)
		if typ == ArrayOf(TypeObject) {
			description = strings.TrimSpace(description + " " + arrayObjectGuidance)
		}

		isRequired := required[name]
		var def any
		if !isUpdate && !isRequired {
			def = sanitizeDefault(prop["default"])
		}

		params = append(params, Param{
			Name:        name,
			Type:        typ,
			Required:    isRequired && !isUpdate,
			Default:     def,
			Description: description,
			Enum:        enum,
			In:          "body",
			Nullable:    getBool(prop, "nullable"),
		})
	}

	return params, nil
}

// mergeAllOf merges the property sets and required sets of every allOf
// branch, resolving references per branch.
func mergeAllOf(doc Document, branches []any) (map[string]any, error) {
	props := make(map[string]any)
	var required []any
	for _, b := range branches {
		sub, _ := b.(map[string]any)
		if ref, ok := sub["$ref"].(string); ok {
			resolved, err := ResolveRef(doc, ref)
			if err != nil {
				return nil, err
			}
			sub = resolved
		}
		for name, p := range getMap(sub, "properties") {
			props[name] = p
		}
		required = append(required, getSlice(sub, "required")...)
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}, nil
}

// annotateEnum appends enum values to a parameter description in a fixed
// form so callers see the legal values inline.
func annotateEnum(description string, enum []string) string {
	if len(enum) == 0 {
		return description
	}
	joined := strings.Join(enum, ", ")
	if description != "" {
		return fmt.Sprintf("%s (values: %s)", description, joined)
	}
	return "Values: " + joined
}
