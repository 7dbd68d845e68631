package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Semantic parameter type tags. Array types are composed with ArrayOf.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeAny     = "any"
)

// maxSafeInt is the smallest integer magnitude that cannot round-trip
// losslessly through a float64 JSON number.
const maxSafeInt = float64(1 << 53)

// ArrayOf composes an array type tag from an item type tag.
func ArrayOf(item string) string {
	return "array[" + item + "]"
}

// IsArrayType reports whether a type tag is an array tag.
func IsArrayType(t string) bool {
	return strings.HasPrefix(t, "array[") && strings.HasSuffix(t, "]")
}

// ItemType returns the item type of an array tag, or TypeAny.
func ItemType(t string) string {
	if !IsArrayType(t) {
		return TypeAny
	}
	return t[len("array[") : len(t)-1]
}

// TypeOf resolves a (possibly referenced, possibly composed) schema node to
// a semantic type tag. Unrecognized shapes degrade to TypeAny; dangling
// references are errors.
func TypeOf(doc Document, schema map[string]any) (string, error) {
	if len(schema) == 0 {
		return TypeAny, nil
	}

	if ref, ok := schema["$ref"].(string); ok {
		resolved, err := ResolveRef(doc, ref)
		if err != nil {
			return "", err
		}
		return TypeOf(doc, resolved)
	}

	// allOf merges property sets: any object branch makes the whole an
	// object, a lone enum branch degrades to string.
	if branches, ok := schema["allOf"].([]any); ok {
		for _, b := range branches {
			sub, _ := b.(map[string]any)
			if ref, ok := sub["$ref"].(string); ok {
				resolved, err := ResolveRef(doc, ref)
				if err != nil {
					return "", err
				}
				sub = resolved
			}
			if getString(sub, "type") == TypeObject || sub["properties"] != nil {
				return TypeObject, nil
			}
			if sub["enum"] != nil {
				return TypeString, nil
			}
		}
		return TypeObject, nil
	}

	// oneOf/anyOf: first branch with a determinate type wins. Union types
	// are intentionally collapsed to a single call-signature type.
	for _, key := range []string{"oneOf", "anyOf"} {
		branches, ok := schema[key].([]any)
		if !ok {
			continue
		}
		for _, b := range branches {
			sub, _ := b.(map[string]any)
			t, err := TypeOf(doc, sub)
			if err != nil {
				return "", err
			}
			if t != TypeAny {
				return t, nil
			}
		}
		return TypeAny, nil
	}

	if schema["enum"] != nil {
		return TypeString, nil
	}

	switch getString(schema, "type") {
	case "string":
		return TypeString, nil
	case "integer":
		return TypeInteger, nil
	case "number":
		return TypeNumber, nil
	case "boolean":
		return TypeBoolean, nil
	case "array":
		item, err := TypeOf(doc, getMap(schema, "items"))
		if err != nil {
			return "", err
		}
		return ArrayOf(item), nil
	case "object":
		return TypeObject, nil
	}

	if schema["properties"] != nil {
		return TypeObject, nil
	}

	return TypeAny, nil
}

// EnumValues extracts the first non-empty enumeration reachable from the
// schema: directly, through $ref, or through any allOf branch.
func EnumValues(doc Document, schema map[string]any) ([]string, error) {
	if ref, ok := schema["$ref"].(string); ok {
		resolved, err := ResolveRef(doc, ref)
		if err != nil {
			return nil, err
		}
		return EnumValues(doc, resolved)
	}
	if raw, ok := schema["enum"].([]any); ok && len(raw) > 0 {
		vals := make([]string, len(raw))
		for i, v := range raw {
			vals[i] = stringifyValue(v)
		}
		return vals, nil
	}
	if branches, ok := schema["allOf"].([]any); ok {
		for _, b := range branches {
			sub, _ := b.(map[string]any)
			vals, err := EnumValues(doc, sub)
			if err != nil {
				return nil, err
			}
			if len(vals) > 0 {
				return vals, nil
			}
		}
	}
	return nil, nil
}

// stringifyValue renders an enum value for embedding in a description.
// JSON numbers decode as float64; integral values print without a decimal.
func stringifyValue(v any) string {
	if f, ok := v.(float64); ok && f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(v)
}

// sanitizeDefault drops default values that are unsafe boundary integers
// (|v| >= 2^53): they cannot survive a float64 JSON round trip.
func sanitizeDefault(v any) any {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) && math.Abs(n) >= maxSafeInt {
			return nil
		}
	case int:
		if math.Abs(float64(n)) >= maxSafeInt {
			return nil
		}
	case int64:
		if math.Abs(float64(n)) >= maxSafeInt {
			return nil
		}
	}
	return v
}

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// stripHTML removes markup from a spec description and collapses runs of
// whitespace to single spaces.
func stripHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
