package catalog

// Response shape classifications.
const (
	ResponseArray  = "array"
	ResponsePaging = "paging"
	ResponseObject = "object"
	ResponseNone   = "none"
)

// responseMediaTypes are the JSON-compatible media types inspected, in
// priority order.
var responseMediaTypes = []string{"application/json", "text/json", "text/plain"}

// ResponseTypeOf classifies the success response of an operation as a bare
// array, a paginated envelope (records + totalRecords), a single object, or
// none. Status 200 is preferred, 201 is the fallback.
func ResponseTypeOf(doc Document, op map[string]any) (string, error) {
	responses := getMap(op, "responses")
	success := getMap(responses, "200")
	if len(success) == 0 {
		success = getMap(responses, "201")
	}
	content := getMap(success, "content")

	for _, mediaType := range responseMediaTypes {
		mt, ok := content[mediaType].(map[string]any)
		if !ok {
			continue
		}
		schema := getMap(mt, "schema")
		if ref, ok := schema["$ref"].(string); ok {
			resolved, err := ResolveRef(doc, ref)
			if err != nil {
				return "", err
			}
			schema = resolved
		}
		if getString(schema, "type") == "array" {
			return ResponseArray, nil
		}
		if props, ok := schema["properties"].(map[string]any); ok {
			if _, r := props["records"]; r {
				if _, t := props["totalRecords"]; t {
					return ResponsePaging, nil
				}
			}
			return ResponseObject, nil
		}
		if getString(schema, "type") == TypeObject {
			return ResponseObject, nil
		}
	}
	return ResponseNone, nil
}
