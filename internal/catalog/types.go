package catalog

// Param is the flattened representation of one input to one operation.
type Param struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Default     any      `json:"default,omitempty"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
	In          string   `json:"in"` // path, query, body
	Nullable    bool     `json:"nullable,omitempty"`
}

// Tool is one generated tool definition wrapping a single API operation.
type Tool struct {
	Name            string   `json:"name"`
	Method          string   `json:"method"`
	Path            string   `json:"path"`
	Params          []Param  `json:"params"`
	Module          string   `json:"module"`
	IsMutation      bool     `json:"is_mutation"`
	IsList          bool     `json:"is_list"`
	IsArrayBody     bool     `json:"is_array_body"`
	HasBase64Params bool     `json:"has_base64_params"`
	ResponseType    string   `json:"response_type"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags,omitempty"`
}

// Catalog is the assembled output: every tool definition, the module index,
// the total count, and the spec's declared version.
type Catalog struct {
	Tools     []Tool              `json:"tools"`
	Modules   map[string][]string `json:"modules"`
	ToolCount int                 `json:"tool_count"`
	Version   string              `json:"slskd_version"`
}
