package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/slskdtools/slskd-mcp/internal/catalog"
	"github.com/slskdtools/slskd-mcp/internal/common"
)

// textResult wraps plain text in a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}

// errorResult wraps an error message in a tool result flagged as an error.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(message)},
		IsError: true,
	}
}

// ToolHandler creates a handler that routes one catalog tool's calls to the
// slskd REST endpoint it wraps: placeholder substitution (with base64
// encoding where flagged), query assembly, body assembly, and the mutation
// confirmation gate.
func ToolHandler(p *Proxy, t catalog.Tool, opts Options, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := logger.WithCorrelationId(uuid.NewString())
		log.Debug().Str("tool", t.Name).Msg("tool call")

		if t.IsMutation && opts.ConfirmMutations {
			if confirmed, _ := argValue(r, "confirm").(bool); !confirmed {
				return errorResult(fmt.Sprintf(
					"Error: %s modifies state on the slskd instance. Repeat the call with confirm=true to proceed.",
					t.Name)), nil
			}
		}

		path := t.Path
		bodyParams := map[string]any{}
		var rawBody any
		queryParams := url.Values{}

		for _, param := range t.Params {
			val := paramValue(r, param)
			switch param.In {
			case "path":
				strVal := fmt.Sprint(val)
				if val == nil || strVal == "" {
					if param.Required {
						return errorResult(fmt.Sprintf("Error: %s parameter is required", param.Name)), nil
					}
					continue
				}
				if catalog.IsBase64Param(param.Name) {
					strVal = base64.StdEncoding.EncodeToString([]byte(strVal))
				}
				path = strings.ReplaceAll(path, "{"+param.Name+"}", url.PathEscape(strVal))
			case "query":
				if val != nil {
					if strVal := fmt.Sprint(val); strVal != "" {
						queryParams.Set(param.Name, strVal)
					}
				}
			case "body":
				if val == nil {
					if param.Required {
						return errorResult(fmt.Sprintf("Error: %s parameter is required", param.Name)), nil
					}
					continue
				}
				if t.IsArrayBody && param.Name == "body" {
					rawBody = val
				} else {
					bodyParams[param.Name] = val
				}
			}
		}

		if len(queryParams) > 0 {
			path += "?" + queryParams.Encode()
		}

		body := rawBody
		if body == nil && len(bodyParams) > 0 {
			body = bodyParams
		}

		var respBody []byte
		var err error
		switch t.Method {
		case "get":
			respBody, err = p.Get(ctx, path)
		case "post":
			respBody, err = p.Post(ctx, path, body)
		case "put":
			respBody, err = p.Put(ctx, path, body)
		case "patch":
			respBody, err = p.Patch(ctx, path, body)
		case "delete":
			respBody, err = p.Delete(ctx, path)
		default:
			return errorResult(fmt.Sprintf("Error: unsupported method %s", t.Method)), nil
		}

		if err != nil {
			log.Warn().Str("tool", t.Name).Str("error", err.Error()).Msg("tool call failed")
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		if len(respBody) == 0 {
			return textResult("OK"), nil
		}
		return textResult(string(respBody)), nil
	}
}

// paramValue extracts a parameter value from the request arguments, falling
// back to the catalog default when the caller omitted it.
func paramValue(r mcp.CallToolRequest, param catalog.Param) any {
	if v := argValue(r, param.Name); v != nil {
		return v
	}
	return param.Default
}

// argValue returns a raw argument value, or nil when absent or empty.
func argValue(r mcp.CallToolRequest, name string) any {
	args := r.GetArguments()
	if args == nil {
		return nil
	}
	v, ok := args[name]
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil
	}
	return v
}
