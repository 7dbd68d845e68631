package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/slskdtools/slskd-mcp/internal/catalog"
	"github.com/slskdtools/slskd-mcp/internal/common"
)

// Options control which catalog tools are exposed and how mutations are
// gated.
type Options struct {
	// Modules restricts registration to the named modules. Empty means all.
	Modules []string
	// ReadOnly excludes mutation tools from registration.
	ReadOnly bool
	// ConfirmMutations adds a confirm argument to every mutation tool and
	// refuses calls that do not set it.
	ConfirmMutations bool
}

// moduleEnabled reports whether a module should be exposed.
func (o Options) moduleEnabled(module string) bool {
	if len(o.Modules) == 0 {
		return true
	}
	for _, m := range o.Modules {
		if m == module {
			return true
		}
	}
	return false
}

// RegisterTools registers catalog tools on the MCP server, wiring each to a
// generic handler that calls the slskd REST API. The meta tools are
// registered first and are never subject to module or read-only gating.
// Returns the total number of tools registered.
func RegisterTools(s *server.MCPServer, p *Proxy, c *catalog.Catalog, opts Options, logger *common.Logger) int {
	count := registerMetaTools(s, p, c, logger)
	for _, t := range c.Tools {
		if !opts.moduleEnabled(t.Module) {
			continue
		}
		if opts.ReadOnly && t.IsMutation {
			continue
		}
		s.AddTool(BuildTool(t, opts), ToolHandler(p, t, opts, logger))
		count++
	}
	logger.Info().Int("tools", count).Int("catalog", c.ToolCount).
		Str("version", c.Version).Msg("registered catalog tools")
	return count
}

// BuildTool converts a catalog tool definition into an mcp.Tool schema.
func BuildTool(t catalog.Tool, opts Options) mcp.Tool {
	toolOpts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, p := range t.Params {
		toolOpts = append(toolOpts, paramOption(p))
	}
	if t.IsMutation && opts.ConfirmMutations {
		toolOpts = append(toolOpts, mcp.WithBoolean("confirm",
			mcp.Description("This call modifies state on the slskd instance. Set true to confirm.")))
	}
	return mcp.NewTool(t.Name, toolOpts...)
}

// paramOption maps a catalog parameter to the appropriate mcp-go option.
func paramOption(p catalog.Param) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch {
	case p.Type == catalog.TypeInteger || p.Type == catalog.TypeNumber:
		return mcp.WithNumber(p.Name, opts...)
	case p.Type == catalog.TypeBoolean:
		return mcp.WithBoolean(p.Name, opts...)
	case catalog.IsArrayType(p.Type):
		opts = append([]mcp.PropertyOption{mcp.WithStringItems()}, opts...)
		return mcp.WithArray(p.Name, opts...)
	default:
		// string, object, any: all passed as string
		return mcp.WithString(p.Name, opts...)
	}
}
