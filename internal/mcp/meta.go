package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/slskdtools/slskd-mcp/internal/catalog"
	"github.com/slskdtools/slskd-mcp/internal/common"
)

// issueRepo is where slskd_report_issue points agents.
const issueRepo = "slskdtools/slskd-mcp"

// registerMetaTools registers the tools that exist on every server
// regardless of module filtering or read-only mode: the issue reporter every
// generated description points at, the instance overview, and catalog
// search. Returns the number registered.
func registerMetaTools(s *server.MCPServer, p *Proxy, c *catalog.Catalog, logger *common.Logger) int {
	s.AddTool(mcp.NewTool("slskd_report_issue",
		mcp.WithDescription("Produce a ready-to-run GitHub issue command for a tool that returned an unexpected error. Call this instead of retrying blindly."),
		mcp.WithString("tool_name", mcp.Description("Name of the tool that failed."), mcp.Required()),
		mcp.WithString("error_message", mcp.Description("The error message the tool returned."), mcp.Required()),
	), reportIssueHandler())

	s.AddTool(mcp.NewTool("slskd_get_overview",
		mcp.WithDescription("Get a summary of the slskd instance: server connection state plus current search, download, and upload counts."),
	), overviewHandler(p, logger))

	s.AddTool(mcp.NewTool("slskd_search_tools",
		mcp.WithDescription("Search the available slskd tools by keyword across names and descriptions. Use this to discover the right tool for a task."),
		mcp.WithString("keyword", mcp.Description("Case-insensitive keyword to match."), mcp.Required()),
	), searchToolsHandler(c))

	return 3
}

// reportIssueHandler renders a gh CLI invocation the caller can relay to the
// user, carrying the failing tool and its error.
func reportIssueHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		toolName, _ := argValue(r, "tool_name").(string)
		errorMessage, _ := argValue(r, "error_message").(string)
		if toolName == "" {
			return errorResult("Error: tool_name parameter is required"), nil
		}

		report := fmt.Sprintf(
			"To report this problem, run:\n\n"+
				"gh issue create --repo %s --title %q --body %q\n\n"+
				"Include what you were trying to do and the exact arguments passed to %s.",
			issueRepo,
			"Tool error: "+toolName,
			errorMessage,
			toolName,
		)
		return textResult(report), nil
	}
}

// overviewHandler aggregates the instance state endpoints into one summary
// payload.
func overviewHandler(p *Proxy, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		serverBody, err := p.Get(ctx, "/api/v0/server")
		if err != nil {
			logger.Warn().Str("error", err.Error()).Msg("overview: server state failed")
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		var serverState any
		if err := json.Unmarshal(serverBody, &serverState); err != nil {
			serverState = string(serverBody)
		}

		overview := map[string]any{
			"server":        serverState,
			"searchCount":   countOf(ctx, p, "/api/v0/searches"),
			"downloadCount": countOf(ctx, p, "/api/v0/transfers/downloads"),
			"uploadCount":   countOf(ctx, p, "/api/v0/transfers/uploads"),
		}

		data, err := json.MarshalIndent(overview, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return textResult(string(data)), nil
	}
}

// countOf returns the number of top-level entries a list endpoint reports,
// or zero when the endpoint is unavailable.
func countOf(ctx context.Context, p *Proxy, path string) int {
	body, err := p.Get(ctx, path)
	if err != nil {
		return 0
	}
	var items []any
	if err := json.Unmarshal(body, &items); err != nil {
		return 0
	}
	return len(items)
}

// toolMatch is one slskd_search_tools hit.
type toolMatch struct {
	Name        string `json:"name"`
	Module      string `json:"module"`
	Description string `json:"description"`
}

// searchToolsHandler matches the keyword against catalog tool names and
// descriptions.
func searchToolsHandler(c *catalog.Catalog) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keyword, _ := argValue(r, "keyword").(string)
		if keyword == "" {
			return errorResult("Error: keyword parameter is required"), nil
		}
		needle := strings.ToLower(keyword)

		matches := []toolMatch{}
		for _, t := range c.Tools {
			if strings.Contains(strings.ToLower(t.Name), needle) ||
				strings.Contains(strings.ToLower(t.Description), needle) {
				matches = append(matches, toolMatch{
					Name:        t.Name,
					Module:      t.Module,
					Description: t.Description,
				})
			}
		}

		data, err := json.MarshalIndent(map[string]any{"matches": matches}, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return textResult(string(data)), nil
	}
}
