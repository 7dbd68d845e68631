package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/slskdtools/slskd-mcp/internal/catalog"
	"github.com/slskdtools/slskd-mcp/internal/common"
	slskdmcp "github.com/slskdtools/slskd-mcp/internal/mcp"
)

func main() {
	configFile := flag.String("config", "slskd-mcp.toml", "Path to config file")
	specFile := flag.String("spec", "", "Path to the slskd OpenAPI document (overrides config)")
	export := flag.String("export", "", "Write the compiled tool catalog as JSON to this path ('-' for stdout) and exit")
	stdio := flag.Bool("stdio", false, "Use stdio transport (for desktop MCP clients)")
	flag.Parse()

	cfg, err := common.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)

	specPath := cfg.Slskd.SpecPath
	if *specFile != "" {
		specPath = *specFile
	}

	doc, err := catalog.Load(specPath)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to load spec")
		os.Exit(1)
	}

	cat, err := catalog.Build(doc)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to build tool catalog")
		os.Exit(1)
	}

	if *export != "" {
		if err := exportCatalog(cat, *export); err != nil {
			logger.Error().Str("error", err.Error()).Msg("failed to export catalog")
			os.Exit(1)
		}
		logger.Info().Int("tools", cat.ToolCount).Str("version", cat.Version).
			Str("path", *export).Msg("exported tool catalog")
		return
	}

	proxy := slskdmcp.NewProxy(cfg.Slskd.URL, cfg.Slskd.APIKey, logger)

	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	opts := slskdmcp.Options{
		Modules:          cfg.MCP.Modules,
		ReadOnly:         cfg.MCP.ReadOnly,
		ConfirmMutations: cfg.MCP.ConfirmMutations,
	}
	slskdmcp.RegisterTools(mcpServer, proxy, cat, opts, logger)

	if *stdio {
		// Stdio transport: reads stdin, writes stdout. Logs go to stderr.
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	logger.Info().Str("port", cfg.Server.Port).Msg("starting MCP streamable HTTP")
	if err := httpServer.Start(":" + cfg.Server.Port); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}

// exportCatalog writes the catalog as pretty JSON, the hand-off format
// consumed by external renderers.
func exportCatalog(cat *catalog.Catalog, path string) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	data = append(data, '\n')
	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
