package cmd

import (
	"context"
	"fmt"

	"digikey-mcp/internal/app"

	"github.com/spf13/cobra"
)

var (
	serveDebug      bool
	serveConfigFile string
	serveEnvFile    string
	serveTransport  string
	serveHost       string
	servePort       int
	serveWatch      bool
)

// serveCmd starts the MCP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the DigiKey MCP server",
	Long: `Starts the MCP server and registers every DigiKey tool.

The default stdio transport is what desktop MCP clients launch. Logs go to
stderr so stdout carries only protocol messages. Use --transport sse or
--transport streamable-http to listen on --host:--port instead.

Configuration is resolved from built-in defaults, the optional --config YAML
file, the .env file (or --env-file) and the process environment, with later
sources taking precedence. Flags override all of them.

The server starts even when CLIENT_ID or CLIENT_SECRET are missing; the
authenticated tools then report the missing credentials when called. With
--watch, edits to the env or config file are picked up without a restart:
credentials and locale are reloaded and the cached token is discarded.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(serveDebug, serveConfigFile, serveEnvFile, GetVersion())
	cfg.Transport = serveTransport
	cfg.Host = serveHost
	cfg.Port = servePort
	cfg.Watch = serveWatch

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Optional YAML configuration file")
	serveCmd.Flags().StringVar(&serveEnvFile, "env-file", "", "dotenv file to read (default .env if present)")
	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "MCP transport: stdio, sse or streamable-http (default from MCP_TRANSPORT, else stdio)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind HTTP transports to (default from MCP_HOST, else localhost)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload credentials when the env or config file changes")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port for HTTP transports (default from MCP_PORT, else 8090)")
}
