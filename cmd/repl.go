package cmd

import (
	"context"
	"io"

	"digikey-mcp/internal/app"
	"digikey-mcp/internal/repl"

	"github.com/spf13/cobra"
)

var (
	replDebug      bool
	replConfigFile string
	replEnvFile    string
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Call tools interactively",
	Long: `Starts an interactive shell in which each line calls one tool:

  digikey» keyword_search {"keywords":"LM358","limit":3}
  digikey» get_product_pricing {"product_number":"296-8875-1-ND"}

TAB completes tool names. Type 'help' for usage and 'exit' or Ctrl+D to quit.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(replDebug, replConfigFile, replEnvFile, GetVersion())
	cfg.LogOutput = io.Discard
	if replDebug {
		cfg.LogOutput = cmd.ErrOrStderr()
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return repl.New(application.Services().Tools, cmd.OutOrStdout()).Run(ctx)
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVar(&replDebug, "debug", false, "Log requests to stderr")
	replCmd.Flags().StringVar(&replConfigFile, "config", "", "Optional YAML configuration file")
	replCmd.Flags().StringVar(&replEnvFile, "env-file", "", "dotenv file to read (default .env if present)")
}
