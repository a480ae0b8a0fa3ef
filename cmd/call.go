package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"digikey-mcp/internal/app"
	"digikey-mcp/internal/tools"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	callArgs       string
	callDebug      bool
	callConfigFile string
	callEnvFile    string
	callQuiet      bool
)

// callCmd runs one tool directly, without an MCP client.
var callCmd = &cobra.Command{
	Use:   "call TOOL",
	Short: "Invoke a single tool and print its result",
	Long: `Runs one tool with arguments given as a JSON object and prints the result.
Useful for checking credentials and inspecting raw DigiKey responses:

  digikey-mcp call keyword_search --args '{"keywords":"LM358","limit":3}'
  digikey-mcp call list_orders

Exit status is 2 for missing credentials or invalid configuration, 3 when the
token exchange fails and 1 for any other error.`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func runCall(cmd *cobra.Command, args []string) error {
	toolArgs := map[string]interface{}{}
	if callArgs != "" {
		dec := json.NewDecoder(bytes.NewReader([]byte(callArgs)))
		dec.UseNumber()
		if err := dec.Decode(&toolArgs); err != nil {
			return fmt.Errorf("--args must be a JSON object: %w", err)
		}
	}

	cfg := app.NewConfig(callDebug, callConfigFile, callEnvFile, GetVersion())
	cfg.LogOutput = io.Discard
	if callDebug {
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

	var s *spinner.Spinner
	if !callQuiet && !callDebug {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
		s.Suffix = fmt.Sprintf(" Calling %s...", args[0])
		s.Start()
	}

	result, err := application.Services().Tools.ExecuteTool(ctx, args[0], toolArgs)
	if s != nil {
		if err != nil {
			s.FinalMSG = text.FgRed.Sprintf("%s failed", args[0]) + "\n"
		}
		s.Stop()
	}
	if err != nil {
		return err
	}
	return tools.WriteResult(cmd.OutOrStdout(), result)
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringVar(&callArgs, "args", "", "Tool arguments as a JSON object")
	callCmd.Flags().BoolVar(&callDebug, "debug", false, "Log requests to stderr")
	callCmd.Flags().BoolVar(&callQuiet, "quiet", false, "Do not show a progress spinner")
	callCmd.Flags().StringVar(&callConfigFile, "config", "", "Optional YAML configuration file")
	callCmd.Flags().StringVar(&callEnvFile, "env-file", "", "dotenv file to read (default .env if present)")
}
