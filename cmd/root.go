package cmd

import (
	"errors"
	"os"

	"digikey-mcp/internal/config"
	"digikey-mcp/internal/digikey"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfigError indicates missing credentials or invalid configuration.
	ExitCodeConfigError = 2
	// ExitCodeAuthFailed indicates the OAuth token exchange failed.
	ExitCodeAuthFailed = 3
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "digikey-mcp",
	Short: "Expose the DigiKey API as MCP tools",
	Long: `digikey-mcp serves DigiKey product search, pricing, media and order status
as Model Context Protocol tools, plus credential-free helpers that build
FastAdd cart URLs and shareable MyList links.

Credentials are read from CLIENT_ID and CLIENT_SECRET in the environment or
a .env file. USE_SANDBOX=false switches to the production API.`,
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute runs the root command and exits with a code derived from the error.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "digikey-mcp version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps error types to semantic exit codes for scripting.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	if digikey.IsConfigError(err) {
		return ExitCodeConfigError
	}

	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return ExitCodeConfigError
	}

	var validationErrs config.ValidationErrors
	if errors.As(err, &validationErrs) {
		return ExitCodeConfigError
	}

	if digikey.IsAuthError(err) {
		return ExitCodeAuthFailed
	}

	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
