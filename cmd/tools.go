package cmd

import (
	"fmt"
	"io"
	"strings"

	"digikey-mcp/internal/digikey"
	"digikey-mcp/internal/tools"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// newToolsCmd lists the tool catalogue without starting a server.
func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the MCP tools this server exposes",
		Long: `Prints every tool with its arguments. Required arguments are marked with *.
Tools marked as needing auth require CLIENT_ID and CLIENT_SECRET.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			renderToolsTable(cmd.OutOrStdout(), tools.NewProvider(nil, nil).GetTools())
		},
	}
}

func renderToolsTable(out io.Writer, catalog []tools.ToolMetadata) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Tool", "Auth", "Arguments", "Description"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Description", WidthMax: 60},
	})

	for _, tool := range catalog {
		auth := "no"
		if _, ok := digikey.LookupEndpoint(tool.Name); ok {
			auth = "yes"
		}
		t.AppendRow(table.Row{tool.Name, auth, formatArgs(tool.Args), tool.Description})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d tools", len(catalog))})
	t.Render()
}

func formatArgs(args []tools.ArgMetadata) string {
	if len(args) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		name := arg.Name
		if arg.Required {
			name += "*"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "\n")
}

func init() {
	rootCmd.AddCommand(newToolsCmd())
}
