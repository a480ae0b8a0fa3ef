package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"digikey-mcp/internal/links"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// newCartCmd builds a FastAdd cart URL offline.
func newCartCmd() *cobra.Command {
	var keepCart bool

	cmd := &cobra.Command{
		Use:   "cart PART:QTY[:REF]...",
		Short: "Print a DigiKey FastAdd URL for the given parts",
		Long: `Builds the same URL as the generate_cart_url tool without contacting DigiKey.
Each argument is a part number and quantity, optionally followed by a
customer reference, separated by colons:

  digikey-mcp cart 296-8875-1-ND:10:U1 1050-ABX00052-ND:1

By default opening the URL replaces the current cart; --keep-cart adds to it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseCartArgs(args)
			if err != nil {
				return err
			}

			link := links.BuildCartURL(lines, !keepCart)
			fmt.Fprintln(cmd.OutOrStdout(), link.URL)
			if link.Warning != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), text.FgYellow.Sprint("Warning: "+link.Warning))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepCart, "keep-cart", false, "Add to the existing cart instead of replacing it")
	return cmd
}

func parseCartArgs(args []string) ([]links.CartLine, error) {
	lines := make([]links.CartLine, 0, len(args))
	for _, arg := range args {
		fields := strings.SplitN(arg, ":", 3)
		if len(fields) < 2 || fields[0] == "" {
			return nil, fmt.Errorf("invalid part %q: expected PART:QTY[:REF]", arg)
		}
		qty, err := strconv.Atoi(fields[1])
		if err != nil || qty < 1 {
			return nil, fmt.Errorf("invalid quantity in %q: must be a positive integer", arg)
		}

		line := links.CartLine{PartNumber: fields[0], Quantity: qty}
		if len(fields) == 3 {
			line.CustomerRef = fields[2]
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func init() {
	rootCmd.AddCommand(newCartCmd())
}
