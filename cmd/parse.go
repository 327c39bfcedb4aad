package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"item-catalog/feature/items/parser"

	"github.com/spf13/cobra"
)

// parseCmd previews what the parser reads from a dump.
var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an identify dump and print the observations as JSON",
	Long:  `Parses an identify dump (a file, or stdin when no file is given) without touching the catalog.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = os.Stdin
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open dump: %w", err)
			}
			defer f.Close()
			r = f
		}

		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read dump: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(parser.Parse(string(data)))
	},
}

func init() {
	RootCmd.AddCommand(parseCmd)
}
