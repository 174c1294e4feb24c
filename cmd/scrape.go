package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Gizmito78/todobiwenger/internal/transfers"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <league>",
	Short: "Scrape one league's transfer listing and print it as JSON",
	Long:  "One-shot scrape, bypassing the HTTP layer. Supported leagues: " + strings.Join(transfers.Leagues(), ", "),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newService(cfg)

		records, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return eris.Wrap(err, "scrape")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}
