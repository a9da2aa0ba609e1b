package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"sheets_rw/internal/sheets"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newReadCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "read <range>",
		Short: "Read an A1 range, e.g. 'Sheet1!A1:A10'",
		Long: `Reads the values in an A1 range and prints them one per line, in row order.
Values are trimmed and lowercased. Blank cells omitted by the API are printed as "0".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(rootFlags)
			if err != nil {
				return err
			}
			if err := config.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := newFactory(config).NewService(ctx)
			if err != nil {
				return err
			}

			values, err := sheets.ReadRange(ctx, client, config.SpreadsheetID, args[0])
			if err != nil {
				return err
			}

			log.Info().
				Str("range", args[0]).
				Int("values", len(values)).
				Msg("Read range")

			return printValues(cmd.OutOrStdout(), values, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the values as a JSON array")

	return cmd
}

func printValues(w io.Writer, values []string, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(values)
	}

	for _, v := range values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}
