package cmd

import (
	"sheets_rw/internal/sheets"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newWriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write <cell> <value>",
		Short: "Write a value to a single cell, e.g. 'Sheet1!C5' '42'",
		Long: `Writes a value to a single cell. The value is stored exactly as given:
text starting with '=' is not evaluated as a formula and numbers are not reformatted.`,
		Args: cobra.ExactArgs(2),
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

			if err := sheets.WriteCell(ctx, client, config.SpreadsheetID, args[0], args[1]); err != nil {
				return err
			}

			log.Info().
				Str("cell", args[0]).
				Msg("Wrote cell")

			return nil
		},
	}
}
