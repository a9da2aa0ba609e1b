package cmd

import (
	"fmt"

	"sheets_rw/internal/app"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorise access to Google Sheets and cache the OAuth token",
		Long: `Runs the authorisation flow ahead of time so later read and write commands
do not need a browser. Service account credentials need no authorisation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(rootFlags)
			if err != nil {
				return err
			}

			ts, err := newFactory(config).TokenSource(cmd.Context())
			if err != nil {
				return err
			}

			if _, err := ts.Token(); err != nil {
				return app.NewError(app.KindSheetsAPI, "", fmt.Errorf("failed to obtain access token: %w", err))
			}

			log.Info().
				Str("credentials", config.CredentialsFile).
				Str("token", config.TokenFile).
				Msg("Authorised")

			return nil
		},
	}
}
