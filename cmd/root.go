package cmd

import (
	"os"

	"sheets_rw/internal/app"
	"sheets_rw/internal/auth"

	"github.com/spf13/cobra"
)

// version will be set by main
var version = "dev"

// flags override the environment
type flags struct {
	spreadsheetID   string
	credentialsFile string
	tokenFile       string
}

var rootFlags flags

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sheets_rw",
	Short: "Reads ranges from and writes cells to a Google Sheets spreadsheet",
	Long: `sheets_rw reads an A1 range from a Google Sheets spreadsheet, restoring the
blank cells the API omits as "0", and writes single values to single cells.

Credentials are read from GOOGLE_CREDENTIALS_FILE (an OAuth client or a service
account key). OAuth tokens are cached in GOOGLE_TOKEN_FILE.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
// Every failure is reported through a single error sink before exiting.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "sheets_rw version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		app.Report(app.LogSink{}, err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.spreadsheetID, "spreadsheet", "", "Spreadsheet ID (overrides SPREADSHEET_ID)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.credentialsFile, "credentials", "", "Path to the Google credentials file (overrides GOOGLE_CREDENTIALS_FILE)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.tokenFile, "token", "", "Path to the OAuth token cache (overrides GOOGLE_TOKEN_FILE)")

	rootCmd.AddCommand(newReadCmd())
	rootCmd.AddCommand(newWriteCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// loadConfig merges environment configuration with command line flags
func loadConfig(f flags) (*app.Config, error) {
	config, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}

	if f.spreadsheetID != "" {
		config.SpreadsheetID = f.spreadsheetID
	}
	if f.credentialsFile != "" {
		config.CredentialsFile = f.credentialsFile
	}
	if f.tokenFile != "" {
		config.TokenFile = f.tokenFile
	}

	return config, nil
}

func newFactory(config *app.Config) *auth.Factory {
	return auth.NewFactory(config.CredentialsFile, auth.NewFileTokenStore(config.TokenFile))
}

func exitCode(err error) int {
	switch app.KindOf(err) {
	case app.KindNoCredentials, app.KindInvalidCredentials:
		return 2
	case app.KindInvalidRange:
		return 3
	default:
		return 1
	}
}
