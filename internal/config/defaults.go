package config

// File locations used when the environment does not override them
const (
	DefaultCredentialsFile = "credentials.json"
	DefaultTokenFile       = "token.json"
)

// Google Sheets API settings
const (
	// SpreadsheetsScope grants read/write access to all of the user's spreadsheets
	SpreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

	// ValueInputRaw stores input verbatim; formulas and numbers are not interpreted
	ValueInputRaw = "RAW"
)

// MaxRows is the largest row number a range may address. Google Sheets caps a
// spreadsheet at 10 million cells, so no sheet can have more rows than this.
const MaxRows = 10_000_000

// BlankCell stands in for cells the Sheets API omits from a response
const BlankCell = "0"

// ConsentConfig controls the local callback listener used for interactive OAuth consent
type ConsentConfig struct {
	ListenAddress string
	CallbackPath  string
	OpenBrowser   bool
}

// DefaultConsentConfig listens on an ephemeral loopback port
var DefaultConsentConfig = ConsentConfig{
	ListenAddress: "127.0.0.1:0",
	CallbackPath:  "/",
	OpenBrowser:   true,
}
