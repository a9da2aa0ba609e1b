package sheets

import (
	"context"
)

// SheetsAPI defines the interface for interacting with Google Sheets.
// ReadRange and WriteCell depend on this rather than on *Client so they can be tested without the network.
//
// Note on interface{} usage:
// The Google Sheets API (google.golang.org/api/sheets/v4) uses [][]interface{}
// for cell values. Wrap values with NewCell() to read them.
type SheetsAPI interface {
	// ReadSheet reads values from a sheet range.
	// The service omits trailing blank cells in a row and trailing blank rows.
	ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)

	// UpdateRange writes values to a sheet range with RAW value input
	UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
}
