package sheets

import (
	"context"

	"sheets_rw/internal/app"
	"sheets_rw/internal/config"

	"github.com/rs/zerolog/log"
)

// ReadRange reads rng and returns its values flattened in row order, trimmed and lowercased.
// The Sheets API drops trailing blank cells and rows, so missing values are restored as
// config.BlankCell until the result holds at least the range's expected length.
func ReadRange(ctx context.Context, api SheetsAPI, spreadsheetID, rng string) ([]string, error) {
	expr, err := ParseRange(rng)
	if err != nil {
		return nil, err
	}

	rows, err := api.ReadSheet(ctx, spreadsheetID, rng)
	if err != nil {
		return nil, app.NewError(app.KindSheetsAPI, Reason(err), err)
	}

	values := normalizeRows(rows, expr.Length())

	log.Debug().
		Str("spreadsheet_id", spreadsheetID).
		Str("range", rng).
		Int("rows_returned", len(rows)).
		Int("values", len(values)).
		Msg("Read sheet range")

	return values, nil
}

// normalizeRows flattens rows and pads the result with config.BlankCell up to length
func normalizeRows(rows [][]interface{}, length int) []string {
	if len(rows) == 0 {
		rows = [][]interface{}{{config.BlankCell}}
	}

	flat := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			flat = append(flat, config.BlankCell)
			continue
		}
		for _, val := range row {
			flat = append(flat, NewCell(val).Normalized())
		}
	}

	for len(flat) < length {
		flat = append(flat, config.BlankCell)
	}

	return flat
}
