package sheets

import (
	"context"

	"sheets_rw/internal/app"

	"github.com/rs/zerolog/log"
)

// WriteCell stores value verbatim in cell. The value is never interpreted as a formula.
func WriteCell(ctx context.Context, api SheetsAPI, spreadsheetID, cell, value string) error {
	if _, err := ParseRange(cell); err != nil {
		return err
	}

	values := [][]interface{}{{value}}
	if err := api.UpdateRange(ctx, spreadsheetID, cell, values); err != nil {
		return app.NewError(app.KindSheetsAPI, Reason(err), err)
	}

	log.Debug().
		Str("spreadsheet_id", spreadsheetID).
		Str("cell", cell).
		Msg("Wrote cell")

	return nil
}
