package mocks

import (
	"context"
	"errors"
	"fmt"

	"sheets_rw/internal/sheets"
)

// MockSheetsAPI is a test double for sheets.Client
type MockSheetsAPI struct {
	// Responses to return
	ReadSheetResponse [][]interface{}

	// Errors to return
	ReadSheetError   error
	UpdateRangeError error

	// Call tracking
	ReadSheetCalled   bool
	UpdateRangeCalled bool

	// Call parameters tracking
	ReadSheetCalledWith struct {
		SpreadsheetID string
		Range         string
	}
	UpdateRangeCalledWith struct {
		SpreadsheetID string
		Range         string
		Values        [][]interface{}
	}
}

// NewMockSheetsAPI creates a new mock sheets API
func NewMockSheetsAPI() *MockSheetsAPI {
	return &MockSheetsAPI{}
}

func (m *MockSheetsAPI) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	m.ReadSheetCalled = true
	m.ReadSheetCalledWith.SpreadsheetID = spreadsheetID
	m.ReadSheetCalledWith.Range = range_
	return m.ReadSheetResponse, m.ReadSheetError
}

func (m *MockSheetsAPI) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	m.UpdateRangeCalled = true
	m.UpdateRangeCalledWith.SpreadsheetID = spreadsheetID
	m.UpdateRangeCalledWith.Range = range_
	m.UpdateRangeCalledWith.Values = values
	return m.UpdateRangeError
}

// FakeSpreadsheet is an in-memory spreadsheet that answers reads the way the
// Sheets API does: trailing blank cells and trailing blank rows are omitted.
type FakeSpreadsheet struct {
	ID    string
	cells map[string]interface{}
}

// NewFakeSpreadsheet creates an empty in-memory spreadsheet
func NewFakeSpreadsheet(id string) *FakeSpreadsheet {
	return &FakeSpreadsheet{
		ID:    id,
		cells: make(map[string]interface{}),
	}
}

// Set stores a value directly, bypassing UpdateRange
func (f *FakeSpreadsheet) Set(sheet string, col, row int, value interface{}) {
	f.cells[cellKey(sheet, col, row)] = value
}

// Get returns the stored value of a cell, or nil if it is blank
func (f *FakeSpreadsheet) Get(sheet string, col, row int) interface{} {
	return f.cells[cellKey(sheet, col, row)]
}

func (f *FakeSpreadsheet) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	expr, colStart, colEnd, rowEnd, err := f.resolve(spreadsheetID, range_)
	if err != nil {
		return nil, err
	}

	var rows [][]interface{}
	for row := expr.StartRow; row <= rowEnd; row++ {
		var values []interface{}
		for col := colStart; col <= colEnd; col++ {
			values = append(values, f.Get(expr.Sheet, col, row))
		}
		rows = append(rows, trimRow(values))
	}

	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}

	return rows, nil
}

func (f *FakeSpreadsheet) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	expr, colStart, _, _, err := f.resolve(spreadsheetID, range_)
	if err != nil {
		return err
	}

	for r, row := range values {
		for c, value := range row {
			f.Set(expr.Sheet, colStart+c, expr.StartRow+r, value)
		}
	}

	return nil
}

func (f *FakeSpreadsheet) resolve(spreadsheetID, range_ string) (sheets.RangeExpression, int, int, int, error) {
	if spreadsheetID != f.ID {
		return sheets.RangeExpression{}, 0, 0, 0, errors.New("Requested entity was not found.")
	}

	expr, err := sheets.ParseRange(range_)
	if err != nil {
		return sheets.RangeExpression{}, 0, 0, 0, err
	}

	colStart := sheets.ColumnIndex(expr.StartCol)
	colEnd, rowEnd := colStart, expr.StartRow
	if expr.HasEnd() {
		colEnd, rowEnd = sheets.ColumnIndex(expr.EndCol), expr.EndRow
	}

	return expr, colStart, colEnd, rowEnd, nil
}

func trimRow(values []interface{}) []interface{} {
	end := len(values)
	for end > 0 && sheets.NewCell(values[end-1]).IsEmpty() {
		end--
	}

	row := make([]interface{}, 0, end)
	for _, v := range values[:end] {
		if v == nil {
			v = ""
		}
		row = append(row, v)
	}
	return row
}

func cellKey(sheet string, col, row int) string {
	return fmt.Sprintf("%s!%s%d", sheet, sheets.ColumnName(col), row)
}
