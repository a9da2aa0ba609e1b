package sheets

import (
	"fmt"
	"strings"
)

// Cell provides type-safe access to Google Sheets cell values.
// The Google Sheets API returns [][]interface{}, which we cannot change.
type Cell struct {
	raw interface{}
}

// NewCell creates a Cell from a raw interface{} value from Google Sheets API
func NewCell(raw interface{}) Cell {
	return Cell{raw: raw}
}

// String returns the cell value as a string
func (c Cell) String() string {
	if c.raw == nil {
		return ""
	}
	if s, ok := c.raw.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", c.raw)
}

// Normalized returns the trimmed, lowercased cell value
func (c Cell) Normalized() string {
	return strings.ToLower(strings.TrimSpace(c.String()))
}

// IsEmpty returns true if the cell contains nil or empty string
func (c Cell) IsEmpty() bool {
	return c.raw == nil || c.raw == ""
}

// Raw returns the underlying interface{} value for Google Sheets API calls.
// This should only be used at the API boundary.
func (c Cell) Raw() interface{} {
	return c.raw
}
