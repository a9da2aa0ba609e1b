package sheets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sheets_rw/internal/app"
	"sheets_rw/internal/config"
)

// rangePattern matches A1 notation: <sheet>!<COL><ROW>[:<COL><ROW>]
var rangePattern = regexp.MustCompile(`^(?P<sheet>.+)!(?P<col1>[A-Z]+)(?P<row1>\d+)(?::(?P<col2>[A-Z]+)(?P<row2>\d+))?$`)

// RangeExpression is a parsed A1 range. EndCol and EndRow are zero for a single cell.
type RangeExpression struct {
	Sheet    string
	StartCol string
	StartRow int
	EndCol   string
	EndRow   int
}

// ParseRange parses an A1 range such as "Sheet1!A1:B3" or "Sheet1!C5".
// Rows must lie in 1..config.MaxRows; columns are not bounds checked.
func ParseRange(s string) (RangeExpression, error) {
	match := rangePattern.FindStringSubmatch(s)
	if match == nil {
		return RangeExpression{}, app.NewError(app.KindInvalidRange, fmt.Sprintf("%q is not of the form <sheet>!<COL><ROW>[:<COL><ROW>]", s), nil)
	}

	groups := make(map[string]string, len(match))
	for i, name := range rangePattern.SubexpNames() {
		if name != "" {
			groups[name] = match[i]
		}
	}

	startRow, err := parseRow(groups["row1"], s)
	if err != nil {
		return RangeExpression{}, err
	}

	expr := RangeExpression{
		Sheet:    groups["sheet"],
		StartCol: groups["col1"],
		StartRow: startRow,
	}

	if groups["row2"] != "" {
		endRow, err := parseRow(groups["row2"], s)
		if err != nil {
			return RangeExpression{}, err
		}
		expr.EndCol = groups["col2"]
		expr.EndRow = endRow
	}

	return expr, nil
}

// parseRow converts a row number, rejecting rows outside the sheet grid
func parseRow(row, s string) (int, error) {
	n, err := strconv.Atoi(row)
	if err != nil || n < 1 || n > config.MaxRows {
		return 0, app.NewError(app.KindInvalidRange, fmt.Sprintf("row %s in %q must be between 1 and %d", row, s, config.MaxRows), err)
	}
	return n, nil
}

// HasEnd reports whether the expression has a second cell reference
func (r RangeExpression) HasEnd() bool {
	return r.EndCol != ""
}

// Length is the number of values a read of this range is expected to yield.
// Only the row span is counted, so a multi-column range is treated as a single column.
func (r RangeExpression) Length() int {
	if !r.HasEnd() {
		return 1
	}
	return r.EndRow - r.StartRow + 1
}

// String renders the expression back into A1 notation
func (r RangeExpression) String() string {
	if !r.HasEnd() {
		return fmt.Sprintf("%s!%s%d", r.Sheet, r.StartCol, r.StartRow)
	}
	return fmt.Sprintf("%s!%s%d:%s%d", r.Sheet, r.StartCol, r.StartRow, r.EndCol, r.EndRow)
}

// ColumnIndex converts column letters to a 1-based index: A=1, Z=26, AA=27.
// Returns 0 if letters contains anything other than A-Z.
func ColumnIndex(letters string) int {
	index := 0
	for _, ch := range letters {
		if ch < 'A' || ch > 'Z' {
			return 0
		}
		index = index*26 + int(ch-'A'+1)
	}
	return index
}

// ColumnName converts a 1-based column index to letters. Returns "" for index < 1.
func ColumnName(index int) string {
	var b strings.Builder
	var letters []byte
	for index > 0 {
		index--
		letters = append(letters, byte('A'+index%26))
		index /= 26
	}
	for i := len(letters) - 1; i >= 0; i-- {
		b.WriteByte(letters[i])
	}
	return b.String()
}
