package google

import (
	"fmt"

	"spese-tracker/internal/core"
	"spese-tracker/internal/sheets/csvfile"
)

// toRow lays an expense out in the same column order as the CSV backend.
func toRow(e core.Expense) []any {
	row := make([]any, 0, csvfile.FieldCount)
	for _, v := range csvfile.Encode(e) {
		row = append(row, v)
	}
	return row
}

// parseRows converts a values matrix (as returned by the Sheets API) into
// expenses. Row numbers passed to skip are 1-based, as in the sheet UI.
func parseRows(values [][]interface{}, skip func(row int, reason error)) []core.Expense {
	out := make([]core.Expense, 0, len(values))
	for i, raw := range values {
		e, err := csvfile.DecodeRow(toStrings(raw))
		if err != nil {
			if skip != nil {
				skip(i+1, err)
			}
			continue
		}
		out = append(out, e)
	}
	return out
}

// toStrings keeps cell text as is. Amount and date parsing tolerate
// surrounding blanks; category and description must survive unchanged.
func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = fmt.Sprint(v)
	}
	return out
}
