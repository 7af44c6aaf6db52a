package table

import (
	json "github.com/goccy/go-json"
)

// tableJSON is the wire shape for JSON conversion. A struct keeps the
// column list ahead of the rows in the output.
type tableJSON struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// MarshalJSON encodes the table as {"columns": [...], "rows": [[...]]}.
// Column names are always included, synthesized or not.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(tableJSON{
		Columns: t.Columns(),
		Rows:    t.Records(),
	})
}

// UnmarshalJSON decodes a table from {"columns": [...], "rows": [[...]]}.
// The decoded column list counts as an explicit header.
func (t *Table) UnmarshalJSON(data []byte) error {
	var doc tableJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	t.columns = doc.Columns
	if t.columns == nil {
		t.columns = []string{}
	}
	t.records = doc.Rows
	if t.records == nil {
		t.records = make([][]string, 0)
	}
	t.hasHeader = true
	return nil
}
