package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// WriteJSON writes v pretty-printed to path.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes a table to path. An empty table produces a zero-byte
// file with no header row, so downstream tooling still sees the artifact.
func WriteCSV(path string, table *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if len(table.Rows) == 0 {
		return nil
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.Fields); err != nil {
		return fmt.Errorf("write header %s: %w", path, err)
	}

	record := make([]string, len(table.Fields))
	for _, row := range table.Rows {
		for i, field := range table.Fields {
			record[i] = formatCell(row[field])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// formatCell renders a JSON value for one CSV cell. Nested values are
// re-encoded as JSON; nil becomes an empty cell.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
