package export

import (
	"sort"
	"time"
)

// Table is a flat, CSV-ready view of a batch of items. Fields is the
// lexicographically sorted union of keys across all items; every row
// carries every field, nil where an item lacked it.
type Table struct {
	Fields []string
	Rows   []map[string]any
}

// Tabulate flattens a batch of items into a Table. The field union is
// computed once for the whole batch so every row has the same shape.
func Tabulate(items []map[string]any) *Table {
	if len(items) == 0 {
		return &Table{}
	}

	union := make(map[string]struct{})
	for _, item := range items {
		for k := range item {
			union[k] = struct{}{}
		}
	}

	fields := make([]string, 0, len(union))
	for k := range union {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row := make(map[string]any, len(fields))
		for _, f := range fields {
			row[f] = item[f] // nil when absent
		}
		rows = append(rows, row)
	}

	return &Table{Fields: fields, Rows: rows}
}

// TabulateOne flattens a single object (account, clock, summary) into a
// one-row table.
func TabulateOne(obj map[string]any) *Table {
	if obj == nil {
		return &Table{}
	}
	return Tabulate([]map[string]any{obj})
}

// PortfolioHistoryRows converts the portfolio history payload's parallel
// arrays into row-wise records, one per timestamp. Arrays shorter than
// the timestamp array yield nil at out-of-range indices rather than an
// error. A payload without a timestamp array yields no rows.
func PortfolioHistoryRows(raw map[string]any) []map[string]any {
	ts, ok := raw["timestamp"].([]any)
	if !ok {
		return nil
	}

	equity, _ := raw["equity"].([]any)
	profitLoss, _ := raw["profit_loss"].([]any)
	profitLossPct, _ := raw["profit_loss_pct"].([]any)

	rows := make([]map[string]any, 0, len(ts))
	for i, t := range ts {
		rows = append(rows, map[string]any{
			"timestamp":       t,
			"datetime_utc":    epochToUTC(t),
			"equity":          arrayAt(equity, i),
			"profit_loss":     arrayAt(profitLoss, i),
			"profit_loss_pct": arrayAt(profitLossPct, i),
			"base_value":      raw["base_value"],
			"timeframe":       raw["timeframe"],
		})
	}
	return rows
}

// arrayAt returns arr[i], or nil when i is out of range.
func arrayAt(arr []any, i int) any {
	if i >= len(arr) {
		return nil
	}
	return arr[i]
}

// epochToUTC formats a Unix-seconds timestamp as RFC 3339 UTC. JSON
// numbers decode as float64; anything else yields nil.
func epochToUTC(v any) any {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return time.Unix(int64(f), 0).UTC().Format(time.RFC3339)
}
