package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "account.json")

	err := WriteJSON(path, map[string]any{"id": "acct-1", "status": "ACTIVE"})
	if err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := "{\n  \"id\": \"acct-1\",\n  \"status\": \"ACTIVE\"\n}\n"
	if string(data) != want {
		t.Errorf("content = %q, want %q", data, want)
	}
}

func TestWriteCSV(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "positions.csv")
		table := Tabulate([]map[string]any{
			{"symbol": "AAPL", "qty": 10.0, "marginable": true},
			{"symbol": "MSFT", "side": "long"},
		})

		if err := WriteCSV(path, table); err != nil {
			t.Fatalf("WriteCSV failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if len(lines) != 3 {
			t.Fatalf("lines = %d, want 3 (header + 2 rows)", len(lines))
		}
		if lines[0] != "marginable,qty,side,symbol" {
			t.Errorf("header = %q, want %q", lines[0], "marginable,qty,side,symbol")
		}
		if lines[1] != "true,10,,AAPL" {
			t.Errorf("row 1 = %q, want %q", lines[1], "true,10,,AAPL")
		}
		if lines[2] != ",,long,MSFT" {
			t.Errorf("row 2 = %q, want %q", lines[2], ",,long,MSFT")
		}
	})

	t.Run("empty table writes zero-byte file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")

		if err := WriteCSV(path, &Table{}); err != nil {
			t.Fatalf("WriteCSV failed: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Size() != 0 {
			t.Errorf("size = %d, want 0 (no header for empty input)", info.Size())
		}
	})

	t.Run("nested values are JSON encoded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "orders.csv")
		table := Tabulate([]map[string]any{
			{"id": "o1", "legs": []any{map[string]any{"symbol": "AAPL"}}},
		})

		if err := WriteCSV(path, table); err != nil {
			t.Fatalf("WriteCSV failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if !strings.Contains(string(data), `"[{""symbol"":""AAPL""}]"`) {
			t.Errorf("content = %q, want JSON-encoded legs cell", data)
		}
	})
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "AAPL", "AAPL"},
		{"bool", true, "true"},
		{"integer-valued float", 500.0, "500"},
		{"fractional float", 0.25, "0.25"},
		{"array", []any{1.0, 2.0}, "[1,2]"},
		{"object", map[string]any{"a": 1.0}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCell(tt.in); got != tt.want {
				t.Errorf("formatCell(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
