package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tradeops/alpaca-export/internal/api"
	"github.com/tradeops/alpaca-export/internal/auth"
	"github.com/tradeops/alpaca-export/internal/config"
)

// exportTestServer mocks every endpoint the runner fetches. Orders are
// served in two pages to exercise pagination end to end.
func exportTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/v2/account", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "acct-1", "status": "ACTIVE", "buying_power": "10000"}`))
	})
	mux.HandleFunc("/v2/clock", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"is_open": false, "timestamp": "2025-08-20T21:00:00Z"}`))
	})
	mux.HandleFunc("/v2/positions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"symbol": "AAPL", "qty": "10"}, {"symbol": "MSFT", "qty": "3"}]`))
	})
	mux.HandleFunc("/v2/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page_token") == "p2" {
			w.Write([]byte(`{"orders": [{"id": "o3", "symbol": "MSFT"}]}`))
			return
		}
		w.Write([]byte(`{"orders": [{"id": "o1", "symbol": "AAPL"}, {"id": "o2", "symbol": "AAPL"}], "next_page_token": "p2"}`))
	})
	mux.HandleFunc("/v2/account/activities", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/v2/account/portfolio/history", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"timestamp": [1700000000, 1700003600],
			"equity": [100.0, 101.5],
			"profit_loss": [0, 1.5],
			"profit_loss_pct": [0, 0.015],
			"base_value": 100,
			"timeframe": "1D"
		}`))
	})

	return httptest.NewServer(mux)
}

func testRunner(t *testing.T, ts *httptest.Server, outputDir string) *Runner {
	t.Helper()

	var cfg config.ExporterConfig
	cfg.Export.OutputDir = outputDir
	creds := &auth.Credentials{KeyID: "PKTEST", SecretKey: "shh"}
	client := api.NewClient(ts.URL, creds, api.WithRetries(5, time.Millisecond))

	r := NewRunner(cfg.Export, client, nil)
	r.now = func() time.Time {
		return time.Date(2025, 8, 20, 21, 30, 0, 0, time.UTC)
	}
	return r
}

func TestRunnerRun(t *testing.T) {
	ts := exportTestServer(t)
	defer ts.Close()

	outputDir := t.TempDir()
	r := testRunner(t, ts, outputDir)

	summary, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantDir := filepath.Join(outputDir, "alpaca_export_2025-08-20_213000")
	if summary.OutputDir != wantDir {
		t.Errorf("OutputDir = %q, want %q", summary.OutputDir, wantDir)
	}

	if summary.OrdersRows != 3 {
		t.Errorf("OrdersRows = %d, want 3", summary.OrdersRows)
	}
	if summary.ActivitiesRows != 0 {
		t.Errorf("ActivitiesRows = %d, want 0", summary.ActivitiesRows)
	}
	if summary.PositionsRows != 2 {
		t.Errorf("PositionsRows = %d, want 2", summary.PositionsRows)
	}
	if summary.OrdersPartial || summary.ActivitiesPartial {
		t.Error("no collection should be partial")
	}
	if summary.RunID == "" {
		t.Error("RunID is empty")
	}

	// Every endpoint produces a JSON/CSV artifact pair.
	for _, name := range []string{
		"account", "clock", "positions", "orders", "activities",
		"portfolio_history_raw", "portfolio_history_rows", "summary",
	} {
		for _, ext := range []string{".json", ".csv"} {
			if _, err := os.Stat(filepath.Join(wantDir, name+ext)); err != nil {
				t.Errorf("missing artifact %s%s: %v", name, ext, err)
			}
		}
	}

	// Empty activities still produce a zero-byte CSV with no header.
	info, err := os.Stat(filepath.Join(wantDir, "activities.csv"))
	if err != nil {
		t.Fatalf("stat activities.csv: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("activities.csv size = %d, want 0", info.Size())
	}

	// Orders JSON holds all items across pages.
	var orders []map[string]any
	data, err := os.ReadFile(filepath.Join(wantDir, "orders.json"))
	if err != nil {
		t.Fatalf("read orders.json: %v", err)
	}
	if err := json.Unmarshal(data, &orders); err != nil {
		t.Fatalf("parse orders.json: %v", err)
	}
	if len(orders) != 3 {
		t.Errorf("orders.json items = %d, want 3", len(orders))
	}

	// Portfolio history rows carry the derived UTC datetime.
	var rows []map[string]any
	data, err = os.ReadFile(filepath.Join(wantDir, "portfolio_history_rows.json"))
	if err != nil {
		t.Fatalf("read portfolio_history_rows.json: %v", err)
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("parse portfolio_history_rows.json: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("history rows = %d, want 2", len(rows))
	}
	if rows[0]["datetime_utc"] != "2023-11-14T22:13:20Z" {
		t.Errorf("row 0 datetime_utc = %v, want 2023-11-14T22:13:20Z", rows[0]["datetime_utc"])
	}
}

func TestRunnerAbortsOnHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	outputDir := t.TempDir()
	r := testRunner(t, ts, outputDir)

	if _, err := r.Run(context.Background()); err == nil {
		t.Fatal("Run succeeded, want error on 401")
	}

	// The export directory exists but holds no artifacts.
	entries, err := os.ReadDir(filepath.Join(outputDir, "alpaca_export_2025-08-20_213000"))
	if err != nil {
		t.Fatalf("read export dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("artifacts = %d, want 0", len(entries))
	}
}
