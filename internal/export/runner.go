package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/tradeops/alpaca-export/internal/api"
	"github.com/tradeops/alpaca-export/internal/config"
)

// Runner drives a full export: every endpoint fetched in sequence, each
// written as a JSON/CSV artifact pair in a fresh timestamped directory.
// A crash mid-run leaves a partial set of files; each file is
// self-contained, so partial directories stay useful.
type Runner struct {
	cfg    config.ExportConfig
	client *api.Client
	logger *slog.Logger

	now func() time.Time
}

// NewRunner creates a Runner.
func NewRunner(cfg config.ExportConfig, client *api.Client, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:    cfg,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Summary describes one completed export run.
type Summary struct {
	RunID             string `json:"run_id"`
	GeneratedAt       string `json:"export_generated_at"`
	OutputDir         string `json:"output_dir"`
	OrdersRows        int    `json:"orders_rows"`
	ActivitiesRows    int    `json:"activities_rows"`
	PositionsRows     int    `json:"positions_rows"`
	OrdersPartial     bool   `json:"orders_partial"`
	ActivitiesPartial bool   `json:"activities_partial"`
}

// record returns the summary as a generic object for tabulation.
func (s *Summary) record() map[string]any {
	return map[string]any{
		"run_id":              s.RunID,
		"export_generated_at": s.GeneratedAt,
		"output_dir":          s.OutputDir,
		"orders_rows":         float64(s.OrdersRows),
		"activities_rows":     float64(s.ActivitiesRows),
		"positions_rows":      float64(s.PositionsRows),
		"orders_partial":      s.OrdersPartial,
		"activities_partial":  s.ActivitiesPartial,
	}
}

// Run executes the export and returns the run summary. Endpoints are
// fetched strictly in sequence; the first unrecovered fetch error aborts
// the run (files already written stay on disk).
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	dir, err := r.makeExportDir()
	if err != nil {
		return nil, err
	}
	r.logger.Info("export directory created", "dir", dir)

	r.logger.Info("fetching account")
	account, err := r.client.GetAccount(ctx)
	if err != nil {
		return nil, err
	}
	if err := writeArtifacts(dir, "account", account, TabulateOne(account)); err != nil {
		return nil, err
	}

	r.logger.Info("fetching market clock")
	clock, err := r.client.GetClock(ctx)
	if err != nil {
		return nil, err
	}
	if err := writeArtifacts(dir, "clock", clock, TabulateOne(clock)); err != nil {
		return nil, err
	}

	r.logger.Info("fetching positions")
	positions, err := r.client.GetPositions(ctx)
	if err != nil {
		return nil, err
	}
	if err := writeArtifacts(dir, "positions", positions, Tabulate(positions)); err != nil {
		return nil, err
	}

	until := r.now().UTC()
	after := until.AddDate(0, 0, -r.cfg.LookbackDays)

	r.logger.Info("fetching orders",
		"status", r.cfg.Orders.Status,
		"after", after.Format(time.RFC3339),
		"until", until.Format(time.RFC3339),
	)
	orders, err := r.client.GetOrders(ctx, api.OrdersOptions{
		Status: r.cfg.Orders.Status,
		Limit:  r.cfg.Orders.Limit,
		Nested: true, // include legs for multi-leg orders
		After:  after,
		Until:  until,
	})
	if err != nil {
		return nil, err
	}
	if orders.Partial {
		r.logger.Warn("orders collection stopped early", "reason", orders.Reason, "items", orders.Len())
	}
	if err := writeArtifacts(dir, "orders", orders.Items, Tabulate(orders.Items)); err != nil {
		return nil, err
	}

	r.logger.Info("fetching activities",
		"direction", r.cfg.Activities.Direction,
		"types", r.cfg.Activities.ActivityTypes,
	)
	activities, err := r.client.GetActivities(ctx, api.ActivitiesOptions{
		Direction:     r.cfg.Activities.Direction,
		PageSize:      r.cfg.Activities.PageSize,
		ActivityTypes: r.cfg.Activities.ActivityTypes,
		After:         after,
		Until:         until,
	})
	if err != nil {
		return nil, err
	}
	if activities.Partial {
		r.logger.Warn("activities collection stopped early", "reason", activities.Reason, "items", activities.Len())
	}
	if err := writeArtifacts(dir, "activities", activities.Items, Tabulate(activities.Items)); err != nil {
		return nil, err
	}

	r.logger.Info("fetching portfolio history",
		"period", r.cfg.History.Period,
		"timeframe", r.cfg.History.Timeframe,
	)
	history, err := r.client.GetPortfolioHistory(ctx, api.HistoryOptions{
		Period:        r.cfg.History.Period,
		Timeframe:     r.cfg.History.Timeframe,
		ExtendedHours: r.cfg.History.ExtendedHours,
	})
	if err != nil {
		return nil, err
	}
	historyRows := PortfolioHistoryRows(history)
	if err := writeArtifacts(dir, "portfolio_history_raw", history, TabulateOne(history)); err != nil {
		return nil, err
	}
	if err := writeArtifacts(dir, "portfolio_history_rows", historyRows, Tabulate(historyRows)); err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:             uuid.NewString(),
		GeneratedAt:       r.now().UTC().Format(time.RFC3339),
		OutputDir:         dir,
		OrdersRows:        orders.Len(),
		ActivitiesRows:    activities.Len(),
		PositionsRows:     len(positions),
		OrdersPartial:     orders.Partial,
		ActivitiesPartial: activities.Partial,
	}
	if err := writeArtifacts(dir, "summary", summary, TabulateOne(summary.record())); err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *Runner) makeExportDir() (string, error) {
	stamp := r.now().Format("2006-01-02_150405")
	dir := filepath.Join(r.cfg.OutputDir, "alpaca_export_"+stamp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	return dir, nil
}

// writeArtifacts writes the JSON and CSV artifact pair for one endpoint.
func writeArtifacts(dir, name string, raw any, table *Table) error {
	if err := WriteJSON(filepath.Join(dir, name+".json"), raw); err != nil {
		return err
	}
	return WriteCSV(filepath.Join(dir, name+".csv"), table)
}
