package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// GetAccount fetches the trading account.
func (c *Client) GetAccount(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v2/account", nil, &out); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return out, nil
}

// GetClock fetches the market clock.
func (c *Client) GetClock(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/v2/clock", nil, &out); err != nil {
		return nil, fmt.Errorf("get clock: %w", err)
	}
	return out, nil
}

// GetPositions fetches all open positions.
func (c *Client) GetPositions(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.getJSON(ctx, "/v2/positions", nil, &out); err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	return out, nil
}

// GetOrders fetches orders across all pages.
func (c *Client) GetOrders(ctx context.Context, opts OrdersOptions) (*Collection, error) {
	query := url.Values{}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(min(opts.Limit, MaxOrderLimit)))
	}
	if opts.Nested {
		query.Set("nested", "true")
	}
	setWindow(query, opts.After, opts.Until)

	coll, err := c.collectPages(ctx, "/v2/orders", query, opts.HardLimit)
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	return coll, nil
}

// GetActivities fetches account activities across all pages.
func (c *Client) GetActivities(ctx context.Context, opts ActivitiesOptions) (*Collection, error) {
	query := url.Values{}
	if opts.Direction != "" {
		query.Set("direction", opts.Direction)
	}
	if opts.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(min(opts.PageSize, MaxActivityPageSize)))
	}
	if opts.ActivityTypes != "" {
		query.Set("activity_types", opts.ActivityTypes)
	}
	setWindow(query, opts.After, opts.Until)

	coll, err := c.collectPages(ctx, "/v2/account/activities", query, opts.HardLimit)
	if err != nil {
		return nil, fmt.Errorf("get activities: %w", err)
	}
	return coll, nil
}

// GetPortfolioHistory fetches the portfolio history time series.
func (c *Client) GetPortfolioHistory(ctx context.Context, opts HistoryOptions) (map[string]any, error) {
	query := url.Values{}
	if opts.Period != "" {
		query.Set("period", opts.Period)
	}
	if opts.Timeframe != "" {
		query.Set("timeframe", opts.Timeframe)
	}
	query.Set("extended_hours", strconv.FormatBool(opts.ExtendedHours))

	var out map[string]any
	if err := c.getJSON(ctx, "/v2/account/portfolio/history", query, &out); err != nil {
		return nil, fmt.Errorf("get portfolio history: %w", err)
	}
	return out, nil
}

// setWindow adds the after/until time window parameters when set.
func setWindow(query url.Values, after, until time.Time) {
	if !after.IsZero() {
		query.Set("after", after.UTC().Format(time.RFC3339))
	}
	if !until.IsZero() {
		query.Set("until", until.UTC().Format(time.RFC3339))
	}
}
