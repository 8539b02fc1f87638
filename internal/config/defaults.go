package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultLiveURL  = "https://api.alpaca.markets"
	DefaultPaperURL = "https://paper-api.alpaca.markets"

	DefaultAPITimeout   = 30 * time.Second
	DefaultMaxAttempts  = 5
	DefaultRetryBackoff = 1 * time.Second

	DefaultOutputDir    = "exports"
	DefaultLookbackDays = 180

	DefaultOrderStatus = "all"
	DefaultOrderLimit  = 500
	MaxOrderLimit      = 500

	DefaultActivityDirection = "desc"
	DefaultActivityPageSize  = 100
	MaxActivityPageSize      = 100

	DefaultHistoryPeriod    = "1A"
	DefaultHistoryTimeframe = "1D"

	DefaultDBPort    = 5432
	DefaultDBSSLMode = "prefer"
	DefaultMaxConns  = 4
	DefaultMinConns  = 1
)

func (c *ExporterConfig) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		if c.API.Paper {
			c.API.BaseURL = DefaultPaperURL
		} else {
			c.API.BaseURL = DefaultLiveURL
		}
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxAttempts == 0 {
		c.API.MaxAttempts = DefaultMaxAttempts
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Export defaults
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = DefaultOutputDir
	}
	if c.Export.LookbackDays == 0 {
		c.Export.LookbackDays = DefaultLookbackDays
	}
	if c.Export.Orders.Status == "" {
		c.Export.Orders.Status = DefaultOrderStatus
	}
	if c.Export.Orders.Limit == 0 {
		c.Export.Orders.Limit = DefaultOrderLimit
	}
	if c.Export.Activities.Direction == "" {
		c.Export.Activities.Direction = DefaultActivityDirection
	}
	if c.Export.Activities.PageSize == 0 {
		c.Export.Activities.PageSize = DefaultActivityPageSize
	}
	if c.Export.History.Period == "" {
		c.Export.History.Period = DefaultHistoryPeriod
	}
	if c.Export.History.Timeframe == "" {
		c.Export.History.Timeframe = DefaultHistoryTimeframe
	}

	// Archive defaults
	applyDBDefaults(&c.Archive.Postgres)
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
