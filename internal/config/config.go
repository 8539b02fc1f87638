package config

import "time"

// ExporterConfig is the root configuration for an export run.
type ExporterConfig struct {
	API     APIConfig     `yaml:"api"`
	Export  ExportConfig  `yaml:"export"`
	Archive ArchiveConfig `yaml:"archive"`
}

// APIConfig holds Alpaca trading API settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"` // overrides the live/paper host selection when set
	Paper        bool          `yaml:"paper"`    // use the paper trading host
	KeyID        string        `yaml:"key_id"`
	SecretKey    string        `yaml:"secret_key"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxAttempts  int           `yaml:"max_attempts"`  // total attempts against a rate-limited endpoint
	RetryBackoff time.Duration `yaml:"retry_backoff"` // backoff unit; attempt N waits (1+N) units
}

// ExportConfig holds per-endpoint export settings.
type ExportConfig struct {
	OutputDir    string           `yaml:"output_dir"`
	LookbackDays int              `yaml:"lookback_days"` // orders/activities window ending now
	Orders       OrdersConfig     `yaml:"orders"`
	Activities   ActivitiesConfig `yaml:"activities"`
	History      HistoryConfig    `yaml:"history"`
}

// OrdersConfig holds GET /v2/orders parameters.
type OrdersConfig struct {
	Status string `yaml:"status"` // open, closed, all
	Limit  int    `yaml:"limit"`  // per-page limit, endpoint max 500
}

// ActivitiesConfig holds GET /v2/account/activities parameters.
type ActivitiesConfig struct {
	Direction     string `yaml:"direction"` // asc or desc
	PageSize      int    `yaml:"page_size"` // endpoint max 100
	ActivityTypes string `yaml:"activity_types"`
}

// HistoryConfig holds GET /v2/account/portfolio/history parameters.
type HistoryConfig struct {
	Period        string `yaml:"period"`    // 1D, 1W, 1M, 3M, 6M, 1A, all
	Timeframe     string `yaml:"timeframe"` // 1Min, 5Min, 15Min, 1H, 1D
	ExtendedHours bool   `yaml:"extended_hours"`
}

// ArchiveConfig holds the optional Postgres run-history sink.
type ArchiveConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}
