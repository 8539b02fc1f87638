package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *ExporterConfig) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.MaxAttempts < 1 {
		return errors.New("api.max_attempts must be >= 1")
	}
	if c.API.RetryBackoff < 0 {
		return errors.New("api.retry_backoff must be >= 0")
	}

	if c.Export.OutputDir == "" {
		return errors.New("export.output_dir is required")
	}
	if c.Export.LookbackDays < 0 {
		return errors.New("export.lookback_days must be >= 0")
	}
	if c.Export.Orders.Limit < 1 || c.Export.Orders.Limit > MaxOrderLimit {
		return fmt.Errorf("export.orders.limit must be between 1 and %d, got %d", MaxOrderLimit, c.Export.Orders.Limit)
	}
	if c.Export.Activities.PageSize < 1 || c.Export.Activities.PageSize > MaxActivityPageSize {
		return fmt.Errorf("export.activities.page_size must be between 1 and %d, got %d", MaxActivityPageSize, c.Export.Activities.PageSize)
	}
	if d := c.Export.Activities.Direction; d != "asc" && d != "desc" {
		return fmt.Errorf("export.activities.direction must be asc or desc, got %q", d)
	}

	if c.Archive.Enabled {
		if err := c.Archive.Postgres.validate("archive.postgres"); err != nil {
			return err
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
