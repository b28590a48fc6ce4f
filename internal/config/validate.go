package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := c.Credit.validate(); err != nil {
		return fmt.Errorf("credit: %w", err)
	}

	if err := c.Usage.validate(); err != nil {
		return fmt.Errorf("usage: %w", err)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be in 0..max_conns (got %d, max %d)", d.MinConns, d.MaxConns)
	}
	if d.StatementTimeout < 0 {
		return fmt.Errorf("statement_timeout must be >= 0 (got %v)", d.StatementTimeout)
	}
	return nil
}

func (c *CreditConfig) validate() error {
	if c.FreeGenerationQuota < 0 {
		return fmt.Errorf("free_generation_quota must be >= 0 (got %d)", c.FreeGenerationQuota)
	}
	if c.ProMonthlyGenerationLimit <= 0 {
		return fmt.Errorf("pro_monthly_generation_limit must be > 0 (got %d)", c.ProMonthlyGenerationLimit)
	}
	if c.DefaultPeriod <= 0 {
		return fmt.Errorf("default_period must be > 0 (got %v)", c.DefaultPeriod)
	}
	if c.StaleGrace <= 0 {
		return fmt.Errorf("stale_grace must be > 0 (got %v)", c.StaleGrace)
	}
	return nil
}

func (u *UsageConfig) validate() error {
	if u.DefaultWindow <= 0 {
		return fmt.Errorf("default_window must be > 0 (got %v)", u.DefaultWindow)
	}
	if u.MaxTop <= 0 {
		return fmt.Errorf("max_top must be > 0 (got %d)", u.MaxTop)
	}
	if u.DefaultTop <= 0 || u.DefaultTop > u.MaxTop {
		return fmt.Errorf("default_top must be in 1..%d (got %d)", u.MaxTop, u.DefaultTop)
	}
	return nil
}
