package config

import (
	"time"

	"github.com/heartmarshall/quizforge-backend/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Credit   CreditConfig   `yaml:"credit"`
	Usage    UsageConfig    `yaml:"usage"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// AppName is reported as application_name; a zero StatementTimeout leaves
// the server default in place.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns         int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns         int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AppName          string        `yaml:"app_name"           env:"DATABASE_APP_NAME"           env-default:"quizforge"`
	StatementTimeout time.Duration `yaml:"statement_timeout"  env:"DATABASE_STATEMENT_TIMEOUT"  env-default:"10s"`
}

// AuthConfig holds access-token validation settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"quizforge"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CreditConfig holds generation quota settings.
type CreditConfig struct {
	FreeGenerationQuota       int           `yaml:"free_generation_quota"        env:"CREDIT_FREE_GENERATION_QUOTA" env-default:"10"`
	ProMonthlyGenerationLimit int           `yaml:"pro_monthly_generation_limit" env:"CREDIT_PRO_MONTHLY_LIMIT"     env-default:"200"`
	DefaultPeriod             time.Duration `yaml:"default_period"               env:"CREDIT_DEFAULT_PERIOD"        env-default:"720h"`
	StaleGrace                time.Duration `yaml:"stale_grace"                  env:"CREDIT_STALE_GRACE"           env-default:"24h"`
}

// Policy converts the config section into the value the ledger is built with.
func (c CreditConfig) Policy() domain.CreditPolicy {
	return domain.CreditPolicy{
		FreeGenerationQuota:       c.FreeGenerationQuota,
		ProMonthlyGenerationLimit: c.ProMonthlyGenerationLimit,
		DefaultPeriod:             c.DefaultPeriod,
		StaleGrace:                c.StaleGrace,
	}
}

// UsageConfig holds admin token-usage report settings.
type UsageConfig struct {
	DefaultWindow time.Duration `yaml:"default_window" env:"USAGE_DEFAULT_WINDOW" env-default:"720h"`
	DefaultTop    int           `yaml:"default_top"    env:"USAGE_DEFAULT_TOP"    env-default:"20"`
	MaxTop        int           `yaml:"max_top"        env:"USAGE_MAX_TOP"        env-default:"100"`
}
