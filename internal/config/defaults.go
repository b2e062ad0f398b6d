package config

import (
	"strings"
	"time"
)

// Defaults applied by [StructuredConfig.applyDefaults].
const (
	DefaultHTTPAddress          = "localhost:8080"
	DefaultTokenIssuer          = "go-quote-keeper"
	DefaultAccessTokenDuration  = 15 * time.Minute
	DefaultRefreshTokenDuration = 7 * 24 * time.Hour
	DefaultRequestTimeout       = 30 * time.Second
	DefaultSubtreeTimeout       = 5 * time.Second
	DefaultTokenCleanupInterval = time.Hour
	DefaultMaxOpenConns         = 10
	DefaultLogLevel             = "debug"
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.SubtreeTimeout == 0 {
		cfg.Server.SubtreeTimeout = DefaultSubtreeTimeout
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.AccessTokenDuration == 0 {
		cfg.App.AccessTokenDuration = DefaultAccessTokenDuration
	}
	if cfg.App.RefreshTokenDuration == 0 {
		cfg.App.RefreshTokenDuration = DefaultRefreshTokenDuration
	}
	if cfg.App.RefreshHashKey == "" {
		cfg.App.RefreshHashKey = cfg.App.RefreshSignKey
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}

	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DriverFromDSN(cfg.Storage.DB.DSN)
	}
	if cfg.Storage.DB.MaxOpenConns == 0 {
		cfg.Storage.DB.MaxOpenConns = DefaultMaxOpenConns
	}

	if cfg.Workers.TokenCleanupInterval == 0 {
		cfg.Workers.TokenCleanupInterval = DefaultTokenCleanupInterval
	}
}

// DriverFromDSN guesses the database driver from a connection string.
// Anything that does not look like a PostgreSQL URL or keyword DSN is
// treated as a SQLite file name.
func DriverFromDSN(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case lower == "":
		return ""
	case strings.HasPrefix(lower, "postgres://"),
		strings.HasPrefix(lower, "postgresql://"),
		strings.Contains(lower, "host="),
		strings.Contains(lower, "dbname="):
		return DriverPostgres
	default:
		return DriverSQLite
	}
}
