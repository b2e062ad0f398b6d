package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client defaults applied by [ClientConfig.applyDefaults].
const (
	DefaultClientServerURL      = "http://localhost:8080"
	DefaultClientRequestTimeout = 15 * time.Second
	DefaultClientLogLevel       = "warn"
	clientTokenFileName         = "token.json"
	clientConfigDirName         = "go-quote-keeper"
)

// ErrInvalidClientConfigs indicates an unusable server URL or token file path.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

// ClientConfig holds the settings of the command-line client.
type ClientConfig struct {
	// ServerURL is the base URL of the quote keeper API. A bare "host:port"
	// is accepted and gets an http:// scheme.
	// Env: CLIENT_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout bounds every outbound request.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenFile is where the token pair is kept between invocations.
	// Env: CLIENT_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE"`

	// LogLevel is the zerolog level of the diagnostics written to stderr.
	// Env: CLIENT_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// clientEnv carries the CLIENT_ prefix for parseEnv.
type clientEnv struct {
	Client ClientConfig `envPrefix:"CLIENT_"`
}

// GetClientConfig reads the client configuration from a .env file and the
// environment, fills in defaults and validates the result.
func GetClientConfig() (*ClientConfig, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	var e clientEnv
	if err := parseEnv(&e); err != nil {
		return nil, err
	}

	cfg := &e.Client
	cfg.applyDefaults()
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultClientServerURL
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultClientRequestTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultClientLogLevel
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile()
	}
}

// Normalize validates the config and rewrites ServerURL into its canonical
// form. It is called again after command-line flags override fields.
func (cfg *ClientConfig) Normalize() error {
	var errs []error

	serverURL, err := NormalizeBaseURL(cfg.ServerURL)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: server url: %w", ErrInvalidClientConfigs, err))
	} else {
		cfg.ServerURL = serverURL
	}

	if cfg.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: negative request timeout", ErrInvalidClientConfigs))
	}
	if strings.TrimSpace(cfg.TokenFile) == "" {
		errs = append(errs, fmt.Errorf("%w: token file path is empty", ErrInvalidClientConfigs))
	}

	return errors.Join(errs...)
}

// NormalizeBaseURL turns raw into "scheme://host[/path]" without a trailing
// slash.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("address must include host")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, clientConfigDirName, clientTokenFileName)
}
