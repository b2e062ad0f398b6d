package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig mirrors [StructuredConfig] for JSON and YAML config
// files, which use snake_case keys and textual durations.
type StructuredFileConfig struct {
	App struct {
		TokenSignKey         string   `json:"token_sign_key" yaml:"token_sign_key"`
		RefreshSignKey       string   `json:"refresh_sign_key" yaml:"refresh_sign_key"`
		RefreshHashKey       string   `json:"refresh_hash_key" yaml:"refresh_hash_key"`
		TokenIssuer          string   `json:"token_issuer" yaml:"token_issuer"`
		AccessTokenDuration  Duration `json:"access_token_duration" yaml:"access_token_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration" yaml:"refresh_token_duration"`
		Version              string   `json:"version" yaml:"version"`
		LogLevel             string   `json:"log_level" yaml:"log_level"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn" yaml:"dsn"`
			Driver       string `json:"driver" yaml:"driver"`
			MaxOpenConns int    `json:"max_open_conns" yaml:"max_open_conns"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		SubtreeTimeout Duration `json:"subtree_timeout" yaml:"subtree_timeout"`
		CORSOrigins    []string `json:"cors_origins" yaml:"cors_origins"`
		SecureCookies  bool     `json:"secure_cookies" yaml:"secure_cookies"`
	} `json:"server" yaml:"server"`

	Workers struct {
		TokenCleanupInterval Duration `json:"token_cleanup_interval" yaml:"token_cleanup_interval"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a JSON (.json) or YAML (.yaml, .yml) config file.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}

	return fileCfg.toStructured(), nil
}

func (f *StructuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:         f.App.TokenSignKey,
			RefreshSignKey:       f.App.RefreshSignKey,
			RefreshHashKey:       f.App.RefreshHashKey,
			TokenIssuer:          f.App.TokenIssuer,
			AccessTokenDuration:  time.Duration(f.App.AccessTokenDuration),
			RefreshTokenDuration: time.Duration(f.App.RefreshTokenDuration),
			Version:              f.App.Version,
			LogLevel:             f.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN:          f.Storage.DB.DSN,
				Driver:       f.Storage.DB.Driver,
				MaxOpenConns: f.Storage.DB.MaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
			SubtreeTimeout: time.Duration(f.Server.SubtreeTimeout),
			CORSOrigins:    f.Server.CORSOrigins,
			SecureCookies:  f.Server.SecureCookies,
		},
		Workers: Workers{
			TokenCleanupInterval: time.Duration(f.Workers.TokenCleanupInterval),
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" in both JSON and YAML, and from plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.parse(value)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var n int64
		if err := node.Decode(&n); err != nil {
			return err
		}
		*d = Duration(time.Duration(n))
		return nil
	}

	return d.parse(node.Value)
}

func (d *Duration) parse(s string) error {
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
