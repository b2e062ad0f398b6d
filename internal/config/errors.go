package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates a missing DSN or an unsupported driver.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing or clashing token keys.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates an unusable worker schedule.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrUnsupportedConfigFile is returned for config files that are neither
	// JSON nor YAML.
	ErrUnsupportedConfigFile = errors.New("unsupported config file extension")
)
