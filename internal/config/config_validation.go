// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// validate checks that the merged and defaulted [StructuredConfig] can be
// used at startup. All problems are reported at once.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	switch {
	case cfg.Storage.DB.DSN == "":
		errs = append(errs, fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs))
	case cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite:
		errs = append(errs, fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver))
	}

	if cfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: token sign key is empty", ErrInvalidAppConfigs))
	}
	if cfg.App.RefreshSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: refresh sign key is empty", ErrInvalidAppConfigs))
	}
	if cfg.App.TokenSignKey != "" && cfg.App.TokenSignKey == cfg.App.RefreshSignKey {
		errs = append(errs, fmt.Errorf("%w: access and refresh sign keys must differ", ErrInvalidAppConfigs))
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, fmt.Errorf("%w: HTTP address is empty", ErrInvalidServerConfigs))
	}

	if cfg.Workers.TokenCleanupInterval < 0 {
		errs = append(errs, fmt.Errorf("%w: negative token cleanup interval", ErrInvalidWorkerConfigs))
	}

	return errors.Join(errs...)
}
