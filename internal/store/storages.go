package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-quote-keeper/internal/config"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
)

// Storages bundles every repository over one database handle.
type Storages struct {
	DB *DB

	Transactor             Transactor
	UserRepository         UserRepository
	RefreshTokenRepository RefreshTokenRepository
	FolderRepository       FolderRepository
	QuoteRepository        QuoteRepository
	TagRepository          TagRepository
}

// NewStorages connects to the configured database, applies migrations and
// builds the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB builds the repositories over an already open handle.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		DB:                     db,
		Transactor:             db,
		UserRepository:         NewUserRepository(db, log),
		RefreshTokenRepository: NewRefreshTokenRepository(db, log),
		FolderRepository:       NewFolderRepository(db, log),
		QuoteRepository:        NewQuoteRepository(db, log),
		TagRepository:          NewTagRepository(db, log),
	}
}

// Close releases the database handle.
func (s *Storages) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
