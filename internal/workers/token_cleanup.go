// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
)

// TokenCleanupWorker purges expired refresh tokens once at start and then
// every interval.
type TokenCleanupWorker struct {
	tokens   store.RefreshTokenRepository
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewTokenCleanupWorker(tokens store.RefreshTokenRepository, interval time.Duration, logger *logger.Logger) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		tokens:   tokens,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (w *TokenCleanupWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("token cleanup worker started")

	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		w.cleanup(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info().Msg("token cleanup worker stopped")
			return
		case <-t.C:
		}
	}
}

func (w *TokenCleanupWorker) cleanup(ctx context.Context) {
	deleted, err := w.tokens.DeleteExpiredRefreshTokens(ctx, w.now())
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Str("func", "*TokenCleanupWorker.cleanup").Msg("error deleting expired refresh tokens")
		}
		return
	}
	if deleted > 0 {
		w.logger.Info().Int64("deleted", deleted).Msg("expired refresh tokens deleted")
	}
}
