package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-quote-keeper/internal/config"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers registers the token cleanup worker. A zero interval disables
// it.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.TokenCleanupInterval > 0 {
		w.workers = append(w.workers, NewTokenCleanupWorker(storages.RefreshTokenRepository, cfg.TokenCleanupInterval, logger))
	}
	return w
}

// Run blocks until every worker has returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		worker := worker
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
