package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/mock"
)

func TestTokenCleanupWorker_RunsImmediatelyAndOnTicks(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockRefreshTokenRepository(ctrl)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	tokens.EXPECT().DeleteExpiredRefreshTokens(gomock.Any(), now).DoAndReturn(
		func(context.Context, time.Time) (int64, error) {
			calls++
			if calls == 3 {
				cancel()
			}
			return 2, nil
		},
	).MinTimes(3)

	w := NewTokenCleanupWorker(tokens, time.Millisecond, logger.Nop())
	w.now = func() time.Time { return now }

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.GreaterOrEqual(t, calls, 3)
}

func TestTokenCleanupWorker_ErrorDoesNotStopWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockRefreshTokenRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	gomock.InOrder(
		tokens.EXPECT().DeleteExpiredRefreshTokens(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down")),
		tokens.EXPECT().DeleteExpiredRefreshTokens(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, time.Time) (int64, error) {
				cancel()
				return 0, nil
			},
		).MinTimes(1),
	)

	w := NewTokenCleanupWorker(tokens, time.Millisecond, logger.Nop())
	w.Run(ctx)
}
