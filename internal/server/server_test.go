package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-quote-keeper/internal/config"
	"github.com/MKhiriev/go-quote-keeper/internal/handler"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/mock"
	"github.com/MKhiriev/go-quote-keeper/internal/service"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
	"github.com/MKhiriev/go-quote-keeper/internal/workers"
	"github.com/MKhiriev/go-quote-keeper/models"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewServer_NoHandlers(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, nil, config.Server{}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestServer_ServesAndStopsWithWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	appInfo := mock.NewMockAppInfoService(ctrl)
	appInfo.EXPECT().GetVersionInfo(gomock.Any()).Return(models.VersionInfo{Version: "9.9.9"}).AnyTimes()

	tokens := mock.NewMockRefreshTokenRepository(ctrl)
	cleaned := make(chan struct{}, 1)
	tokens.EXPECT().DeleteExpiredRefreshTokens(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, time.Time) (int64, error) {
			select {
			case cleaned <- struct{}{}:
			default:
			}
			return 0, nil
		},
	).MinTimes(1)

	cfg := config.Server{HTTPAddress: freeAddress(t)}
	log := logger.Nop()
	handlers, err := handler.NewHandlers(&service.Services{AppInfoService: appInfo}, cfg, log)
	require.NoError(t, err)
	bg := workers.NewWorkers(&store.Storages{RefreshTokenRepository: tokens}, config.Workers{TokenCleanupInterval: time.Hour}, log)

	srv, err := NewServer(handlers, bg, cfg, log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.(*server).run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/api/version/", cfg.HTTPAddress))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	select {
	case <-cleaned:
	case <-time.After(time.Second):
		t.Fatal("token cleanup worker did not run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ListenFailureStopsWorkers(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	cfg := config.Server{HTTPAddress: l.Addr().String()}
	log := logger.Nop()
	handlers, err := handler.NewHandlers(&service.Services{}, cfg, log)
	require.NoError(t, err)

	srv, err := NewServer(handlers, &workers.Workers{}, cfg, log)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		srv.(*server).run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after listen failure")
	}
}
