package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/handler"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/mock"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
)

func newTestServer(t *testing.T, cfg config.Server) (*server, *mock.MockAppInfoService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	appInfo := mock.NewMockAppInfoService(ctrl)
	services := &service.Services{
		Endpoint:       mock.NewMockEndpoint(ctrl),
		AuthService:    mock.NewMockAuthService(ctrl),
		AppInfoService: appInfo,
	}
	handlers, err := handler.NewHandlers(services, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)
	return srv.(*server), appInfo
}

func TestNewServer_NoHandlers(t *testing.T) {
	_, err := NewServer(nil, config.Server{HTTPAddress: "localhost:0"}, logger.Nop())
	assert.ErrorIs(t, err, errNothingToServe)

	_, err = NewServer(&handler.Handlers{}, config.Server{HTTPAddress: "localhost:0"}, logger.Nop())
	assert.ErrorIs(t, err, errNothingToServe)
}

func TestNewServer_DefaultShutdownTimeout(t *testing.T) {
	srv, _ := newTestServer(t, config.Server{HTTPAddress: "127.0.0.1:0"})

	assert.Equal(t, defaultShutdownTimeout, srv.shutdownTimeout)
	assert.Equal(t, "127.0.0.1:0", srv.httpServer.Addr)
}

func TestServer_ServesUntilCancelled(t *testing.T) {
	srv, appInfo := newTestServer(t, config.Server{
		HTTPAddress:     "127.0.0.1:0",
		RequestTimeout:  time.Second,
		ShutdownTimeout: time.Second,
	})
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v0.1.0")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx, ln) }()

	resp, err := utils.NewRemoteHTTPClient("http://"+ln.Addr().String(), time.Second, 0).R().Get("/api/version")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "v0.1.0", resp.String())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunFailsOnBusyAddress(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv, _ := newTestServer(t, config.Server{HTTPAddress: ln.Addr().String()})

	assert.Error(t, srv.Run(context.Background()))
}
