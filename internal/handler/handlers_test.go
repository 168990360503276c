package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/mock"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
)

func newTestServices(t *testing.T) *service.Services {
	ctrl := gomock.NewController(t)
	return &service.Services{
		Endpoint:       mock.NewMockEndpoint(ctrl),
		AuthService:    mock.NewMockAuthService(ctrl),
		AppInfoService: mock.NewMockAppInfoService(ctrl),
	}
}

func TestNewHandlers_HTTP(t *testing.T) {
	h, err := NewHandlers(newTestServices(t), config.Server{HTTPAddress: "localhost:7420"}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP)
	assert.NotNil(t, h.HTTP.Init())
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(newTestServices(t), config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

func TestNewHandlers_NoServices(t *testing.T) {
	cfg := config.Server{HTTPAddress: "localhost:7420"}

	_, err := NewHandlers(nil, cfg, logger.Nop())
	require.ErrorIs(t, err, errNoServices)

	_, err = NewHandlers(&service.Services{}, cfg, logger.Nop())
	require.ErrorIs(t, err, errNoServices)
}

func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := config.Server{HTTPAddress: "localhost:7420"}
	services := newTestServices(t)

	h1, err1 := NewHandlers(services, cfg, logger.Nop())
	h2, err2 := NewHandlers(services, cfg, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}
