package service

import (
	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
)

type Services struct {
	Endpoint       Endpoint
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices builds the service layer over storages. The Endpoint is
// wrapped with input validation.
func NewServices(storages *store.Storages, factory adapter.Factory, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App)
	if err != nil {
		return nil, err
	}

	endpoint := NewEndpoint(factory, storages, storages.Tokens, utils.NewUUIDGenerator(), EndpointOptions{
		Alias: cfg.App.Alias,
		Sync: SyncOptions{
			EntryName:     cfg.Backend.EntryName,
			ItemsPerChunk: cfg.Backend.ItemsPerChunk,
			LockDir:       cfg.Storage.DataDir,
		},
		AutoSync: !cfg.Workers.ManualSync,
	}, logger)

	return &Services{
		Endpoint:       NewEndpointValidationService().Wrap(endpoint),
		AuthService:    NewAuthService(cfg.App, logger),
		AppInfoService: appInfo,
	}, nil
}
