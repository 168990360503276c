package client

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/crypto"
	"github.com/MKhiriev/go-ledger-sync/internal/handler"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/server"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/workers"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type App struct {
	cfg      *config.StructuredConfig
	storages *store.Storages
	services *service.Services
	logger   *logger.Logger
}

// NewApp opens the local database and builds the service layer. The
// endpoint is not connected until Connect is called.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	sealer, err := crypto.NewSealer(cfg.App.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("create credential sealer: %w", err)
	}

	storages, err := store.NewStorages(ctx, cfg.DSN(), sealer, log)
	if err != nil {
		return nil, fmt.Errorf("create local storages: %w", err)
	}

	services, err := service.NewServices(storages, adapter.NewFactory(cfg), *cfg, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create services: %w", err)
	}

	return &App{cfg: cfg, storages: storages, services: services, logger: log}, nil
}

func (a *App) Endpoint() service.Endpoint {
	return a.services.Endpoint
}

func (a *App) Auth() service.AuthService {
	return a.services.AuthService
}

// Connect logs in with the backend configured explicitly, or restores the
// stored session. Without either it falls back to the offline backend.
func (a *App) Connect(ctx context.Context) (models.UserInfo, error) {
	creds, ok := a.cfg.Credentials()
	if ok && creds.Backend != models.BackendOffline {
		return a.services.Endpoint.Login(ctx, creds)
	}

	user, err := a.services.Endpoint.Restore(ctx)
	if errors.Is(err, store.ErrSessionNotFound) && ok {
		a.logger.Info().Str("func", "App.Connect").Msg("no stored session, using the offline backend")
		return a.services.Endpoint.Login(ctx, creds)
	}
	return user, err
}

// Watch keeps the opened books in sync until ctx is cancelled.
func (a *App) Watch(ctx context.Context) error {
	return workers.NewWorkers(a.syncWorkers()...).Run(ctx)
}

// Serve runs the local API together with the sync workers until ctx is
// cancelled.
func (a *App) Serve(ctx context.Context) error {
	handlers, err := handler.NewHandlers(a.services, a.cfg.Server, a.logger)
	if err != nil {
		return fmt.Errorf("create handlers: %w", err)
	}
	srv, err := server.NewServer(handlers, a.cfg.Server, a.logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	return workers.NewWorkers(append(a.syncWorkers(), srv)...).Run(ctx)
}

func (a *App) syncWorkers() []workers.Worker {
	ws := []workers.Worker{
		workers.NewPeriodicSync(a.services.Endpoint, a.cfg.Workers.SyncInterval, a.logger),
	}
	// other processes only write to a shared folder behind our back
	if a.cfg.Backend.Type == models.BackendFolder && a.cfg.Folder.Path != "" {
		root := filepath.Join(a.cfg.Folder.Path, filepath.FromSlash(a.cfg.Backend.Root))
		ws = append(ws, workers.NewFolderWatcher(root, a.services.Endpoint, a.cfg.Workers.WatchDebounce, a.logger))
	}
	return ws
}

// Close cancels running syncs and closes the local database.
func (a *App) Close() error {
	return errors.Join(a.services.Endpoint.Close(), a.storages.Close())
}
