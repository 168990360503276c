package http

import (
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
)

type Handler struct {
	endpoint service.Endpoint
	auth     service.AuthService
	appInfo  service.AppInfoService

	// requireAuth puts every route except the version behind the auth middleware.
	requireAuth bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, requireAuth bool, logger *logger.Logger) *Handler {
	logger.Info().Bool("require_auth", requireAuth).Msg("http handler created")
	return &Handler{
		endpoint:    services.Endpoint,
		auth:        services.AuthService,
		appInfo:     services.AppInfoService,
		requireAuth: requireAuth,
		logger:      logger,
	}
}
