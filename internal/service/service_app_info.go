package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
)

type appInfoService struct {
	version string
}

// NewAppInfoService reports cfg.Version, without a leading "v", through the
// local API.
func NewAppInfoService(cfg config.App) (AppInfoService, error) {
	version := strings.TrimPrefix(strings.TrimSpace(cfg.Version), "v")
	if version == "" {
		return nil, ErrVersionIsNotSet
	}
	return &appInfoService{version: version}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}
