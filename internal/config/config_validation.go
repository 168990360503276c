// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"

	"github.com/MKhiriev/go-ledger-sync/models"
)

var knownBackends = []string{
	models.BackendGit,
	models.BackendWebDAV,
	models.BackendS3,
	models.BackendFolder,
	models.BackendOffline,
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Backend credentials are not required here: they may come from a stored
// session created by "login".
func (cfg *StructuredConfig) validate() error {
	if cfg.Backend.Type != "" && !slices.Contains(knownBackends, cfg.Backend.Type) {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidBackendConfigs, cfg.Backend.Type)
	}

	if cfg.Backend.ItemsPerChunk < 0 || cfg.Backend.FetchConcurrency < 0 || cfg.Backend.WriteConcurrency < 0 {
		return fmt.Errorf("%w: negative chunk size or concurrency", ErrInvalidBackendConfigs)
	}

	if cfg.Storage.DataDir == "" && cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.SyncInterval < 0 || cfg.Workers.WatchDebounce < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Server.RequireAuth && cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: server auth requires a token sign key", ErrInvalidAppConfigs)
	}

	return nil
}
