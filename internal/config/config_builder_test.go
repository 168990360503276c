package config

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
	assert.Nil(t, b.defaults)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies the priority order
// defaults < file < env < flags.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	path := writeConfigFile(t, "c.yaml", `
backend:
  type: webdav
  prefix: from-file
  items_per_chunk: 10
storage:
  data_dir: /file
`)
	t.Setenv("BACKEND_PREFIX", "from-env")

	flags := &StructuredConfig{FilePath: path, Backend: Backend{ItemsPerChunk: 3}}

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "webdav", cfg.Backend.Type, "file overrides default")
	assert.Equal(t, "from-env", cfg.Backend.Prefix, "env overrides file")
	assert.Equal(t, 3, cfg.Backend.ItemsPerChunk, "flags override file")
	assert.Equal(t, "/file", cfg.Storage.DataDir)
	assert.Equal(t, "items", cfg.Backend.EntryName, "default kept")
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
}

// TestBuild_FileErrorIsReported verifies that a missing config file fails
// the whole build.
func TestBuild_FileErrorIsReported(t *testing.T) {
	cfg, err := Load(&StructuredConfig{FilePath: "/no/such/config.json"})
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error occured during building config")
}

// TestLoad_NilFlags verifies that Load works without a flag set.
func TestLoad_NilFlags(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, models.BackendOffline, cfg.Backend.Type)
	assert.Equal(t, 1000, cfg.Backend.ItemsPerChunk)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*StructuredConfig) {}},
		{name: "unknown backend", mutate: func(c *StructuredConfig) { c.Backend.Type = "ftp" }, wantErr: ErrInvalidBackendConfigs},
		{name: "negative chunk", mutate: func(c *StructuredConfig) { c.Backend.ItemsPerChunk = -1 }, wantErr: ErrInvalidBackendConfigs},
		{name: "no storage", mutate: func(c *StructuredConfig) { c.Storage = Storage{} }, wantErr: ErrInvalidStorageConfigs},
		{name: "negative interval", mutate: func(c *StructuredConfig) { c.Workers.SyncInterval = -time.Second }, wantErr: ErrInvalidWorkerConfigs},
		{name: "auth without key", mutate: func(c *StructuredConfig) { c.Server.RequireAuth = true }, wantErr: ErrInvalidAppConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── Credentials ───────────────────────────────────────────────────────────────

func TestCredentials(t *testing.T) {
	cfg := Defaults()

	creds, ok := cfg.Credentials()
	assert.True(t, ok)
	assert.Equal(t, models.BackendOffline, creds.Backend)

	cfg.Backend.Type = models.BackendGit
	_, ok = cfg.Credentials()
	assert.False(t, ok, "git without token")

	cfg.Git.Token = "ghp"
	cfg.Git.Owner = "alice"
	creds, ok = cfg.Credentials()
	require.True(t, ok)
	assert.Equal(t, "https://api.github.com", creds.Endpoint)
	assert.Equal(t, "alice", creds.Username)
	assert.Equal(t, "ghp", creds.Secret)

	cfg.Backend.Type = models.BackendS3
	cfg.S3 = S3{Endpoint: "s3.local:9000", Bucket: "b", AccessKey: "ak", SecretKey: "sk"}
	creds, ok = cfg.Credentials()
	require.True(t, ok)
	assert.Equal(t, "ak", creds.AccessKey)
	assert.Equal(t, "sk", creds.Secret)
	assert.Equal(t, "b", creds.Bucket)
}

func TestDSN_DefaultsToDataDir(t *testing.T) {
	cfg := &StructuredConfig{Storage: Storage{DataDir: "/data"}}
	assert.Equal(t, "/data/ledgersync.db", cfg.DSN())

	cfg.Storage.DB.DSN = "postgres://x"
	assert.Equal(t, "postgres://x", cfg.DSN())
}
