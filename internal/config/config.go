// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// StructuredConfig is the top-level configuration container for the
// ledgersync client. It aggregates all sub-configurations and is populated
// by merging defaults, an optional JSON or YAML file, environment variables,
// and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the credential sealing secret,
	// local API token parameters, and the alias this user is known by.
	App App `envPrefix:"APP_"`

	// Backend selects the remote store implementation and its layout policy.
	Backend Backend `envPrefix:"BACKEND_"`

	// Git, WebDAV, S3 and Folder hold the connection settings of each
	// backend. Only the section selected by Backend.Type is used.
	Git    Git    `envPrefix:"GIT_"`
	WebDAV WebDAV `envPrefix:"WEBDAV_"`
	S3     S3     `envPrefix:"S3_"`
	Folder Folder `envPrefix:"FOLDER_"`

	// Storage holds the local data directory and database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds the local API listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Log holds log file rotation settings.
	Log Log `envPrefix:"LOG_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	FilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// SecretKey seals stored credentials at rest. Must be kept confidential.
	// Env: APP_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// Alias is the human readable name registered in a shared book's meta
	// when this user opens it.
	// Env: APP_ALIAS
	Alias string `env:"ALIAS"`

	// TokenSignKey signs local API JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of local API tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long an issued local API token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is reported by the local API.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Backend selects and tunes the remote store.
type Backend struct {
	// Type is one of git, webdav, s3, folder, offline.
	// Env: BACKEND_TYPE
	Type string `env:"TYPE"`

	// Prefix is prepended to book names: "<prefix>-<name>".
	// Env: BACKEND_PREFIX
	Prefix string `env:"PREFIX"`

	// Root is the directory all books live under.
	// Env: BACKEND_ROOT
	Root string `env:"ROOT"`

	// EntryName is the chunk file stem: "<entry>-<startIndex>.json".
	// Env: BACKEND_ENTRY_NAME
	EntryName string `env:"ENTRY_NAME"`

	// ItemsPerChunk is the page size of chunk files.
	// Env: BACKEND_ITEMS_PER_CHUNK
	ItemsPerChunk int `env:"ITEMS_PER_CHUNK"`

	// FetchConcurrency and WriteConcurrency cap parallel file transfers.
	// Zero means the backend default.
	FetchConcurrency int `env:"FETCH_CONCURRENCY"`
	WriteConcurrency int `env:"WRITE_CONCURRENCY"`

	// RequestTimeout bounds one remote HTTP request.
	// Env: BACKEND_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Retries is the number of retries for transient HTTP failures.
	Retries int `env:"RETRIES"`
}

// Git holds the settings of a GitHub compatible hosting API.
type Git struct {
	// APIURL defaults to https://api.github.com.
	APIURL string `env:"API_URL"`
	Token  string `env:"TOKEN"`
	// Owner is the account or organisation that owns book repositories.
	Owner string `env:"OWNER"`
	// Public creates book repositories as public ones; they are private
	// otherwise.
	Public bool `env:"PUBLIC"`
}

// WebDAV holds the settings of a WebDAV server.
type WebDAV struct {
	URL      string `env:"URL"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

// S3 holds the settings of an S3 compatible bucket.
type S3 struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	Region    string `env:"REGION"`
	// Insecure disables TLS towards Endpoint.
	Insecure bool `env:"INSECURE"`
}

// Folder holds the settings of the plain directory backend, typically a
// directory kept in sync by a third-party client.
type Folder struct {
	Path string `env:"PATH"`
}

// Storage groups the local persistence settings.
type Storage struct {
	// DataDir holds the local database, lock file, and the offline books.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds the local database connection settings.
type DB struct {
	// DSN is either a SQLite file path or a postgres:// URL. An empty DSN
	// resolves to "<DataDir>/ledgersync.db".
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background sync in watch mode.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// WatchDebounce coalesces bursts of folder change events.
	// Env: WORKERS_WATCH_DEBOUNCE
	WatchDebounce time.Duration `env:"WATCH_DEBOUNCE"`

	// ManualSync stops batches from scheduling a sync on their own.
	// Env: WORKERS_MANUAL_SYNC
	ManualSync bool `env:"MANUAL_SYNC"`
}

// Server holds the local API listener settings.
type Server struct {
	// HTTPAddress is the TCP address of the local API, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// RequireAuth enables JWT authentication on the local API.
	// Env: SERVER_REQUIRE_AUTH
	RequireAuth bool `env:"REQUIRE_AUTH"`
}

// Log holds log file settings.
type Log struct {
	Path       string `env:"PATH"`
	Level      string `env:"LEVEL"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB"`
	MaxBackups int    `env:"MAX_BACKUPS"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS"`
	Stdout     bool   `env:"STDOUT"`
}

// Defaults returns the values used for every field no source sets.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "ledgersync",
			TokenDuration: 24 * time.Hour,
			Version:       "dev",
		},
		Backend: Backend{
			Type:           models.BackendOffline,
			Prefix:         "ledger",
			EntryName:      "items",
			ItemsPerChunk:  1000,
			RequestTimeout: 30 * time.Second,
			Retries:        2,
		},
		Git: Git{
			APIURL: "https://api.github.com",
		},
		Storage: Storage{
			DataDir: defaultDataDir(),
		},
		Workers: Workers{
			SyncInterval:  time.Minute,
			WatchDebounce: 2 * time.Second,
		},
		Server: Server{
			HTTPAddress:     "localhost:7420",
			RequestTimeout:  time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Credentials builds the login parameters of the selected backend from the
// configuration. ok is false when the section lacks the required fields,
// in which case the stored session (if any) is used instead.
func (cfg *StructuredConfig) Credentials() (models.Credentials, bool) {
	switch cfg.Backend.Type {
	case models.BackendGit:
		return models.Credentials{
			Backend:  models.BackendGit,
			Endpoint: cfg.Git.APIURL,
			Username: cfg.Git.Owner,
			Secret:   cfg.Git.Token,
		}, cfg.Git.Token != ""
	case models.BackendWebDAV:
		return models.Credentials{
			Backend:  models.BackendWebDAV,
			Endpoint: cfg.WebDAV.URL,
			Username: cfg.WebDAV.Username,
			Secret:   cfg.WebDAV.Password,
		}, cfg.WebDAV.URL != ""
	case models.BackendS3:
		return models.Credentials{
			Backend:   models.BackendS3,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			Secret:    cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
		}, cfg.S3.Endpoint != "" && cfg.S3.Bucket != ""
	case models.BackendFolder:
		return models.Credentials{
			Backend:  models.BackendFolder,
			Endpoint: cfg.Folder.Path,
		}, cfg.Folder.Path != ""
	case models.BackendOffline, "":
		return models.Credentials{Backend: models.BackendOffline}, true
	default:
		return models.Credentials{}, false
	}
}

// DSN resolves the local database DSN.
func (cfg *StructuredConfig) DSN() string {
	if cfg.Storage.DB.DSN != "" {
		return cfg.Storage.DB.DSN
	}
	return joinPath(cfg.Storage.DataDir, "ledgersync.db")
}

// Load assembles the configuration from all available sources in the
// following priority order (later sources override earlier non-zero fields):
//  1. Defaults
//  2. JSON or YAML file (path resolved from env and flags)
//  3. Environment variables
//  4. Command-line flags
//
// flags is the config produced by the flag set bound with [BindFlags]; it
// may be nil. Returns the merged, validated configuration.
func Load(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(flags).
		withFile().
		build()
}
