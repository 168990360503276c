package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] with json and yaml tags. Durations
// are accepted as strings ("30s") or as nanosecond numbers.
type fileConfig struct {
	App struct {
		SecretKey     string   `json:"secret_key" yaml:"secret_key"`
		Alias         string   `json:"alias" yaml:"alias"`
		TokenSignKey  string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
	} `json:"app" yaml:"app"`

	Backend struct {
		Type             string   `json:"type" yaml:"type"`
		Prefix           string   `json:"prefix" yaml:"prefix"`
		Root             string   `json:"root" yaml:"root"`
		EntryName        string   `json:"entry_name" yaml:"entry_name"`
		ItemsPerChunk    int      `json:"items_per_chunk" yaml:"items_per_chunk"`
		FetchConcurrency int      `json:"fetch_concurrency" yaml:"fetch_concurrency"`
		WriteConcurrency int      `json:"write_concurrency" yaml:"write_concurrency"`
		RequestTimeout   Duration `json:"request_timeout" yaml:"request_timeout"`
		Retries          int      `json:"retries" yaml:"retries"`
	} `json:"backend" yaml:"backend"`

	Git struct {
		APIURL string `json:"api_url" yaml:"api_url"`
		Token  string `json:"token" yaml:"token"`
		Owner  string `json:"owner" yaml:"owner"`
		Public bool   `json:"public" yaml:"public"`
	} `json:"git" yaml:"git"`

	WebDAV struct {
		URL      string `json:"url" yaml:"url"`
		Username string `json:"username" yaml:"username"`
		Password string `json:"password" yaml:"password"`
	} `json:"webdav" yaml:"webdav"`

	S3 struct {
		Endpoint  string `json:"endpoint" yaml:"endpoint"`
		AccessKey string `json:"access_key" yaml:"access_key"`
		SecretKey string `json:"secret_key" yaml:"secret_key"`
		Bucket    string `json:"bucket" yaml:"bucket"`
		Region    string `json:"region" yaml:"region"`
		Insecure  bool   `json:"insecure" yaml:"insecure"`
	} `json:"s3" yaml:"s3"`

	Folder struct {
		Path string `json:"path" yaml:"path"`
	} `json:"folder" yaml:"folder"`

	Storage struct {
		DataDir string `json:"data_dir" yaml:"data_dir"`
		DB      struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Workers struct {
		SyncInterval  Duration `json:"sync_interval" yaml:"sync_interval"`
		WatchDebounce Duration `json:"watch_debounce" yaml:"watch_debounce"`
		ManualSync    bool     `json:"manual_sync" yaml:"manual_sync"`
	} `json:"workers" yaml:"workers"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
		RequireAuth     bool     `json:"require_auth" yaml:"require_auth"`
	} `json:"server" yaml:"server"`

	Log struct {
		Path       string `json:"path" yaml:"path"`
		Level      string `json:"level" yaml:"level"`
		MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
		MaxBackups int    `json:"max_backups" yaml:"max_backups"`
		MaxAgeDays int    `json:"max_age_days" yaml:"max_age_days"`
		Stdout     bool   `json:"stdout" yaml:"stdout"`
	} `json:"log" yaml:"log"`
}

// parseFile reads a JSON or YAML config file; the format is chosen by the
// file extension (.yaml/.yml, anything else is JSON).
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SecretKey:     fc.App.SecretKey,
			Alias:         fc.App.Alias,
			TokenSignKey:  fc.App.TokenSignKey,
			TokenIssuer:   fc.App.TokenIssuer,
			TokenDuration: time.Duration(fc.App.TokenDuration),
		},
		Backend: Backend{
			Type:             fc.Backend.Type,
			Prefix:           fc.Backend.Prefix,
			Root:             fc.Backend.Root,
			EntryName:        fc.Backend.EntryName,
			ItemsPerChunk:    fc.Backend.ItemsPerChunk,
			FetchConcurrency: fc.Backend.FetchConcurrency,
			WriteConcurrency: fc.Backend.WriteConcurrency,
			RequestTimeout:   time.Duration(fc.Backend.RequestTimeout),
			Retries:          fc.Backend.Retries,
		},
		Git: Git{
			APIURL: fc.Git.APIURL,
			Token:  fc.Git.Token,
			Owner:  fc.Git.Owner,
			Public: fc.Git.Public,
		},
		WebDAV: WebDAV{
			URL:      fc.WebDAV.URL,
			Username: fc.WebDAV.Username,
			Password: fc.WebDAV.Password,
		},
		S3: S3{
			Endpoint:  fc.S3.Endpoint,
			AccessKey: fc.S3.AccessKey,
			SecretKey: fc.S3.SecretKey,
			Bucket:    fc.S3.Bucket,
			Region:    fc.S3.Region,
			Insecure:  fc.S3.Insecure,
		},
		Folder: Folder{Path: fc.Folder.Path},
		Storage: Storage{
			DataDir: fc.Storage.DataDir,
			DB:      DB{DSN: fc.Storage.DB.DSN},
		},
		Workers: Workers{
			SyncInterval:  time.Duration(fc.Workers.SyncInterval),
			WatchDebounce: time.Duration(fc.Workers.WatchDebounce),
			ManualSync:    fc.Workers.ManualSync,
		},
		Server: Server{
			HTTPAddress:     fc.Server.HTTPAddress,
			RequestTimeout:  time.Duration(fc.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(fc.Server.ShutdownTimeout),
			RequireAuth:     fc.Server.RequireAuth,
		},
		Log: Log{
			Path:       fc.Log.Path,
			Level:      fc.Log.Level,
			MaxSizeMB:  fc.Log.MaxSizeMB,
			MaxBackups: fc.Log.MaxBackups,
			MaxAgeDays: fc.Log.MaxAgeDays,
			Stdout:     fc.Log.Stdout,
		},
	}
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if n, err := time.ParseDuration(s); err == nil {
		*d = Duration(n)
		return nil
	}

	var ns int64
	if err := node.Decode(&ns); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(ns))
	return nil
}
