package adapter

import (
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// offlineRoot is the directory of offline books inside the data dir.
const offlineRoot = "offline"

type factory struct {
	backend config.Backend
	git     config.Git
	s3      config.S3
	dataDir string
}

// NewFactory returns a Factory applying the layout and transport settings
// of cfg to the credentials it is given.
func NewFactory(cfg *config.StructuredConfig) Factory {
	return &factory{
		backend: cfg.Backend,
		git:     cfg.Git,
		s3:      cfg.S3,
		dataDir: cfg.Storage.DataDir,
	}
}

func (f *factory) New(creds models.Credentials) (RemoteStore, error) {
	opts := Options{
		Backend:          creds.Backend,
		Root:             f.backend.Root,
		Prefix:           f.backend.Prefix,
		EntryName:        f.backend.EntryName,
		FetchConcurrency: f.backend.FetchConcurrency,
		WriteConcurrency: f.backend.WriteConcurrency,
		User:             models.UserInfo{ID: creds.Username, Name: creds.Username},
	}

	switch creds.Backend {
	case models.BackendGit:
		fs, err := NewGitHubFS(GitHubConfig{
			APIURL:  creds.Endpoint,
			Token:   creds.Secret,
			Owner:   creds.Username,
			Public:  f.git.Public,
			Timeout: f.backend.RequestTimeout,
			Retries: f.backend.Retries,
		})
		if err != nil {
			return nil, err
		}
		// repositories have no parent and every write is a commit
		opts.Root = ""
		opts.WriteConcurrency = 1
		return NewRemoteStore(fs, opts), nil

	case models.BackendWebDAV:
		fs, err := NewWebDAVFS(WebDAVConfig{
			URL:      creds.Endpoint,
			Username: creds.Username,
			Password: creds.Secret,
			Timeout:  f.backend.RequestTimeout,
			Retries:  f.backend.Retries,
		})
		if err != nil {
			return nil, err
		}
		if opts.FetchConcurrency == 0 {
			opts.FetchConcurrency = 1
		}
		return NewRemoteStore(fs, opts), nil

	case models.BackendS3:
		fs, err := NewS3FS(S3Config{
			Endpoint:  creds.Endpoint,
			AccessKey: creds.AccessKey,
			SecretKey: creds.Secret,
			Bucket:    creds.Bucket,
			Region:    creds.Region,
			Insecure:  f.s3.Insecure,
		})
		if err != nil {
			return nil, err
		}
		return NewRemoteStore(fs, opts), nil

	case models.BackendFolder:
		if creds.Endpoint == "" {
			return nil, fmt.Errorf("%w: folder path is empty", ErrInvalidCredentials)
		}
		return NewRemoteStore(NewFolderFS(creds.Endpoint), opts), nil

	case models.BackendOffline, "":
		opts.Backend = models.BackendOffline
		opts.Root = offlineRoot
		opts.Prefix = ""
		opts.User = models.UserInfo{ID: "local", Name: "local"}
		return NewRemoteStore(NewFolderFS(filepath.Clean(f.dataDir)), opts), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, creds.Backend)
	}
}
