package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/studio-b12/gowebdav"

	"github.com/MKhiriev/go-ledger-sync/models"
)

const webdavRetryWait = 200 * time.Millisecond

// WebDAVConfig holds the connection settings of a WebDAV server.
type WebDAVConfig struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
	Retries  int
}

// webdavFS talks to the server through gowebdav. The client has no context
// support, so ctx is only checked between requests and retries.
type webdavFS struct {
	client  *gowebdav.Client
	retries uint64
}

// NewWebDAVFS returns a FileSystem over a WebDAV collection.
func NewWebDAVFS(cfg WebDAVConfig) (FileSystem, error) {
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: webdav url %q", ErrInvalidCredentials, cfg.URL)
	}

	client := gowebdav.NewClient(base.String(), cfg.Username, cfg.Password)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &webdavFS{client: client, retries: uint64(max(cfg.Retries, 0))}, nil
}

func (w *webdavFS) ListDirs(ctx context.Context, dir string) ([]string, error) {
	infos, err := w.readDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(infos))
	for _, fi := range infos {
		if fi.IsDir() {
			dirs = append(dirs, fi.Name())
		}
	}
	return dirs, nil
}

// List walks collections one level at a time; many servers refuse
// "Depth: infinity".
func (w *webdavFS) List(ctx context.Context, dir string) ([]models.FileEntry, error) {
	files := make([]models.FileEntry, 0)

	queue := []string{""}
	for len(queue) > 0 {
		sub := queue[0]
		queue = queue[1:]

		infos, err := w.readDir(ctx, path.Join(dir, sub))
		if err != nil {
			return nil, err
		}

		for _, fi := range infos {
			rel := path.Join(sub, fi.Name())
			if fi.IsDir() {
				queue = append(queue, rel)
				continue
			}
			files = append(files, fileEntry(rel, fi))
		}
	}

	return files, nil
}

func (w *webdavFS) Read(ctx context.Context, p string) ([]byte, error) {
	return retry.DoValue(ctx, w.backoff(), func(context.Context) ([]byte, error) {
		data, err := w.client.Read(p)
		return data, w.retryable(err)
	})
}

// Write lets the client create missing parent collections.
func (w *webdavFS) Write(ctx context.Context, p string, data []byte) error {
	return w.do(ctx, func() error {
		return w.client.Write(p, data, 0o644)
	})
}

// Remove stats first: the client reports deletes of missing paths as
// successful.
func (w *webdavFS) Remove(ctx context.Context, p string) error {
	if err := w.stat(ctx, p); err != nil {
		return err
	}
	return w.do(ctx, func() error {
		return w.client.Remove(p)
	})
}

// RemoveAll relies on DELETE of a collection being recursive.
func (w *webdavFS) RemoveAll(ctx context.Context, dir string) error {
	dir = strings.TrimRight(dir, "/") + "/"
	if err := w.stat(ctx, dir); err != nil {
		return err
	}
	return w.do(ctx, func() error {
		return w.client.RemoveAll(dir)
	})
}

func (w *webdavFS) MakeDir(ctx context.Context, dir string) error {
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return nil
	}
	return w.do(ctx, func() error {
		return w.client.MkdirAll(dir, 0o755)
	})
}

func (w *webdavFS) Probe(ctx context.Context) error {
	return w.do(ctx, w.client.Connect)
}

func (w *webdavFS) readDir(ctx context.Context, dir string) ([]os.FileInfo, error) {
	return retry.DoValue(ctx, w.backoff(), func(context.Context) ([]os.FileInfo, error) {
		infos, err := w.client.ReadDir(dir)
		return infos, w.retryable(err)
	})
}

func (w *webdavFS) stat(ctx context.Context, p string) error {
	return w.do(ctx, func() error {
		_, err := w.client.Stat(p)
		return err
	})
}

func (w *webdavFS) do(ctx context.Context, fn func() error) error {
	return retry.Do(ctx, w.backoff(), func(context.Context) error {
		return w.retryable(fn())
	})
}

func (w *webdavFS) backoff() retry.Backoff {
	return retry.WithMaxRetries(w.retries, retry.NewConstant(webdavRetryWait))
}

// retryable maps err and marks network failures and 5xx answers for
// another attempt.
func (w *webdavFS) retryable(err error) error {
	if err == nil {
		return nil
	}

	var se gowebdav.StatusError
	if !errors.As(err, &se) || se.Status >= http.StatusInternalServerError {
		return retry.RetryableError(mapWebDAVError(err))
	}
	return mapWebDAVError(err)
}

func fileEntry(rel string, fi os.FileInfo) models.FileEntry {
	entry := models.FileEntry{Path: rel, Size: fi.Size()}
	if !fi.ModTime().IsZero() {
		entry.LastMod = fi.ModTime().UTC().Format(http.TimeFormat)
	}
	if f, ok := fi.(interface{ ETag() string }); ok {
		entry.ETag = strings.Trim(f.ETag(), `"`)
	}
	// servers without etags still expose a modification time
	if entry.ETag == "" {
		entry.ETag = entry.LastMod
	}
	return entry
}
