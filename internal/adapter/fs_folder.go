package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// folderFS is a FileSystem over a local directory, typically one kept in sync
// by a third-party client, or the offline books directory. Files carry no
// native change token, so the ETag is the SHA-256 of the content.
type folderFS struct {
	fs afero.Fs
}

// NewFolderFS returns a FileSystem rooted at dir on the OS file system.
func NewFolderFS(dir string) FileSystem {
	return NewAferoFS(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// NewAferoFS returns a FileSystem over any afero file system.
func NewAferoFS(fsys afero.Fs) FileSystem {
	return &folderFS{fs: fsys}
}

func (f *folderFS) ListDirs(ctx context.Context, dir string) ([]string, error) {
	infos, err := afero.ReadDir(f.fs, f.clean(dir))
	if err != nil {
		return nil, mapFSError(err)
	}

	dirs := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() && !strings.HasPrefix(info.Name(), ".") {
			dirs = append(dirs, info.Name())
		}
	}
	return dirs, nil
}

func (f *folderFS) List(ctx context.Context, dir string) ([]models.FileEntry, error) {
	root := f.clean(dir)
	if _, err := f.fs.Stat(root); err != nil {
		return nil, mapFSError(err)
	}

	entries := make([]models.FileEntry, 0)
	err := afero.Walk(f.fs, root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() || isTempFile(info.Name()) {
			return nil
		}

		data, err := afero.ReadFile(f.fs, p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		entries = append(entries, models.FileEntry{
			Path:    filepath.ToSlash(rel),
			ETag:    utils.ContentHash(data),
			LastMod: info.ModTime().UTC().Format(time.RFC3339Nano),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, mapFSError(err)
	}

	return entries, nil
}

func (f *folderFS) Read(_ context.Context, p string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.clean(p))
	if err != nil {
		return nil, mapFSError(err)
	}
	return data, nil
}

// Write replaces the file atomically through a temp file and a rename, so a
// syncing client never picks up a half written chunk.
func (f *folderFS) Write(_ context.Context, p string, data []byte) error {
	target := f.clean(p)
	if err := f.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return mapFSError(err)
	}

	tmp := target + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0o644); err != nil {
		return mapFSError(err)
	}
	if err := f.fs.Rename(tmp, target); err != nil {
		_ = f.fs.Remove(tmp)
		return mapFSError(err)
	}
	return nil
}

func (f *folderFS) Remove(_ context.Context, p string) error {
	return mapFSError(f.fs.Remove(f.clean(p)))
}

func (f *folderFS) RemoveAll(_ context.Context, dir string) error {
	target := f.clean(dir)
	if _, err := f.fs.Stat(target); err != nil {
		return mapFSError(err)
	}
	return mapFSError(f.fs.RemoveAll(target))
}

func (f *folderFS) MakeDir(_ context.Context, dir string) error {
	return mapFSError(f.fs.MkdirAll(f.clean(dir), 0o755))
}

func (f *folderFS) Probe(_ context.Context) error {
	info, err := f.fs.Stat(string(os.PathSeparator))
	if err != nil {
		return mapFSError(err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: folder root is not a directory", ErrBadRequest)
	}
	return nil
}

func (f *folderFS) clean(p string) string {
	return filepath.FromSlash(path.Join("/", p))
}

func isTempFile(name string) bool {
	return strings.HasSuffix(name, ".tmp")
}
