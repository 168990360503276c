package adapter

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const (
	defaultFetchConcurrency = 4
	defaultWriteConcurrency = 4
	defaultEntryName        = "items"
)

// assetPattern matches asset files relative to the store directory.
var assetPattern = models.AssetsDir + "/**"

// Options tunes the generic remote store.
type Options struct {
	// Backend names the backend, one of the models.Backend* constants.
	Backend string
	// Root is the directory all stores live under; empty means the backend root.
	Root string
	// Prefix selects the stores of this application: "<prefix>-<name>".
	// An empty prefix lists every directory under Root.
	Prefix string
	// EntryName is the chunk file stem.
	EntryName string
	// FetchConcurrency and WriteConcurrency cap parallel transfers;
	// zero selects the default, 1 makes transfers serial.
	FetchConcurrency int
	WriteConcurrency int
	// User is reported by UserInfo when the file system has no account
	// notion of its own.
	User models.UserInfo
}

// userInfoProvider is implemented by file systems backed by an account.
type userInfoProvider interface {
	UserInfo(ctx context.Context) (models.UserInfo, error)
}

type remoteStore struct {
	fs   FileSystem
	opts Options
}

// NewRemoteStore builds the RemoteStore of a backend over its FileSystem.
func NewRemoteStore(fs FileSystem, opts Options) RemoteStore {
	if opts.EntryName == "" {
		opts.EntryName = defaultEntryName
	}
	if opts.FetchConcurrency <= 0 {
		opts.FetchConcurrency = defaultFetchConcurrency
	}
	if opts.WriteConcurrency <= 0 {
		opts.WriteConcurrency = defaultWriteConcurrency
	}
	opts.Root = strings.Trim(opts.Root, "/")

	return &remoteStore{fs: fs, opts: opts}
}

func (s *remoteStore) Backend() string {
	return s.opts.Backend
}

func (s *remoteStore) FetchAllStores(ctx context.Context) ([]models.Book, error) {
	dirs, err := s.fs.ListDirs(ctx, s.opts.Root)
	if errors.Is(err, ErrNotFound) {
		return []models.Book{}, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "remoteStore.FetchAllStores").Str("backend", s.opts.Backend).Msg("failed to list stores")
		return nil, fmt.Errorf("list stores: %w", err)
	}

	books := make([]models.Book, 0, len(dirs))
	for _, dir := range dirs {
		name, ok := s.bookName(dir)
		if !ok {
			continue
		}
		books = append(books, models.Book{ID: dir, Name: name})
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })

	return books, nil
}

func (s *remoteStore) CreateStore(ctx context.Context, name string) (models.Book, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return models.Book{}, fmt.Errorf("%w: %q", ErrInvalidStoreName, name)
	}

	book := models.Book{ID: s.fullName(name), Name: name}
	dir := s.storeDir(book.ID)

	if err := s.fs.MakeDir(ctx, dir); err != nil {
		return models.Book{}, fmt.Errorf("create store %s: %w", book.ID, err)
	}
	if err := s.fs.MakeDir(ctx, path.Join(dir, models.AssetsDir)); err != nil {
		return models.Book{}, fmt.Errorf("create assets of %s: %w", book.ID, err)
	}

	_, err := s.fs.Read(ctx, path.Join(dir, models.MetaFile))
	switch {
	case errors.Is(err, ErrNotFound):
		if err = s.fs.Write(ctx, path.Join(dir, models.MetaFile), []byte("{}")); err != nil {
			return models.Book{}, fmt.Errorf("create meta of %s: %w", book.ID, err)
		}
	case err != nil:
		return models.Book{}, fmt.Errorf("read meta of %s: %w", book.ID, err)
	}

	logger.FromContext(ctx).Info().Str("func", "remoteStore.CreateStore").Str("book_id", book.ID).Msg("store created")
	return book, nil
}

func (s *remoteStore) DeleteStore(ctx context.Context, id string) error {
	err := s.fs.RemoveAll(ctx, s.storeDir(id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete store %s: %w", id, err)
	}
	return nil
}

func (s *remoteStore) FetchStoreStructure(ctx context.Context, id string) (models.Structure, error) {
	structure := models.Structure{Chunks: []models.Chunk{}, Assets: []models.FileEntry{}}

	entries, err := s.fs.List(ctx, s.storeDir(id))
	if errors.Is(err, ErrNotFound) {
		return structure, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "remoteStore.FetchStoreStructure").Str("book_id", id).Msg("failed to list store files")
		return models.Structure{}, fmt.Errorf("list store %s: %w", id, err)
	}

	for _, e := range entries {
		e.Path = strings.TrimPrefix(e.Path, "/")

		if e.Path == models.MetaFile {
			meta := e
			structure.Meta = &meta
			continue
		}
		if ok, _ := doublestar.Match(assetPattern, e.Path); ok {
			structure.Assets = append(structure.Assets, e)
			continue
		}
		if start, ok := models.ParseChunkPath(s.opts.EntryName, e.Path); ok {
			structure.Chunks = append(structure.Chunks, models.Chunk{FileEntry: e, StartIndex: start})
		}
	}

	sort.Slice(structure.Chunks, func(i, j int) bool {
		return structure.Chunks[i].StartIndex < structure.Chunks[j].StartIndex
	})
	sort.Slice(structure.Assets, func(i, j int) bool {
		return structure.Assets[i].Path < structure.Assets[j].Path
	})

	return structure, nil
}

func (s *remoteStore) FetchFileContents(ctx context.Context, id string, paths []string) ([]models.RemoteFile, error) {
	files := make([]models.RemoteFile, len(paths))
	dir := s.storeDir(id)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.FetchConcurrency)
	for i, p := range paths {
		g.Go(func() error {
			data, err := s.fs.Read(gctx, path.Join(dir, p))
			if err != nil {
				return fmt.Errorf("fetch %s: %w", p, err)
			}
			files[i] = models.RemoteFile{Path: p, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "remoteStore.FetchFileContents").Str("book_id", id).Msg("failed to fetch files")
		return nil, err
	}

	return files, nil
}

func (s *remoteStore) WriteFiles(ctx context.Context, id string, files []models.RemoteFile) error {
	dir := s.storeDir(id)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.WriteConcurrency)
	for _, f := range files {
		g.Go(func() error {
			if err := s.fs.Write(gctx, path.Join(dir, f.Path), f.Data); err != nil {
				return fmt.Errorf("write %s: %w", f.Path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "remoteStore.WriteFiles").Str("book_id", id).Msg("failed to write files")
		return err
	}
	return nil
}

func (s *remoteStore) DeleteFiles(ctx context.Context, id string, paths []string) error {
	dir := s.storeDir(id)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.WriteConcurrency)
	for _, p := range paths {
		g.Go(func() error {
			err := s.fs.Remove(gctx, path.Join(dir, p))
			if err != nil && !errors.Is(err, ErrNotFound) {
				return fmt.Errorf("delete %s: %w", p, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *remoteStore) GetAsset(ctx context.Context, id, p string) (models.File, bool) {
	data, err := s.fs.Read(ctx, path.Join(s.storeDir(id), p))
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "remoteStore.GetAsset").
			Str("book_id", id).
			Str("path", p).
			Msg("asset not available")
		return models.File{}, false
	}

	return models.File{
		Name:     AssetFileName(p),
		MIMEType: detectMIME(p, data),
		Data:     data,
	}, true
}

func (s *remoteStore) CheckConfig(ctx context.Context) error {
	err := s.fs.Probe(ctx)
	switch {
	case err == nil, errors.Is(err, ErrNotFound):
		return nil
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return fmt.Errorf("%s: authentication failed, check the credentials: %w", s.opts.Backend, err)
	default:
		return fmt.Errorf("%s: backend is not reachable: %w", s.opts.Backend, err)
	}
}

func (s *remoteStore) UserInfo(ctx context.Context) (models.UserInfo, error) {
	if p, ok := s.fs.(userInfoProvider); ok {
		return p.UserInfo(ctx)
	}
	return s.opts.User, nil
}

func (s *remoteStore) Directory() (UserDirectory, bool) {
	d, ok := s.fs.(UserDirectory)
	if !ok {
		return nil, false
	}
	return &directory{fs: d, store: s}, true
}

// directory resolves store ids before delegating to the file system.
type directory struct {
	fs    UserDirectory
	store *remoteStore
}

func (d *directory) Collaborators(ctx context.Context, id string) ([]models.UserInfo, error) {
	return d.fs.Collaborators(ctx, d.store.storeDir(id))
}

func (d *directory) Invite(ctx context.Context, id, username string) error {
	return d.fs.Invite(ctx, d.store.storeDir(id), username)
}

func (s *remoteStore) fullName(name string) string {
	if s.opts.Prefix == "" {
		return name
	}
	return s.opts.Prefix + "-" + name
}

func (s *remoteStore) bookName(dir string) (string, bool) {
	if s.opts.Prefix == "" {
		return dir, dir != ""
	}
	name, ok := strings.CutPrefix(dir, s.opts.Prefix+"-")
	return name, ok && name != ""
}

func (s *remoteStore) storeDir(id string) string {
	if s.opts.Root == "" {
		return id
	}
	return path.Join(s.opts.Root, id)
}

// AssetFileName strips the assets directory and the short id prefix from an
// asset path: "assets/1a2b3c4d-receipt.png" yields "receipt.png".
func AssetFileName(p string) string {
	base := path.Base(p)
	if _, name, ok := strings.Cut(base, "-"); ok && name != "" {
		return name
	}
	return base
}

func detectMIME(p string, data []byte) string {
	if t := mime.TypeByExtension(path.Ext(p)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
