package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// S3Config holds the settings of an S3 compatible bucket.
type S3Config struct {
	// Endpoint is "host[:port]" or a URL; a URL scheme decides TLS.
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Insecure  bool
}

// s3FS stores files as objects; directories are key prefixes and exist as
// long as one object carries them.
type s3FS struct {
	client *minio.Client
	bucket string
}

// NewS3FS returns a FileSystem over one bucket.
func NewS3FS(cfg S3Config) (FileSystem, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 endpoint and bucket are required", ErrInvalidCredentials)
	}

	host, secure := cfg.Endpoint, !cfg.Insecure
	if u, err := url.Parse(cfg.Endpoint); err == nil && u.Host != "" {
		host, secure = u.Host, u.Scheme == "https"
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return &s3FS{client: client, bucket: cfg.Bucket}, nil
}

func (s *s3FS) ListDirs(ctx context.Context, dir string) ([]string, error) {
	prefix := dirPrefix(dir)

	dirs := make([]string, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, mapS3Error(obj.Err)
		}
		// non recursive listings report common prefixes as keys ending in "/"
		if name, ok := strings.CutSuffix(strings.TrimPrefix(obj.Key, prefix), "/"); ok && name != "" {
			dirs = append(dirs, name)
		}
	}
	return dirs, nil
}

func (s *s3FS) List(ctx context.Context, dir string) ([]models.FileEntry, error) {
	prefix := dirPrefix(dir)

	files := make([]models.FileEntry, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, mapS3Error(obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		files = append(files, models.FileEntry{
			Path:    strings.TrimPrefix(obj.Key, prefix),
			ETag:    strings.Trim(obj.ETag, `"`),
			LastMod: obj.LastModified.UTC().Format(time.RFC3339Nano),
			Size:    obj.Size,
		})
	}
	return files, nil
}

func (s *s3FS) Read(ctx context.Context, p string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(p), minio.GetObjectOptions{})
	if err != nil {
		return nil, mapS3Error(err)
	}
	defer obj.Close()

	// GetObject is lazy: a missing key surfaces on the first read
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapS3Error(err)
	}
	return data, nil
}

func (s *s3FS) Write(ctx context.Context, p string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey(p), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: detectMIME(p, data),
	})
	return mapS3Error(err)
}

// Remove reports ErrNotFound for a missing key; S3 itself treats deletes
// of missing keys as successful.
func (s *s3FS) Remove(ctx context.Context, p string) error {
	key := objectKey(p)
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		return mapS3Error(err)
	}
	return mapS3Error(s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}))
}

func (s *s3FS) RemoveAll(ctx context.Context, dir string) error {
	prefix := dirPrefix(dir)

	// returning early cancels the listing and the feeding goroutine
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	found := false
	toRemove := make(chan minio.ObjectInfo)
	listErr := make(chan error, 1)

	go func() {
		defer close(toRemove)
		for obj := range objects {
			if obj.Err != nil {
				listErr <- obj.Err
				return
			}
			found = true
			select {
			case toRemove <- obj:
			case <-ctx.Done():
				listErr <- ctx.Err()
				return
			}
		}
		listErr <- nil
	}()

	for rErr := range s.client.RemoveObjects(ctx, s.bucket, toRemove, minio.RemoveObjectsOptions{}) {
		if rErr.Err != nil {
			return mapS3Error(rErr.Err)
		}
	}
	if err := <-listErr; err != nil {
		return mapS3Error(err)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return nil
}

// MakeDir writes nothing; prefixes need no creation.
func (s *s3FS) MakeDir(context.Context, string) error {
	return nil
}

func (s *s3FS) Probe(ctx context.Context) error {
	// stops the listing goroutine after the first object
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{MaxKeys: 1}) {
		if obj.Err != nil {
			return mapS3Error(obj.Err)
		}
		break
	}
	return nil
}

func dirPrefix(dir string) string {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return ""
	}
	return dir + "/"
}

func objectKey(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
