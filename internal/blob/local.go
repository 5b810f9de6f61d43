// AngelaMos | 2026
// local.go

package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore writes uploads under a directory that the api server also
// serves, for development without object storage.
type LocalStore struct {
	root      string
	publicURL string
	now       func() time.Time
}

func NewLocalStore(root, publicURL string) (*LocalStore, error) {
	if root == "" {
		return nil, errors.New("local storage dir is empty")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{root: root, publicURL: publicURL, now: time.Now}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Put(
	ctx context.Context,
	prefix, fileName string,
	body io.Reader,
) (Object, error) {
	key := ObjectKey(prefix, fileName, s.now())
	dst, err := s.path(key)
	if err != nil {
		return Object{}, err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return Object{}, fmt.Errorf("put %s: %w", key, err)
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return Object{}, fmt.Errorf("put %s: %w", key, err)
	}

	n, err := io.Copy(f, &ctxReader{ctx: ctx, r: body})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst) //nolint:errcheck // cleanup of partial upload
		return Object{}, fmt.Errorf("put %s: %w", key, err)
	}

	return Object{
		Key:         key,
		URL:         joinURL(s.publicURL, key),
		FileName:    fileName,
		ContentType: ContentType(fileName),
		Size:        n,
	}, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) ||
		strings.HasPrefix(clean, ".."+string(filepath.Separator)) || clean == ".." {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
