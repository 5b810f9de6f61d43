// AngelaMos | 2026
// blob.go

package blob

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rgrams-coder/aicmmlr/internal/config"
)

// Object describes a stored upload. URL is what clients download from.
type Object struct {
	Key         string
	URL         string
	FileName    string
	ContentType string
	Size        int64
}

type Store interface {
	Put(ctx context.Context, prefix, fileName string, body io.Reader) (Object, error)
	Delete(ctx context.Context, key string) error
}

func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.LocalDir, cfg.PublicURL)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey namespaces an upload under prefix/yyyy/mm with a random component
// so two uploads of the same file never collide.
func ObjectKey(prefix, fileName string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "file"
	}
	return path.Join(
		prefix,
		now.UTC().Format("2006/01"),
		uuid.New().String()[:8]+"-"+base,
	)
}

func ContentType(fileName string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
