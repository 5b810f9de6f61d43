// AngelaMos | 2026
// persister.go

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"
)

const tokenKey = "token"

type Persister interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type MemoryPersister struct {
	mu    sync.Mutex
	token string
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load(context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token, nil
}

func (p *MemoryPersister) Save(_ context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = token
	return nil
}

func (p *MemoryPersister) Clear(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	return nil
}

// FilePersister keeps {"token": "..."} in a private file under the user's
// config directory.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "mmle", "session.json"), nil
}

func (p *FilePersister) Path() string {
	return p.path
}

func (p *FilePersister) Load(context.Context) (string, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session file: %w", err)
	}

	var stored map[string]string
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", nil //nolint:nilerr // a corrupt file is treated as logged out
	}
	return stored[tokenKey], nil
}

func (p *FilePersister) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.Marshal(map[string]string{tokenKey: token})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (p *FilePersister) Clear(context.Context) error {
	err := os.Remove(p.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

type RedisPersister struct {
	client redis.Cmdable
	key    string
}

func NewRedisPersister(client redis.Cmdable, prefix string) *RedisPersister {
	return &RedisPersister{client: client, key: prefix + tokenKey}
}

func (p *RedisPersister) Load(ctx context.Context) (string, error) {
	token, err := p.client.Get(ctx, p.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get session: %w", err)
	}
	return token, nil
}

func (p *RedisPersister) Save(ctx context.Context, token string) error {
	if err := p.client.Set(ctx, p.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (p *RedisPersister) Clear(ctx context.Context) error {
	if err := p.client.Del(ctx, p.key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
