// AngelaMos | 2026
// store_test.go

package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/testutil"
)

func TestSetTokenDecodesClaims(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := testutil.Token(t, testutil.TokenClaims{
		Subject:   "u-1",
		Role:      "admin",
		Category:  "FIRM",
		ExpiresAt: exp,
	})

	persister := NewMemoryPersister()
	s := NewStore(persister)
	require.NoError(t, s.SetToken(ctx, token))

	claims := s.Claims()
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "FIRM", claims.Category)
	assert.True(t, claims.ExpiresAt.Equal(exp))

	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())

	stored, err := persister.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestDecodeClaimsReadsSignedToken(t *testing.T) {
	exp := time.Now().Add(-time.Hour).Truncate(time.Second)
	token := testutil.Token(t, testutil.TokenClaims{
		Subject:   "u-2",
		Role:      "user",
		Category:  "STUDENT",
		ExpiresAt: exp,
	})

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "u-2", claims.Subject)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "STUDENT", claims.Category)
	assert.True(t, claims.ExpiresAt.Equal(exp))
	assert.True(t, claims.Expired(time.Now()))
}

func TestSetTokenRejectsGarbage(t *testing.T) {
	s := NewStore(nil)
	err := s.SetToken(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, ErrMalformedToken)
	assert.Empty(t, s.Token())
	assert.False(t, s.IsAuthenticated())
}

func TestExpiryUsesClock(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)
	token := testutil.Token(t, testutil.TokenClaims{Subject: "u", ExpiresAt: exp})

	now := time.Now()
	s := NewStore(nil, WithClock(func() time.Time { return now }))
	require.NoError(t, s.SetToken(ctx, token))
	assert.True(t, s.IsAuthenticated())

	now = exp.Add(time.Second)
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.Snapshot().Authenticated)
}

func TestTokenWithoutExpiryNeverExpires(t *testing.T) {
	token := testutil.Token(t, testutil.TokenClaims{Subject: "u"})

	s := NewStore(nil, WithClock(func() time.Time {
		return time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, s.SetToken(context.Background(), token))
	assert.True(t, s.IsAuthenticated())
}

func TestClearDropsEverything(t *testing.T) {
	ctx := context.Background()
	persister := NewMemoryPersister()
	s := NewStore(persister)

	require.NoError(t, s.SetSession(ctx, testutil.UserToken(t, "u-1"), model.User{
		ID:      "u-1",
		Email:   "a@b.c",
		Address: "somewhere",
	}))
	assert.True(t, s.IsFullyOnboarded())

	require.NoError(t, s.Clear(ctx))

	snap := s.Snapshot()
	assert.Empty(t, snap.Token)
	assert.Equal(t, model.User{}, snap.User)
	assert.False(t, snap.Authenticated)
	assert.False(t, s.IsFullyOnboarded())

	stored, err := persister.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestClearIsAtomicForReaders(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.SetSession(ctx, testutil.UserToken(t, "u-1"), model.User{Email: "a@b.c"}))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			snap := s.Snapshot()
			if snap.Token == "" {
				assert.Empty(t, snap.User.Email)
			} else {
				assert.Equal(t, "a@b.c", snap.User.Email)
			}
		}
	}()

	require.NoError(t, s.Clear(ctx))
	close(stop)
	wg.Wait()
}

func TestLoadRestoresValidToken(t *testing.T) {
	ctx := context.Background()
	token := testutil.UserToken(t, "u-9")

	persister := NewMemoryPersister()
	require.NoError(t, persister.Save(ctx, token))

	s := NewStore(persister)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, token, s.Token())
	assert.Equal(t, "u-9", s.Claims().Subject)
}

func TestLoadDiscardsExpiredToken(t *testing.T) {
	ctx := context.Background()
	token := testutil.Token(t, testutil.TokenClaims{
		Subject:   "u",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	persister := NewMemoryPersister()
	require.NoError(t, persister.Save(ctx, token))

	s := NewStore(persister)
	require.NoError(t, s.Load(ctx))
	assert.Empty(t, s.Token())

	stored, err := persister.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestFilePersister(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	p := NewFilePersister(path)

	token, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, p.Save(ctx, "abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc"}`, string(raw))

	token, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, p.Clear(ctx))
	require.NoError(t, p.Clear(ctx))

	token, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRedisPersister(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	p := NewRedisPersister(client, "mmle:session:")

	token, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, p.Save(ctx, "xyz"))
	got, err := mr.Get("mmle:session:token")
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)

	token, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	require.NoError(t, p.Clear(ctx))
	assert.False(t, mr.Exists("mmle:session:token"))
}
