// AngelaMos | 2026
// minerals_test.go

package minerals

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	rows  []Mineral
	err   error
	calls int
}

func (r *countingRepo) List(context.Context) ([]Mineral, error) {
	r.calls++
	return r.rows, r.err
}

func TestListReadsThroughCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := &countingRepo{rows: []Mineral{
		{ID: "1", Name: "Iron Ore", Quality: "Lumps", RoyaltyRate: 15},
		{ID: "2", Name: "Coal", Quality: "Grade A", RoyaltyRate: 14},
	}}
	svc := NewService(repo, rdb, nil)
	ctx := context.Background()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Iron Ore", first[0].Name)
	assert.True(t, mr.Exists(cacheKey()))

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)

	mr.FastForward(cacheTTL)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestListFallsBackWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	repo := &countingRepo{rows: []Mineral{{ID: "1", Name: "Bauxite"}}}
	got, err := NewService(repo, rdb, nil).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListWithoutCache(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewService(&countingRepo{err: boom}, nil, nil).List(context.Background())
	assert.ErrorIs(t, err, boom)
}
