package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/tagpicker/internal/cache"
	"github.com/gravitrone/tagpicker/internal/taxonomy"
)

func TestLoadSharesTagsThroughCache(t *testing.T) {
	mr := miniredis.RunT(t)
	shared := cache.NewRedisCache(cache.NewRedisClient(mr.Addr(), "", 0), time.Minute)
	ctx := context.Background()

	first := abcSource()
	New(first, nil, WithCache(shared)).Load(ctx, "p", "en", Query{})
	assert.Equal(t, 1, first.allCalls)

	second := abcSource()
	res := New(second, nil, WithCache(shared)).Load(ctx, "p", "en", Query{Mode: ModeParent, Parent: "B"})
	require.NoError(t, res.Err)
	assert.Equal(t, 0, second.allCalls)
	assert.Equal(t, []string{"B", "C"}, taxonomy.Codenames(res.Tags))
}

func TestLoadFallsThroughBrokenCache(t *testing.T) {
	mr := miniredis.RunT(t)
	shared := cache.NewRedisCache(cache.NewRedisClient(mr.Addr(), "", 0), time.Minute)
	mr.Close()

	logger, logs := observed()
	src := abcSource()
	res := New(src, logger, WithCache(shared)).Load(context.Background(), "p", "en", Query{})

	require.NoError(t, res.Err)
	assert.Len(t, res.Tags, 4)
	assert.Equal(t, 1, logs.FilterMessage("tag cache read failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("tag cache write failed").Len())
}
