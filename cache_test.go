package chocosql

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/go-choco-sql/dialect"
)

// fakeRedis, redisClient'ı bellekte taklit eder.
type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

// memoryCache, DB testleri için basit bir ResultCache'tir.
type memoryCache struct {
	entries map[string]*Result
	gets    int
	sets    int
}

func (m *memoryCache) Get(_ context.Context, query string, mode OutputMode) (*Result, bool, error) {
	m.gets++
	res, ok := m.entries[mode.String()+query]
	return res, ok, nil
}

func (m *memoryCache) Set(_ context.Context, query string, mode OutputMode, res *Result) error {
	m.sets++
	m.entries[mode.String()+query] = res
	return nil
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	cache := NewRedisCache(rdb, time.Minute)

	query := "SELECT country FROM public.locations;"

	_, ok, err := cache.Get(ctx, query, OutputRecords)
	require.NoError(t, err)
	assert.False(t, ok)

	err = cache.Set(ctx, query, OutputRecords, &Result{
		Query:    query,
		Mode:     OutputRecords,
		Executed: true,
		Records:  []map[string]any{{"country": "Brazil", "population": 212000000}},
	})
	require.NoError(t, err)

	require.Len(t, rdb.data, 1)
	for key, ttl := range rdb.ttls {
		assert.True(t, strings.HasPrefix(key, "chocosql:result:"))
		assert.Equal(t, time.Minute, ttl)
	}

	res, ok, err := cache.Get(ctx, query, OutputRecords)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, query, res.Query)
	assert.True(t, res.Executed)
	// JSON numbers come back as float64.
	assert.Equal(t, []map[string]any{{"country": "Brazil", "population": float64(212000000)}}, res.Records)

	// The output mode is part of the key.
	_, ok, err = cache.Get(ctx, query, OutputRows)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheErrors(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	rdb.err = errors.New("connection refused")
	cache := NewRedisCache(rdb, time.Minute)

	_, _, err := cache.Get(ctx, "SELECT 1;", OutputRows)
	assert.EqualError(t, err, "connection refused")
	assert.EqualError(t, cache.Set(ctx, "SELECT 1;", OutputRows, &Result{}), "connection refused")

	rdb.err = nil
	rdb.data[cache.key("SELECT 1;", OutputRows)] = "not json"
	_, _, err = cache.Get(ctx, "SELECT 1;", OutputRows)
	assert.Error(t, err)
}

func TestDBUsesCache(t *testing.T) {
	ctx := context.Background()
	sqlDB := openLocations(t)
	cache := &memoryCache{entries: map[string]*Result{}}
	db := NewDB(sqlDB, WithGrammar(dialect.SQLite()), WithCache(cache))

	first, err := db.Query().Select("country").From("locations").Where("country", "=", "Chile").GetContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 1, cache.sets)

	_, err = sqlDB.Exec(`DELETE FROM locations`)
	require.NoError(t, err)

	second, err := db.Query().Select("country").From("locations").Where("country", "=", "Chile").GetContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.sets)

	// A different output mode misses the cache.
	third, err := db.Query().Select("country").From("locations").Where("country", "=", "Chile").RowsOnly().GetContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, third.Len())
}

func TestDBCacheFailureFallsBack(t *testing.T) {
	rdb := newFakeRedis()
	rdb.err = errors.New("connection refused")
	db := NewDB(openLocations(t), WithGrammar(dialect.SQLite()), WithCache(NewRedisCache(rdb, time.Minute)))

	res, err := db.Query().From("locations").RowsOnly().Get()
	require.NoError(t, err)
	assert.Equal(t, 3, res.Len())
}
