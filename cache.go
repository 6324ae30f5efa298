package chocosql

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/biyonik/go-choco-sql/internal/logging"
)

// ResultCache, aynı sorgu metni ve sonuç biçimi için daha önce getirilmiş sonuçları saklar.
// Değerler sorguya gömülü olduğundan sorgu metni tek başına anahtar olarak yeterlidir.
type ResultCache interface {
	Get(ctx context.Context, query string, mode OutputMode) (*Result, bool, error)
	Set(ctx context.Context, query string, mode OutputMode, res *Result) error
}

// redisClient, RedisCache'in kullandığı go-redis komutlarıdır.
// *redis.Client, *redis.ClusterClient ve redis.UniversalClient bunu sağlar.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisCache, sonuçları JSON olarak Redis'te tutar.
// JSON'a çevrilen sayılar geri okunurken float64 olur.
type RedisCache struct {
	client redisClient
	ttl    time.Duration
	prefix string
}

// NewRedisCache, verilen istemci ve süreyle bir RedisCache oluşturur.
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	db := chocosql.NewDB(sqlDB, chocosql.WithCache(chocosql.NewRedisCache(rdb, time.Minute)))
func NewRedisCache(client redisClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "chocosql:result:"}
}

type cachedResult struct {
	Mode    OutputMode       `json:"mode"`
	Header  []string         `json:"header,omitempty"`
	Rows    [][]any          `json:"rows,omitempty"`
	Records []map[string]any `json:"records,omitempty"`
}

func (c *RedisCache) key(query string, mode OutputMode) string {
	sum := sha256.Sum256([]byte(mode.String() + "\x00" + query))
	return c.prefix + hex.EncodeToString(sum[:])
}

// Get, önbellekteki sonucu döndürür. Kayıt yoksa ok false, err nil olur.
func (c *RedisCache) Get(ctx context.Context, query string, mode OutputMode) (*Result, bool, error) {
	raw, err := c.client.Get(ctx, c.key(query, mode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var cr cachedResult
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, false, err
	}
	return &Result{
		Query:    query,
		Mode:     cr.Mode,
		Executed: true,
		Header:   cr.Header,
		Rows:     cr.Rows,
		Records:  cr.Records,
	}, true, nil
}

// Set, sonucu ttl süresiyle saklar.
func (c *RedisCache) Set(ctx context.Context, query string, mode OutputMode, res *Result) error {
	raw, err := json.Marshal(cachedResult{
		Mode:    res.Mode,
		Header:  res.Header,
		Rows:    res.Rows,
		Records: res.Records,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(query, mode), raw, c.ttl).Err()
}

// WithCache, DB.Fetch'in sonuçları önbellekten okumasını ve yazmasını sağlar.
// Önbellek hataları loglanır ve sorgu veritabanında çalıştırılır.
func WithCache(cache ResultCache) Option {
	return func(d *DB) {
		d.cache = cache
	}
}

func (d *DB) cached(ctx context.Context, query string, mode OutputMode) (*Result, bool) {
	if d.cache == nil {
		return nil, false
	}
	res, ok, err := d.cache.Get(ctx, query, mode)
	if err != nil {
		logging.Warn("result cache read failed", "error", err)
		return nil, false
	}
	return res, ok
}

func (d *DB) store(ctx context.Context, query string, mode OutputMode, res *Result) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Set(ctx, query, mode, res); err != nil {
		logging.Warn("result cache write failed", "error", err)
	}
}
