package quotecache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"StockMind/internal/domain/models"
	"StockMind/internal/domain/repository"
)

// RedisStore persists series as CSV blobs in Redis, one key per symbol
// plus a companion key holding the write time. Entries never expire: age
// is metadata, not an eviction trigger.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "stockmind"
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) Get(ctx context.Context, symbol string) (models.Series, time.Time, error) {
	data, err := s.client.Get(ctx, s.key(symbol)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, time.Time{}, repository.ErrCacheMiss
		}
		return nil, time.Time{}, fmt.Errorf("redis get: %w", err)
	}

	series, err := DecodeSeries(data)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("decode %s: %w", symbol, err)
	}

	var writtenAt time.Time
	if raw, err := s.client.Get(ctx, s.key(symbol)+":written_at").Result(); err == nil {
		if ns, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
			writtenAt = time.Unix(0, ns).UTC()
		}
	}
	return series, writtenAt, nil
}

func (s *RedisStore) Put(ctx context.Context, symbol string, series models.Series) error {
	data, err := EncodeSeries(series)
	if err != nil {
		return fmt.Errorf("encode %s: %w", symbol, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(symbol), data, 0)
	pipe.Set(ctx, s.key(symbol)+":written_at", strconv.FormatInt(time.Now().UnixNano(), 10), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(symbol string) string {
	return s.prefix + ":quotes:" + strings.ToUpper(symbol)
}

var _ repository.QuoteCache = (*RedisStore)(nil)
