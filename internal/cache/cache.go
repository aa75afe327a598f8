// cache — read-through кэш страниц списка вопросов в Redis.
//
// Ключ страницы включает номер поколения. Любая запись вопросов увеличивает
// поколение (Invalidate), и старые страницы больше не читаются, а истекают
// по TTL. Ключ вычисляется до запроса в БД, поэтому результат чтения,
// устаревший из-за параллельной записи, попадает в старое поколение.
package cache

//go:generate mockgen -source=cache.go -destination=../../mocks/cache.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/go-qa-service/internal/models"
)

// QuestionCache — контракт кэша страниц вопросов.
type QuestionCache interface {
	// Key возвращает ключ страницы для текущего поколения.
	Key(ctx context.Context, page models.Pagination) (string, error)
	// Get возвращает страницу и признак её наличия в кэше.
	Get(ctx context.Context, key string) ([]models.Question, bool, error)
	// Set сохраняет страницу с TTL кэша.
	Set(ctx context.Context, key string, questions []models.Question) error
	// Invalidate начинает новое поколение.
	Invalidate(ctx context.Context) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "qa:questions:".
func NewRedisCache(ctx context.Context, redisURL, prefix string, ttl time.Duration) (QuestionCache, error) {
	const op = "cache.NewRedisCache"

	if prefix == "" {
		prefix = "qa:questions:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &redisCache{rdb: rdb, prefix: prefix, ttl: ttl}, nil
}

func (c *redisCache) genKey() string { return c.prefix + "gen" }

func (c *redisCache) Key(ctx context.Context, page models.Pagination) (string, error) {
	const op = "cache.Key"

	gen, err := c.rdb.Get(ctx, c.genKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return pageKey(c.prefix, gen, page), nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]models.Question, bool, error) {
	const op = "cache.Get"

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var out []models.Question
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return out, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, questions []models.Question) error {
	const op = "cache.Set"

	b, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *redisCache) Invalidate(ctx context.Context) error {
	const op = "cache.Invalidate"

	if err := c.rdb.Incr(ctx, c.genKey()).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *redisCache) Close() error { return c.rdb.Close() }

// pageKey: <prefix>g<gen>:<limit|all>:<offset>.
func pageKey(prefix string, gen int64, page models.Pagination) string {
	limit := "all"
	if page.Limit != nil {
		limit = strconv.Itoa(*page.Limit)
	}

	return prefix + "g" + strconv.FormatInt(gen, 10) + ":" + limit + ":" + strconv.Itoa(page.Offset)
}
