package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Drolfothesgnir/stackmark/markdown"
	"github.com/Drolfothesgnir/stackmark/render"
	"github.com/Drolfothesgnir/stackmark/util"
	"github.com/redis/go-redis/v9"
)

// RenderPrefix is the key prefix of cached render results.
const RenderPrefix = "render:"

// ErrCacheMiss is returned when the key is not stored or already expired.
var ErrCacheMiss = errors.New("render result not found or expired")

// Entry is a cached render result. Output holds html or markdown,
// Tree holds the JSON tree.
type Entry struct {
	Format    string                   `json:"format"`
	Output    string                   `json:"output,omitempty"`
	Tree      *render.SerializableTree `json:"tree,omitempty"`
	Warnings  []markdown.Warning       `json:"warnings,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

type Store interface {
	SaveRender(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	GetRender(ctx context.Context, key string) (*Entry, error)
	DeleteRender(ctx context.Context, key string) error
}

type RedisStore struct {
	client *redis.Client
}

func NewStore(config *util.Config) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress, //  default "localhost:6379"
		Password: "",                  // "" for no password, ok for now
		DB:       0,                   // 0 for default database
	})

	return NewRedisStore(rdb)
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Key builds the cache key of a single render request.
// Every input that changes the output takes part in the hash.
func Key(backend, format string, emoji, hardBreaks bool, input string) string {
	h := sha256.New()
	for _, part := range []string{backend, format, strconv.FormatBool(emoji), strconv.FormatBool(hardBreaks)} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	h.Write([]byte(input))

	return RenderPrefix + hex.EncodeToString(h.Sum(nil))
}

// SaveRender stores the render result under key for ttl.
func (store *RedisStore) SaveRender(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize render result: %w", err)
	}

	if err := store.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save render result: %w", err)
	}

	return nil
}

// GetRender returns the render result stored under key.
// Returns ErrCacheMiss if not found or expired.
func (store *RedisStore) GetRender(ctx context.Context, key string) (*Entry, error) {
	jsonData, err := store.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get render result: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(jsonData), &entry); err != nil {
		return nil, fmt.Errorf("failed to parse render result json: %w", err)
	}

	return &entry, nil
}

func (store *RedisStore) DeleteRender(ctx context.Context, key string) error {
	return store.client.Del(ctx, key).Err()
}

// Close releases the redis connection pool.
func (store *RedisStore) Close() error {
	return store.client.Close()
}
