// Package redis implementa kv.Store sobre Redis con un prefijo de namespace.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cow-catalog/internal/ports/kv"

	"github.com/redis/go-redis/v9"
)

type KV struct {
	client *redis.Client
	prefix string
}

type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Open crea el cliente y verifica conectividad con PING.
func Open(ctx context.Context, opts Options) (*KV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return New(client, opts.Prefix), nil
}

func New(client *redis.Client, prefix string) *KV {
	return &KV{client: client, prefix: prefix}
}

func (s *KV) Close() error {
	return s.client.Close()
}

func (s *KV) key(k string) string {
	return s.prefix + k
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis kv: get %s: %w", key, err)
	}
	return v, nil
}

// Set sin expiración: el catálogo es durable.
func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("redis kv: key required")
	}
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis kv: set %s: %w", key, err)
	}
	return nil
}

func (s *KV) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.key(k))
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis kv: remove: %w", err)
	}
	return nil
}
