// Package cached decora un kv.Store con un cache en memoria (go-cache).
// Válido solo con un único escritor: las escrituras pasan por aquí e invalidan el cache.
package cached

import (
	"context"
	"errors"
	"time"

	"cow-catalog/internal/ports/kv"

	"github.com/patrickmn/go-cache"
)

// marcador para cachear "no existe" y no volver al backend
type absent struct{}

type KV struct {
	next  kv.Store
	cache *cache.Cache
}

func New(next kv.Store, ttl time.Duration) *KV {
	return &KV{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := s.cache.Get(key); ok {
		switch b := v.(type) {
		case absent:
			return nil, kv.ErrNotFound
		case []byte:
			return clone(b), nil
		}
	}

	b, err := s.next.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		s.cache.SetDefault(key, absent{})
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, clone(b))
	return b, nil
}

// Set escribe primero en el backend; el cache solo se actualiza si la escritura fue OK.
func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		s.cache.Delete(key)
		return err
	}
	s.cache.SetDefault(key, clone(value))
	return nil
}

// Remove borra primero en el backend y después invalida: un Get concurrente
// en el medio no puede dejar cacheado el valor viejo.
func (s *KV) Remove(ctx context.Context, keys ...string) error {
	err := s.next.Remove(ctx, keys...)
	for _, k := range keys {
		s.cache.Delete(k)
	}
	return err
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
