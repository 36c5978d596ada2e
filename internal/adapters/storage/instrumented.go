package storage

import (
	"context"
	"errors"

	"cow-catalog/internal/platform/logger"
	"cow-catalog/internal/platform/metrics"
	"cow-catalog/internal/ports/kv"
)

type instrumented struct {
	next   kv.Store
	driver string
	log    logger.Logger
	m      *metrics.Metrics
}

// Instrument cuenta cada operación por driver y loguea fallas de I/O.
// kv.ErrNotFound no es una falla.
func Instrument(next kv.Store, driver kv.Driver, log logger.Logger, m *metrics.Metrics) kv.Store {
	if log == nil {
		log = logger.Nop()
	}
	return &instrumented{
		next:   next,
		driver: string(driver),
		log:    log.With(map[string]any{"component": "kv", "driver": string(driver)}),
		m:      m,
	}
}

func (s *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.next.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		s.m.ObserveStore(s.driver, "get", nil)
		return nil, err
	}
	s.observe("get", key, err)
	return b, err
}

func (s *instrumented) Set(ctx context.Context, key string, value []byte) error {
	err := s.next.Set(ctx, key, value)
	s.observe("set", key, err)
	return err
}

func (s *instrumented) Remove(ctx context.Context, keys ...string) error {
	err := s.next.Remove(ctx, keys...)
	s.observe("remove", "", err)
	if err == nil {
		s.log.Debug("keys removed", map[string]any{"keys": keys})
	}
	return err
}

func (s *instrumented) observe(op, key string, err error) {
	s.m.ObserveStore(s.driver, op, err)
	if err != nil {
		s.log.Error("kv operation failed", map[string]any{"op": op, "key": key, "err": err})
	}
}
