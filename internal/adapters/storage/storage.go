// Package storage elige el backend kv.Store según configuración.
package storage

import (
	"context"
	"fmt"
	"strings"

	"cow-catalog/internal/adapters/storage/cached"
	"cow-catalog/internal/adapters/storage/file"
	"cow-catalog/internal/adapters/storage/memory"
	pg "cow-catalog/internal/adapters/storage/postgres"
	rds "cow-catalog/internal/adapters/storage/redis"
	s3kv "cow-catalog/internal/adapters/storage/s3"
	"cow-catalog/internal/adapters/storage/sqlite"
	"cow-catalog/internal/platform/config"
	"cow-catalog/internal/platform/logger"
	"cow-catalog/internal/platform/metrics"
	"cow-catalog/internal/ports/kv"
)

// Opened agrupa el store listo para usar y su función de cierre.
type Opened struct {
	Store  kv.Store
	Driver kv.Driver
	Close  func() error
}

// Open construye el store del driver configurado, opcionalmente con cache,
// e instrumentado con logs + métricas.
func Open(ctx context.Context, cfg config.StorageConfig, log logger.Logger, m *metrics.Metrics) (Opened, error) {
	if log == nil {
		log = logger.Nop()
	}
	driver := kv.Driver(strings.ToLower(strings.TrimSpace(cfg.Driver)))
	if driver == "" {
		driver = kv.DriverSQLite
	}

	var (
		store   kv.Store
		closeFn = func() error { return nil }
	)

	switch driver {
	case kv.DriverMemory:
		store = memory.NewKV()
	case kv.DriverFile:
		s, err := file.New(cfg.File.Root)
		if err != nil {
			return Opened{}, err
		}
		store = s
	case kv.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return Opened{}, err
		}
		store, closeFn = s, s.Close
	case kv.DriverPostgres:
		db, err := pg.Open(cfg.Postgres.DSN)
		if err != nil {
			return Opened{}, fmt.Errorf("open postgres: %w", err)
		}
		repo := pg.NewKVRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return Opened{}, fmt.Errorf("postgres schema: %w", err)
		}
		store, closeFn = repo, db.Close
	case kv.DriverRedis:
		s, err := rds.Open(ctx, rds.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return Opened{}, err
		}
		store, closeFn = s, s.Close
	case kv.DriverS3:
		s, err := s3kv.Open(ctx, s3kv.Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
			Prefix:    cfg.S3.Prefix,
		})
		if err != nil {
			return Opened{}, err
		}
		store = s
	default:
		return Opened{}, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	if cfg.Cache.Enabled {
		store = cached.New(store, cfg.Cache.TTL)
	}

	log.Info("storage opened", map[string]any{
		"driver": string(driver),
		"cache":  cfg.Cache.Enabled,
	})

	return Opened{
		Store:  Instrument(store, driver, log, m),
		Driver: driver,
		Close:  closeFn,
	}, nil
}
