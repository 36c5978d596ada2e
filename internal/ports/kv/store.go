package kv

import (
	"context"
	"errors"
)

// ErrNotFound se devuelve cuando la key no existe en el store.
var ErrNotFound = errors.New("kv: key not found")

// Store es un map durable de key (string) a blob (JSON serializado).
// Cada escritura reemplaza el blob completo: no hay patch por campo.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove borra las keys indicadas; las que no existen se ignoran.
	Remove(ctx context.Context, keys ...string) error
}

// Driver identifica el backend concreto.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverRedis    Driver = "redis"
	DriverS3       Driver = "s3"
)
