// Package file implementa kv.Store sobre el filesystem local: un archivo por key.
package file

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cow-catalog/internal/ports/kv"
)

// KV mapea cada key a <root>/<hex(key)>.json. El nombre en hex evita problemas
// con caracteres como '@' o '/' en las keys.
// No es seguro para múltiples escritores más allá del rename atómico por archivo.
type KV struct {
	root string
}

func New(root string) (*KV, error) {
	if strings.TrimSpace(root) == "" {
		root = "./data/kv"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("file kv: create root: %w", err)
	}
	return &KV{root: root}, nil
}

func (s *KV) pathFor(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("file kv: empty key")
	}
	return filepath.Join(s.root, hex.EncodeToString([]byte(key))+".json"), nil
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, kv.ErrNotFound
		}
		return nil, fmt.Errorf("file kv: read %s: %w", key, err)
	}
	return b, nil
}

// Set escribe a un temp file, hace fsync y luego rename (atómico en el mismo fs).
func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	p, err := s.pathFor(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("file kv: temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file kv: write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file kv: sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file kv: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("file kv: rename %s: %w", key, err)
	}
	return nil
}

func (s *KV) Remove(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		p, err := s.pathFor(k)
		if err != nil {
			return err
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file kv: remove %s: %w", k, err)
		}
	}
	return nil
}
