package cows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cow-catalog/internal/ports/kv"
)

// Keys de los dos registros persistidos.
const (
	CowsKey    = "@cow_catalog_cows"
	FiltersKey = "@cow_catalog_filters"
)

// KVRepository guarda la colección como un único blob JSON en un kv.Store.
// mu serializa los ciclos read-modify-write de este proceso.
type KVRepository struct {
	store kv.Store
	mu    sync.Mutex
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) ListAll(ctx context.Context) ([]Cow, error) {
	return r.load(ctx)
}

func (r *KVRepository) load(ctx context.Context) ([]Cow, error) {
	b, err := r.store.Get(ctx, CowsKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []Cow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cows: %w", err)
	}

	var out []Cow
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode cows: %w", err)
	}
	if out == nil {
		out = []Cow{}
	}
	return out, nil
}

func (r *KVRepository) save(ctx context.Context, all []Cow) error {
	b, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode cows: %w", err)
	}
	if err := r.store.Set(ctx, CowsKey, b); err != nil {
		return fmt.Errorf("save cows: %w", err)
	}
	return nil
}

func (r *KVRepository) FindByEarTag(ctx context.Context, earTag string) (Cow, bool, error) {
	all, err := r.load(ctx)
	if err != nil {
		return Cow{}, false, err
	}
	c, ok := findByEarTag(all, earTag)
	return c, ok, nil
}

func findByEarTag(all []Cow, earTag string) (Cow, bool) {
	for _, c := range all {
		if strings.EqualFold(c.EarTag, earTag) {
			return c, true
		}
	}
	return Cow{}, false
}

// Add chequea unicidad del ear tag dentro del mismo ciclo que el append,
// así no queda ventana entre el check y la escritura.
func (r *KVRepository) Add(ctx context.Context, c Cow) error {
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.EarTag) == "" {
		return ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, exists := findByEarTag(all, strings.TrimSpace(c.EarTag)); exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEarTag, c.EarTag)
	}

	return r.save(ctx, append(all, c))
}

func (r *KVRepository) AddMany(ctx context.Context, batch []Cow) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, c := range batch {
		tag := strings.TrimSpace(c.EarTag)
		if strings.TrimSpace(c.ID) == "" || tag == "" {
			return 0, ErrInvalidInput
		}
		// all ya incluye lo agregado del mismo lote
		if _, exists := findByEarTag(all, tag); exists {
			continue
		}
		all = append(all, c)
		added++
	}
	if added == 0 {
		return 0, nil
	}

	if err := r.save(ctx, all); err != nil {
		return 0, err
	}
	return added, nil
}

func (r *KVRepository) Update(ctx context.Context, c Cow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range all {
		if all[i].ID == c.ID {
			idx = i
			continue
		}
		if strings.EqualFold(all[i].EarTag, strings.TrimSpace(c.EarTag)) {
			return fmt.Errorf("%w: %s", ErrDuplicateEarTag, c.EarTag)
		}
	}
	// ID desconocido: no-op silencioso
	if idx < 0 {
		return nil
	}

	all[idx] = c
	return r.save(ctx, all)
}

func (r *KVRepository) GetFilters(ctx context.Context) (Filters, error) {
	b, err := r.store.Get(ctx, FiltersKey)
	if errors.Is(err, kv.ErrNotFound) {
		return DefaultFilters(), nil
	}
	if err != nil {
		return DefaultFilters(), fmt.Errorf("load filters: %w", err)
	}

	f := DefaultFilters()
	if err := json.Unmarshal(b, &f); err != nil {
		return DefaultFilters(), fmt.Errorf("decode filters: %w", err)
	}
	return f, nil
}

func (r *KVRepository) SaveFilters(ctx context.Context, f Filters) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	if err := r.store.Set(ctx, FiltersKey, b); err != nil {
		return fmt.Errorf("save filters: %w", err)
	}
	return nil
}

func (r *KVRepository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Remove(ctx, CowsKey, FiltersKey); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	return nil
}
