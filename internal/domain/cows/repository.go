package cows

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("cow not found")
	ErrDuplicateEarTag = errors.New("ear tag already exists")
)

// Repository es el catálogo persistido. Cada operación de escritura es un
// read-modify-write de la colección completa.
type Repository interface {
	ListAll(ctx context.Context) ([]Cow, error)
	// FindByEarTag compara sin distinguir mayúsculas.
	FindByEarTag(ctx context.Context, earTag string) (Cow, bool, error)
	// Add falla con ErrDuplicateEarTag si el tag ya existe.
	Add(ctx context.Context, c Cow) error
	// AddMany agrega el lote en una sola escritura; los tags repetidos se saltean.
	// Si la escritura falla no queda nada del lote.
	AddMany(ctx context.Context, batch []Cow) (added int, err error)
	// Update reemplaza por ID; si el ID no existe no hace nada.
	// Falla con ErrDuplicateEarTag si el nuevo tag es de otra vaca.
	Update(ctx context.Context, c Cow) error

	GetFilters(ctx context.Context) (Filters, error)
	SaveFilters(ctx context.Context, f Filters) error

	// ClearAll borra vacas y filtros. Irreversible.
	ClearAll(ctx context.Context) error
}
