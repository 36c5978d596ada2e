package cows

import (
	"fmt"
	"strings"
)

// StatusAll desactiva el filtro por status.
const StatusAll = "all"

// Filters es el estado de filtros de la lista; se persiste en cada cambio.
type Filters struct {
	SearchQuery  string `json:"searchQuery"`
	StatusFilter string `json:"statusFilter"` // Status o "all"
	PenFilter    string `json:"penFilter"`    // "" = todos
}

func DefaultFilters() Filters {
	return Filters{
		SearchQuery:  "",
		StatusFilter: StatusAll,
		PenFilter:    "",
	}
}

func (f Filters) Validate() error {
	if f.StatusFilter == StatusAll || Status(f.StatusFilter).Valid() {
		return nil
	}
	return fmt.Errorf("%w: unknown status filter %q", ErrInvalidInput, f.StatusFilter)
}

// Matches aplica los tres predicados en AND.
func (f Filters) Matches(c Cow) bool {
	if f.SearchQuery != "" && !strings.Contains(strings.ToLower(c.EarTag), strings.ToLower(f.SearchQuery)) {
		return false
	}
	if f.StatusFilter != StatusAll && string(c.Status) != f.StatusFilter {
		return false
	}
	if f.PenFilter != "" && c.Pen != f.PenFilter {
		return false
	}
	return true
}

// ApplyFilters devuelve las vacas que pasan los filtros, respetando el orden de entrada.
func ApplyFilters(cows []Cow, f Filters) []Cow {
	out := make([]Cow, 0, len(cows))
	for _, c := range cows {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}
