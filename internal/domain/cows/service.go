package cows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"cow-catalog/internal/platform/logger"
	"cow-catalog/internal/platform/metrics"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
)

// Service es la única fuente de verdad del catálogo dentro del proceso:
// mantiene la vista en memoria (vacas + filtros) y la sincroniza con el Repository.
// Regla: primero se persiste, y solo si la escritura fue OK se actualiza la vista.
type Service struct {
	repo  Repository
	log   logger.Logger
	m     *metrics.Metrics
	now   func() time.Time
	newID func() string
	rng   *rand.Rand

	mu      sync.RWMutex
	loaded  bool
	cows    []Cow
	filters Filters
}

func NewService(repo Repository, log logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		log:     log.With(map[string]any{"component": "catalog"}),
		m:       m,
		now:     time.Now,
		newID:   uuid.NewString,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x636f77)),
		cows:    []Cow{},
		filters: DefaultFilters(),
	}
}

// -------------------------
// Carga
// -------------------------

// Load lee vacas y filtros. Si la lectura falla la vista queda vacía/default
// (la UI sigue usable) y se devuelve el error.
func (s *Service) Load(ctx context.Context) (err error) {
	defer s.observe("load", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Service) loadLocked(ctx context.Context) error {
	s.loaded = true

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("error loading cows", map[string]any{"err": err})
		s.cows = []Cow{}
		s.filters = DefaultFilters()
		s.syncHerdSize()
		return err
	}
	s.cows = newestFirst(all)
	s.syncHerdSize()

	f, err := s.repo.GetFilters(ctx)
	if err != nil {
		s.log.Error("error loading filters", map[string]any{"err": err})
		s.filters = DefaultFilters()
		return err
	}
	s.filters = f
	return nil
}

// Refresh vuelve a leer solo las vacas (los filtros quedan como están).
func (s *Service) Refresh(ctx context.Context) (err error) {
	defer s.observe("refresh", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("error refreshing cows", map[string]any{"err": err})
		return err
	}
	s.loaded = true
	s.cows = newestFirst(all)
	s.syncHerdSize()
	return nil
}

// ensureLoaded se llama con s.mu tomado en escritura.
func (s *Service) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	_ = s.loadLocked(ctx)
}

// el storage guarda en orden de alta; la vista muestra lo último primero
func newestFirst(all []Cow) []Cow {
	out := make([]Cow, len(all))
	for i, c := range all {
		out[len(all)-1-i] = c
	}
	return out
}

// -------------------------
// Lecturas (sobre la vista)
// -------------------------

func (s *Service) Cows() []Cow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Cow, len(s.cows))
	copy(out, s.cows)
	return out
}

func (s *Service) Get(id string) (Cow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cows {
		if c.ID == id {
			return c, true
		}
	}
	return Cow{}, false
}

func (s *Service) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// Filtered aplica los filtros guardados.
func (s *Service) Filtered() []Cow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ApplyFilters(s.cows, s.filters)
}

// FilteredBy aplica filtros ad-hoc sin persistirlos.
func (s *Service) FilteredBy(f Filters) []Cow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ApplyFilters(s.cows, f)
}

func (s *Service) Pens() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DistinctPens(s.cows)
}

// -------------------------
// Alta
// -------------------------

type RegisterInput struct {
	EarTag string   `json:"earTag" validate:"required"`
	Sex    Sex      `json:"sex" validate:"required,cow_sex"`
	Pen    string   `json:"pen" validate:"required"`
	Status Status   `json:"status" validate:"omitempty,cow_status"`
	Weight *float64 `json:"weight" validate:"omitnil,gt=0"`
}

// Register valida, arma la vaca con su evento "created" (y pesaje inicial si hay peso)
// y la persiste. Los errores de validación vuelven como *ValidationError.
func (s *Service) Register(ctx context.Context, in RegisterInput) (c Cow, err error) {
	defer s.observe("register", time.Now(), &err)

	in.EarTag = strings.TrimSpace(in.EarTag)
	in.Pen = strings.TrimSpace(in.Pen)
	if in.Status == "" {
		in.Status = StatusActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	verr := validateStruct(in)
	if verr == nil {
		verr = &ValidationError{Fields: map[string]string{}}
	}
	if in.EarTag != "" {
		// Pre-check para feedback por campo; Add lo vuelve a verificar atómicamente.
		_, exists, ferr := s.repo.FindByEarTag(ctx, in.EarTag)
		if ferr != nil {
			s.log.Warn("ear tag lookup failed", map[string]any{"ear_tag": in.EarTag, "err": ferr})
		} else if exists {
			verr.Fields["earTag"] = msgEarTagTaken
		}
	}
	if len(verr.Fields) > 0 {
		return Cow{}, verr
	}

	now := s.now().UTC()
	c = Cow{
		ID:     s.newID(),
		EarTag: in.EarTag,
		Sex:    in.Sex,
		Pen:    in.Pen,
		Status: in.Status,
		Weight: in.Weight,
		Events: []CowEvent{{
			ID:          s.newID(),
			Type:        EventCreated,
			Date:        now,
			Description: labelCreated,
		}},
		CreatedAt: now,
	}
	if in.Weight != nil {
		c.Events = append(c.Events, CowEvent{
			ID:          s.newID(),
			Type:        EventWeightCheck,
			Date:        now,
			Description: "Initial weight recorded",
			Weight:      Float(*in.Weight),
		})
	}

	if err := s.repo.Add(ctx, c); err != nil {
		if errors.Is(err, ErrDuplicateEarTag) {
			return Cow{}, &ValidationError{Fields: map[string]string{"earTag": msgEarTagTaken}}
		}
		s.log.Error("error adding cow", map[string]any{"ear_tag": c.EarTag, "err": err})
		return Cow{}, fmt.Errorf("failed to add cow: %w", err)
	}

	s.cows = append([]Cow{c}, s.cows...)
	s.syncHerdSize()
	s.log.Info("cow registered", map[string]any{"cow_id": c.ID, "ear_tag": c.EarTag, "pen": c.Pen})
	return c, nil
}

// -------------------------
// Modificación
// -------------------------

// Update reemplaza el registro completo. A diferencia del Repository (no-op silencioso),
// aquí un ID desconocido devuelve ErrNotFound para que el caller pueda informarlo.
// Weight no se recalcula a partir de los eventos.
func (s *Service) Update(ctx context.Context, c Cow) (err error) {
	defer s.observe("update", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	idx := s.indexLocked(c.ID)
	if idx < 0 {
		return ErrNotFound
	}
	current := s.cows[idx]

	c.EarTag = strings.TrimSpace(c.EarTag)
	c.Pen = strings.TrimSpace(c.Pen)
	if verr := s.validateUpdateLocked(current, c); verr != nil {
		return verr
	}

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, ErrDuplicateEarTag) {
			return &ValidationError{Fields: map[string]string{"earTag": msgEarTagTaken}}
		}
		s.log.Error("error updating cow", map[string]any{"cow_id": c.ID, "err": err})
		return fmt.Errorf("failed to update cow: %w", err)
	}

	s.cows[idx] = c
	s.syncHerdSize()
	return nil
}

func (s *Service) indexLocked(id string) int {
	for i, c := range s.cows {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) validateUpdateLocked(current, next Cow) *ValidationError {
	fields := map[string]string{}

	if next.EarTag == "" {
		fields["earTag"] = fieldMessages["earTag"]["required"]
	} else {
		for _, other := range s.cows {
			if other.ID != next.ID && strings.EqualFold(other.EarTag, next.EarTag) {
				fields["earTag"] = msgEarTagTaken
				break
			}
		}
	}
	if next.Pen == "" {
		fields["pen"] = fieldMessages["pen"]["required"]
	}
	if !next.Status.Valid() {
		fields["status"] = fieldMessages["status"]["cow_status"]
	}
	if next.Sex != current.Sex {
		fields["sex"] = "Sex cannot be changed"
	}
	if !next.CreatedAt.Equal(current.CreatedAt) {
		fields["createdAt"] = "Creation date cannot be changed"
	}
	if next.Weight != nil && *next.Weight <= 0 {
		fields["weight"] = fieldMessages["weight"]["gt"]
	}
	if !keepsHistory(current.Events, next.Events) {
		fields["events"] = "Events cannot be removed"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// keepsHistory: el historial es append-only, todo evento previo debe seguir presente.
func keepsHistory(prev, next []CowEvent) bool {
	ids := make(map[string]struct{}, len(next))
	for _, e := range next {
		ids[e.ID] = struct{}{}
	}
	for _, e := range prev {
		if _, ok := ids[e.ID]; !ok {
			return false
		}
	}
	return true
}

// Patch aplica un JSON merge patch (RFC 7396) sobre el registro actual y lo guarda con Update.
// id, sex y createdAt no se pueden tocar.
func (s *Service) Patch(ctx context.Context, id string, patch []byte) (Cow, error) {
	current, ok := s.Get(id)
	if !ok {
		return Cow{}, ErrNotFound
	}

	orig, err := json.Marshal(current)
	if err != nil {
		return Cow{}, fmt.Errorf("encode cow: %w", err)
	}
	merged, err := jsonpatch.MergePatch(orig, patch)
	if err != nil {
		return Cow{}, fmt.Errorf("%w: invalid merge patch: %v", ErrInvalidInput, err)
	}

	var next Cow
	if err := json.Unmarshal(merged, &next); err != nil {
		return Cow{}, fmt.Errorf("%w: patched cow: %v", ErrInvalidInput, err)
	}
	next.ID = current.ID
	next.Sex = current.Sex
	next.CreatedAt = current.CreatedAt

	if err := s.Update(ctx, next); err != nil {
		return Cow{}, err
	}
	return next, nil
}

// -------------------------
// Filtros
// -------------------------

func (s *Service) SetFilters(ctx context.Context, f Filters) (err error) {
	defer s.observe("set_filters", time.Now(), &err)

	if err := f.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveFilters(ctx, f); err != nil {
		s.log.Error("error saving filters", map[string]any{"err": err})
		return fmt.Errorf("failed to save filters: %w", err)
	}
	s.filters = f
	return nil
}

// -------------------------
// Reset
// -------------------------

// Reset borra todo el catálogo y los filtros. Irreversible.
func (s *Service) Reset(ctx context.Context) (err error) {
	defer s.observe("reset", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ClearAll(ctx); err != nil {
		s.log.Error("error clearing storage", map[string]any{"err": err})
		return fmt.Errorf("failed to clear catalog: %w", err)
	}
	s.cows = []Cow{}
	s.filters = DefaultFilters()
	s.loaded = true
	s.syncHerdSize()
	s.log.Warn("catalog cleared", nil)
	return nil
}

// -------------------------
// helpers
// -------------------------

func (s *Service) observe(op string, started time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	// los errores de validación no son fallas del sistema
	if _, ok := AsValidationError(err); ok {
		err = nil
	}
	s.m.ObserveOperation(op, started, err)
}

func (s *Service) syncHerdSize() {
	s.m.SetHerdSize(CountByStatus(s.cows))
}
