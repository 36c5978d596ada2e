package cows

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Datos de ejemplo para demos y desarrollo local.
var (
	samplePens       = []string{"A1", "A2", "B1", "B2", "C1", "C2"}
	sampleTreatments = []string{"Vaccination", "Antibiotic treatment", "Vitamin injection", "Hoof trimming"}
)

const DefaultSampleSize = 20

type sampler struct {
	rng   *rand.Rand
	now   time.Time
	newID func() string
}

func (g sampler) pick(xs []string) string {
	return xs[g.rng.IntN(len(xs))]
}

func (g sampler) daysAgo(n int) time.Time {
	return g.now.AddDate(0, 0, -n)
}

// GenerateSample arma n vacas con historial aleatorio, con tags de 4 dígitos
// que no estén en taken (comparación sin mayúsculas). Ordenadas por ear tag.
func GenerateSample(n int, now time.Time, rng *rand.Rand, newID func() string, taken map[string]struct{}) []Cow {
	g := sampler{rng: rng, now: now.UTC(), newID: newID}

	used := make(map[string]struct{}, len(taken)+n)
	for t := range taken {
		used[strings.ToLower(t)] = struct{}{}
	}

	out := make([]Cow, 0, n)
	for range n {
		// hay 9000 tags posibles
		if len(used) >= 9000 {
			break
		}
		var tag string
		for {
			tag = strconv.Itoa(g.rng.IntN(9000) + 1000)
			if _, dup := used[tag]; !dup {
				break
			}
		}
		used[tag] = struct{}{}
		out = append(out, g.cow(tag))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].EarTag < out[j].EarTag })
	return out
}

func (g sampler) cow(tag string) Cow {
	created := g.daysAgo(g.rng.IntN(365) + 30)

	status := StatusActive
	if g.rng.Float64() > 0.85 {
		status = []Status{StatusInTreatment, StatusDeceased}[g.rng.IntN(2)]
	}
	sex := SexFemale
	if g.rng.Float64() > 0.5 {
		sex = SexMale
	}

	c := Cow{
		ID:        g.newID(),
		EarTag:    tag,
		Sex:       sex,
		Pen:       g.pick(samplePens),
		Status:    status,
		Events:    g.events(created),
		CreatedAt: created,
	}
	if w, ok := LatestWeight(c); ok {
		c.Weight = Float(w)
	}
	return c
}

// weighInDaysAgo reparte los pesajes en partes iguales desde el alta:
// floor(since / (checks+1) * (i+1)).
func weighInDaysAgo(since, checks, i int) int {
	return since * (i + 1) / (checks + 1)
}

func (g sampler) events(created time.Time) []CowEvent {
	since := elapsedDays(created, g.now)

	events := []CowEvent{{
		ID:          g.newID(),
		Type:        EventCreated,
		Date:        created,
		Description: labelCreated,
	}}

	checks := g.rng.IntN(3) + 1
	for i := range checks {
		ago := weighInDaysAgo(since, checks, i)
		events = append(events, CowEvent{
			ID:          g.newID(),
			Type:        EventWeightCheck,
			Date:        g.daysAgo(ago),
			Description: "Regular weight check",
			Weight:      Float(float64(g.rng.IntN(200) + 300)),
		})
	}

	if g.rng.Float64() > 0.7 {
		events = append(events, CowEvent{
			ID:          g.newID(),
			Type:        EventTreatment,
			Date:        g.daysAgo(g.rng.IntN(since + 1)),
			Description: g.pick(sampleTreatments),
		})
	}

	if g.rng.Float64() > 0.6 {
		from := g.pick(samplePens)
		to := g.pick(samplePens)
		for to == from {
			to = g.pick(samplePens)
		}
		events = append(events, CowEvent{
			ID:          g.newID(),
			Type:        EventPenMove,
			Date:        g.daysAgo(g.rng.IntN(since + 1)),
			Description: "Pen relocation",
			FromPen:     from,
			ToPen:       to,
		})
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events
}

// Seed agrega n vacas de ejemplo al catálogo y recarga la vista.
// Devuelve cuántas se agregaron.
func (s *Service) Seed(ctx context.Context, n int) (added int, err error) {
	defer s.observe("seed", time.Now(), &err)

	if n <= 0 {
		return 0, fmt.Errorf("%w: sample size must be positive", ErrInvalidInput)
	}

	existing, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog: %w", err)
	}
	taken := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		taken[c.EarTag] = struct{}{}
	}

	// rng no es seguro para uso concurrente
	s.mu.Lock()
	batch := GenerateSample(n, s.now(), s.rng, s.newID, taken)
	s.mu.Unlock()

	// una sola escritura: el lote entra completo o no entra
	added, err = s.repo.AddMany(ctx, batch)
	if err != nil {
		s.log.Error("error adding sample cows", map[string]any{"err": err})
		return 0, fmt.Errorf("failed to add sample cows: %w", err)
	}

	s.log.Info("sample cows added", map[string]any{"count": added})
	return added, s.Refresh(ctx)
}
