package cows

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// Labels fijos del timeline.
const (
	labelCreated     = "Cow added to catalog"
	labelWeightCheck = "Weight check"
	labelTreatment   = "Treatment administered"
	labelDeath       = "Cow deceased"
)

// LastEventDate devuelve la fecha del evento más reciente, o CreatedAt si no hay eventos.
func LastEventDate(c Cow) time.Time {
	if len(c.Events) == 0 {
		return c.CreatedAt
	}
	last := c.Events[0].Date
	for _, e := range c.Events[1:] {
		if e.Date.After(last) {
			last = e.Date
		}
	}
	return last
}

// elapsedDays es floor((now - t) / 24h): bucketing por tiempo transcurrido,
// no por calendario (puede fallar por una hora en cambios de DST).
func elapsedDays(from, to time.Time) int {
	return int(math.Floor(float64(to.Sub(from)) / float64(day)))
}

// RelativeDateLabel: "Today", "Yesterday", "N days ago" (2..6) o fecha absoluta
// "Jan 2" / "Jan 2, 2006" (año solo si difiere del de now).
func RelativeDateLabel(t, now time.Time) string {
	switch d := elapsedDays(t, now); {
	case d == 0:
		return "Today"
	case d == 1:
		return "Yesterday"
	case d >= 2 && d < 7:
		return fmt.Sprintf("%d days ago", d)
	}

	local := t.In(now.Location())
	if local.Year() != now.Year() {
		return local.Format("Jan 2, 2006")
	}
	return local.Format("Jan 2")
}

// FormatDateTime es el formato largo del detalle: "Jan 2, 2006, 03:04 PM".
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("Jan 2, 2006, 03:04 PM")
}

// EventLabel arma el texto visible de un evento según su tipo.
func EventLabel(e CowEvent) string {
	switch e.Type {
	case EventCreated:
		return labelCreated
	case EventWeightCheck:
		if hasWeight(e) {
			return "Weight recorded: " + formatKg(*e.Weight) + " kg"
		}
		return labelWeightCheck
	case EventTreatment:
		if e.Description != "" {
			return e.Description
		}
		return labelTreatment
	case EventPenMove:
		return fmt.Sprintf("Moved from %s to %s", e.FromPen, e.ToPen)
	case EventDeath:
		if e.Description != "" {
			return e.Description
		}
		return labelDeath
	default:
		return e.Description
	}
}

// formatKg imprime el número sin ceros de relleno (450, 452.5).
func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// un peso 0 se trata como ausente
func hasWeight(e CowEvent) bool {
	return e.Weight != nil && *e.Weight != 0
}

// weightChecks devuelve los weight_check con peso, ordenados por fecha ascendente.
func weightChecks(c Cow) []CowEvent {
	out := make([]CowEvent, 0, len(c.Events))
	for _, e := range c.Events {
		if e.Type == EventWeightCheck && hasWeight(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// DailyWeightGain usa solo el primer y el último pesaje (no es una regresión):
// (último - primero) / max(1, días enteros entre ambos), redondeado a 2 decimales.
// ok=false si hay menos de dos pesajes.
func DailyWeightGain(c Cow) (float64, bool) {
	checks := weightChecks(c)
	if len(checks) < 2 {
		return 0, false
	}

	first, last := checks[0], checks[len(checks)-1]
	days := elapsedDays(first.Date, last.Date)
	if days < 1 {
		days = 1
	}

	gain := decimal.NewFromFloat(*last.Weight).
		Sub(decimal.NewFromFloat(*first.Weight)).
		Div(decimal.NewFromInt(int64(days))).
		Round(2)

	f, _ := gain.Float64()
	return f, true
}

// LatestWeight es el peso del weight_check más reciente por fecha de evento.
// Solo lectura: no actualiza Cow.Weight.
func LatestWeight(c Cow) (float64, bool) {
	checks := weightChecks(c)
	if len(checks) == 0 {
		return 0, false
	}
	return *checks[len(checks)-1].Weight, true
}

// DistinctPens devuelve los corrales únicos ordenados lexicográficamente.
func DistinctPens(cows []Cow) []string {
	seen := make(map[string]struct{}, len(cows))
	out := make([]string, 0)
	for _, c := range cows {
		if _, ok := seen[c.Pen]; ok {
			continue
		}
		seen[c.Pen] = struct{}{}
		out = append(out, c.Pen)
	}
	sort.Strings(out)
	return out
}

// Timeline devuelve una copia de los eventos, del más reciente al más antiguo.
func Timeline(c Cow) []CowEvent {
	out := make([]CowEvent, len(c.Events))
	copy(out, c.Events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// CountByStatus cuenta vacas por status (para métricas y resumen de la lista).
func CountByStatus(cows []Cow) map[string]int {
	out := make(map[string]int, len(Statuses))
	for _, s := range Statuses {
		out[string(s)] = 0
	}
	for _, c := range cows {
		out[string(c.Status)]++
	}
	return out
}
