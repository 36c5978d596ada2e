package cows

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/cows", func(cr chi.Router) {
		cr.Get("/", listCowsHandler(svc))
		cr.Post("/", registerCowHandler(svc))

		cr.Get("/{cowID}", getCowHandler(svc))
		cr.Put("/{cowID}", replaceCowHandler(svc))
		cr.Patch("/{cowID}", patchCowHandler(svc))
	})

	r.Get("/pens", listPensHandler(svc))

	r.Get("/filters", getFiltersHandler(svc))
	r.Put("/filters", putFiltersHandler(svc))

	r.Delete("/catalog", resetCatalogHandler(svc))
}

// máximo de bytes aceptados en un body JSON
const maxBodyBytes = 1 << 20

type cowListItem struct {
	Cow
	LastEventLabel string    `json:"lastEventLabel"`
	LastEventDate  time.Time `json:"lastEventDate"`
}

type timelineItem struct {
	CowEvent
	Label string `json:"label"`
	When  string `json:"when"`
}

type cowDetailResponse struct {
	Cow
	LastEventLabel  string         `json:"lastEventLabel"`
	LastEventDate   time.Time      `json:"lastEventDate"`
	LatestWeight    *float64       `json:"latestWeight,omitempty"`
	DailyWeightGain *float64       `json:"dailyWeightGain,omitempty"`
	Timeline        []timelineItem `json:"timeline"`
}

type validationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

type resetResponse struct {
	Cleared bool `json:"cleared"`
}

// @Summary Listar vacas
// @Description Lista las vacas del catálogo (más recientes primero) aplicando los filtros guardados. `q`, `status` y `pen` pisan los filtros solo para este request.
// @Tags cows
// @Produce json
// @Param q query string false "Búsqueda por ear tag (substring, sin mayúsculas)"
// @Param status query string false "Active, In Treatment, Deceased o all"
// @Param pen query string false "Corral exacto; vacío = todos"
// @Success 200 {array} cowListItem
// @Failure 400 {string} string "status inválido"
// @Router /cows [get]
func listCowsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := svc.Filters()

		q := r.URL.Query()
		if q.Has("q") {
			f.SearchQuery = q.Get("q")
		}
		if q.Has("status") {
			f.StatusFilter = q.Get("status")
		}
		if q.Has("pen") {
			f.PenFilter = q.Get("pen")
		}
		if err := f.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		now := svc.now()
		items := svc.FilteredBy(f)
		out := make([]cowListItem, 0, len(items))
		for _, c := range items {
			last := LastEventDate(c)
			out = append(out, cowListItem{
				Cow:            c,
				LastEventLabel: RelativeDateLabel(last, now),
				LastEventDate:  last,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// @Summary Registrar vaca
// @Description Da de alta una vaca. Crea el evento "created" y, si viene peso, un pesaje inicial. El ear tag es único sin distinguir mayúsculas.
// @Tags cows
// @Accept json
// @Produce json
// @Param payload body RegisterInput true "Datos de la vaca; status por defecto Active"
// @Success 201 {object} Cow
// @Failure 400 {string} string "invalid json"
// @Failure 422 {object} validationErrorResponse
// @Router /cows [post]
func registerCowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in RegisterInput
		if err := decodeJSON(r, &in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Register(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, c)
	}
}

// @Summary Detalle de vaca
// @Description Devuelve la vaca con sus derivados: último evento, ganancia diaria promedio (primer y último pesaje) y timeline del más reciente al más antiguo.
// @Tags cows
// @Produce json
// @Param cowID path string true "ID de la vaca"
// @Success 200 {object} cowDetailResponse
// @Failure 404 {string} string "cow not found"
// @Router /cows/{cowID} [get]
func getCowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := svc.Get(chi.URLParam(r, "cowID"))
		if !ok {
			http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toDetail(c, svc.now()))
	}
}

// @Summary Reemplazar vaca
// @Description Reemplaza el registro completo. sex y createdAt no pueden cambiar y los eventos existentes no pueden quitarse.
// @Tags cows
// @Accept json
// @Produce json
// @Param cowID path string true "ID de la vaca"
// @Param payload body Cow true "Registro completo"
// @Success 200 {object} Cow
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "cow not found"
// @Failure 422 {object} validationErrorResponse
// @Router /cows/{cowID} [put]
func replaceCowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c Cow
		if err := decodeJSON(r, &c); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		// el path manda sobre el body
		c.ID = chi.URLParam(r, "cowID")

		if err := svc.Update(r.Context(), c); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, c)
	}
}

// @Summary Modificar vaca
// @Description Aplica un JSON merge patch (RFC 7396). id, sex y createdAt se ignoran.
// @Tags cows
// @Accept json
// @Produce json
// @Param cowID path string true "ID de la vaca"
// @Param payload body object true "Merge patch"
// @Success 200 {object} Cow
// @Failure 400 {string} string "patch inválido"
// @Failure 404 {string} string "cow not found"
// @Failure 422 {object} validationErrorResponse
// @Router /cows/{cowID} [patch]
func patchCowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		c, err := svc.Patch(r.Context(), chi.URLParam(r, "cowID"), patch)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, c)
	}
}

// @Summary Listar corrales
// @Description Corrales distintos presentes en el catálogo, ordenados.
// @Tags cows
// @Produce json
// @Success 200 {array} string
// @Router /pens [get]
func listPensHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, svc.Pens())
	}
}

// @Summary Obtener filtros
// @Tags filters
// @Produce json
// @Success 200 {object} Filters
// @Router /filters [get]
func getFiltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, svc.Filters())
	}
}

// @Summary Guardar filtros
// @Description Persiste los filtros de la lista. statusFilter acepta un status o "all".
// @Tags filters
// @Accept json
// @Produce json
// @Param payload body Filters true "Filtros"
// @Success 200 {object} Filters
// @Failure 400 {string} string "invalid json / status inválido"
// @Router /filters [put]
func putFiltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := DefaultFilters()
		if err := decodeJSON(r, &f); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.SetFilters(r.Context(), f); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, f)
	}
}

// @Summary Borrar catálogo
// @Description Borra todas las vacas y los filtros. Irreversible: requiere confirm=true.
// @Tags catalog
// @Produce json
// @Param confirm query bool true "Debe ser true"
// @Success 200 {object} resetResponse
// @Failure 400 {string} string "confirm=true requerido"
// @Router /catalog [delete]
func resetCatalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("confirm") != "true" {
			http.Error(w, "confirm=true is required", http.StatusBadRequest)
			return
		}

		if err := svc.Reset(r.Context()); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resetResponse{Cleared: true})
	}
}

func toDetail(c Cow, now time.Time) cowDetailResponse {
	last := LastEventDate(c)
	out := cowDetailResponse{
		Cow:            c,
		LastEventLabel: RelativeDateLabel(last, now),
		LastEventDate:  last,
		Timeline:       []timelineItem{},
	}
	if w, ok := LatestWeight(c); ok {
		out.LatestWeight = Float(w)
	}
	if g, ok := DailyWeightGain(c); ok {
		out.DailyWeightGain = Float(g)
	}
	for _, e := range Timeline(c) {
		out.Timeline = append(out.Timeline, timelineItem{
			CowEvent: e,
			Label:    EventLabel(e),
			When:     FormatDateTime(e.Date, now.Location()),
		})
	}
	return out
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if ve, ok := AsValidationError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{Errors: ve.Fields})
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
