// Package httpapi exposes the draft store over REST. Every route runs
// behind the identity middleware; drafts are addressed per user and
// per wizard variant.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/collector"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/domain"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/draft"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/export"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/storage"
)

type Handler struct {
	store *draft.Store
	repo  storage.Repository
	log   *zap.Logger
}

func NewHandler(store *draft.Store, repo storage.Repository, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, repo: repo, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.health)

	r.Route("/demoras/{variant}", func(r chi.Router) {
		r.Get("/", h.loadDraft)
		r.Delete("/", h.discardDraft)
		r.Post("/submit", h.submitDraft)
		r.Get("/sections/{name}", h.readSection)
		r.Put("/sections/{name}", h.writeSection)
		r.Post("/vueltas", h.addVuelta)
		r.Delete("/vueltas/{numero}", h.removeVuelta)
		r.Put("/vueltas/{numero}/{field}", h.editVuelta)
	})

	r.Route("/acontecimientos", func(r chi.Router) {
		r.Get("/", h.loadEventLog)
		r.Put("/", h.saveEventLog)
		r.Delete("/", h.discardEventLog)
		r.Post("/submit", h.submitEventLog)
		r.Post("/eventos", h.addEvent)
		r.Delete("/eventos/{idx}", h.removeEvent)
		r.Post("/razones", h.addRazon)
		r.Get("/export", h.exportEventLog)
	})

	r.Get("/operaciones", h.listOperations)
	r.Get("/operaciones/export", h.exportOperations)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func variantFrom(r *http.Request) (domain.Variant, bool) {
	return domain.VariantByName(chi.URLParam(r, "variant"))
}

func editMode(r *http.Request) bool {
	return r.URL.Query().Get("edit") == "true"
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

func (h *Handler) loadDraft(w http.ResponseWriter, r *http.Request) {
	variant, ok := variantFrom(r)
	if !ok {
		respondError(w, "unknown variant", http.StatusNotFound)
		return
	}

	d, err := h.store.Load(GetIdentity(r), variant, editMode(r))
	if err != nil {
		h.internalError(w, err)
		return
	}
	respondJSON(w, d, http.StatusOK)
}

func (h *Handler) readSection(w http.ResponseWriter, r *http.Request) {
	variant, ok := variantFrom(r)
	if !ok {
		respondError(w, "unknown variant", http.StatusNotFound)
		return
	}

	section, err := h.store.ReadSection(GetIdentity(r), variant, editMode(r), chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, err.Error(), http.StatusNotFound)
		return
	}
	respondJSON(w, section, http.StatusOK)
}

func (h *Handler) writeSection(w http.ResponseWriter, r *http.Request) {
	variant, ok := variantFrom(r)
	if !ok {
		respondError(w, "unknown variant", http.StatusNotFound)
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	d, err := h.store.WriteSection(GetIdentity(r), variant, editMode(r), chi.URLParam(r, "name"), raw)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, d, http.StatusOK)
}

func (h *Handler) addVuelta(w http.ResponseWriter, r *http.Request) {
	variant, ok := variantFrom(r)
	if !ok {
		respondError(w, "unknown variant", http.StatusNotFound)
		return
	}

	d, err := h.store.AddVuelta(GetIdentity(r), variant, editMode(r))
	if err != nil {
		respondError(w, err.Error(), http.StatusConflict)
		return
	}
	respondJSON(w, d, http.StatusCreated)
}

func (h *Handler) removeVuelta(w http.ResponseWriter, r *http.Request) {
	variant, ok := variantFrom(r)
	if !ok {
		respondError(w, "unknown variant", http.StatusNotFound)
		return
	}
	if !confirmed(r) {
		respondError(w, "removing a vuelta is irreversible; repeat with confirm=true", http.StatusConflict)
		return
	}

	numero, err := strconv.Atoi(chi.URLParam(r, "numero"))
	if err != nil {
		respondError(w, "invalid vuelta number", http.StatusBadRequest)
		return
	}

	d, err := h.store.RemoveVuelta(GetIdentity(r), variant, editMode(r), numero)
	if err != nil {
		h.vueltaError(w, err)
		return
	}
	respondJSON(w, d, http.StatusOK)
}

func (h *Handler) editVuelta(w http.ResponseWriter, r *http.Request) {
	variant, ok := variantFrom(r)
	if !ok {
		respondError(w, "unknown variant", http.StatusNotFound)
		return
	}

	numero, err := strconv.Atoi(chi.URLParam(r, "numero"))
	if err != nil {
		respondError(w, "invalid vuelta number", http.StatusBadRequest)
		return
	}

	var sub domain.Subtime
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	field := domain.VueltaField(chi.URLParam(r, "field"))
	d, err := h.store.EditVuelta(GetIdentity(r), variant, editMode(r), numero, field, sub)
	if err != nil {
		h.vueltaError(w, err)
		return
	}
	respondJSON(w, d, http.StatusOK)
}

func (h *Handler) vueltaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPrimeraVuelta):
		respondError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrVueltaRange):
		respondError(w, err.Error(), http.StatusNotFound)
	default:
		respondError(w, err.Error(), http.StatusBadRequest)
	}
}

func (h *Handler) submitDraft(w http.ResponseWriter, r *http.Request) {
	variant, ok := variantFrom(r)
	if !ok {
		respondError(w, "unknown variant", http.StatusNotFound)
		return
	}

	record, err := h.store.Submit(r.Context(), GetIdentity(r), variant, editMode(r))
	if err != nil {
		h.submitError(w, err)
		return
	}
	respondJSON(w, record, http.StatusCreated)
}

func (h *Handler) submitError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		}, http.StatusUnprocessableEntity)
		return
	}

	var serr *collector.SubmitError
	if errors.As(err, &serr) || errors.Is(err, collector.ErrNotConfigured) {
		respondError(w, err.Error(), http.StatusBadGateway)
		return
	}
	if errors.Is(err, domain.ErrEventoIncompleto) {
		respondError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.internalError(w, err)
}

func (h *Handler) discardDraft(w http.ResponseWriter, r *http.Request) {
	variant, ok := variantFrom(r)
	if !ok {
		respondError(w, "unknown variant", http.StatusNotFound)
		return
	}
	if !confirmed(r) {
		respondError(w, "discarding a draft is irreversible; repeat with confirm=true", http.StatusConflict)
		return
	}

	if err := h.store.Discard(GetIdentity(r), variant, editMode(r)); err != nil {
		h.internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadEventLog(w http.ResponseWriter, r *http.Request) {
	l, err := h.store.LoadEventLog(GetIdentity(r))
	if err != nil {
		h.internalError(w, err)
		return
	}
	respondJSON(w, l, http.StatusOK)
}

func (h *Handler) saveEventLog(w http.ResponseWriter, r *http.Request) {
	var l domain.EventLog
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id := GetIdentity(r)
	l.UserID = id.UserID
	l.UserName = id.UserName

	if err := h.store.SaveEventLog(id, &l); err != nil {
		h.internalError(w, err)
		return
	}
	respondJSON(w, &l, http.StatusOK)
}

func (h *Handler) addEvent(w http.ResponseWriter, r *http.Request) {
	var e domain.Acontecimiento
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	l, err := h.store.AddEvent(GetIdentity(r), e)
	if err != nil {
		respondError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	respondJSON(w, l, http.StatusCreated)
}

func (h *Handler) removeEvent(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		respondError(w, "removing an evento is irreversible; repeat with confirm=true", http.StatusConflict)
		return
	}

	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		respondError(w, "invalid evento index", http.StatusBadRequest)
		return
	}

	l, err := h.store.RemoveEvent(GetIdentity(r), idx)
	if err != nil {
		respondError(w, err.Error(), http.StatusNotFound)
		return
	}
	respondJSON(w, l, http.StatusOK)
}

func (h *Handler) addRazon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Razon string `json:"razon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id := GetIdentity(r)
	l, err := h.store.LoadEventLog(id)
	if err != nil {
		h.internalError(w, err)
		return
	}
	l.AddRazon(req.Razon)
	if err := h.store.SaveEventLog(id, l); err != nil {
		h.internalError(w, err)
		return
	}
	respondJSON(w, l, http.StatusOK)
}

func (h *Handler) submitEventLog(w http.ResponseWriter, r *http.Request) {
	record, err := h.store.SubmitEventLog(r.Context(), GetIdentity(r))
	if err != nil {
		h.submitError(w, err)
		return
	}
	respondJSON(w, record, http.StatusCreated)
}

func (h *Handler) discardEventLog(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		respondError(w, "discarding the event log is irreversible; repeat with confirm=true", http.StatusConflict)
		return
	}

	if err := h.store.DiscardEventLog(GetIdentity(r)); err != nil {
		h.internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportEventLog serves the plain-text snapshot, the last-chance
// export offered before a discard.
func (h *Handler) exportEventLog(w http.ResponseWriter, r *http.Request) {
	text, err := h.store.EventLogSnapshot(GetIdentity(r))
	if err != nil {
		h.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="acontecimientos.txt"`)
	w.Write([]byte(text))
}

func (h *Handler) listOperations(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListOperations(GetIdentity(r).UserID)
	if err != nil {
		h.internalError(w, err)
		return
	}
	if records == nil {
		records = []storage.OperationRecord{}
	}
	respondJSON(w, records, http.StatusOK)
}

func (h *Handler) exportOperations(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListOperations(GetIdentity(r).UserID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="operaciones.xlsx"`)

	rows := export.OperationRows(records)
	if err := export.WriteXLSX(w, "Operaciones", export.OperationsHeader, rows); err != nil {
		h.log.Error("xlsx export failed", zap.Error(err))
	}
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.log.Error("request failed", zap.Error(err))
	respondError(w, "internal error", http.StatusInternalServerError)
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
