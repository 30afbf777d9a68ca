package insured

import (
	"net/http"

	"github.com/Rutuja-Parab/policyzen/internal/core/dualwrite"
	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/go-chi/chi"
)

// Payload is the request body of a create or update, converted into a record.
type Payload[R dualwrite.Record] interface {
	ToRecord() R
}

type Handler[R dualwrite.Record, P Payload[R]] struct {
	*transport.BaseHandler
	Service *Service[R]
}

func NewHandler[R dualwrite.Record, P Payload[R]](baseHandler *transport.BaseHandler, service *Service[R]) *Handler[R, P] {
	return &Handler[R, P]{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// Routes mounts the collection and item endpoints on r.
func (h *Handler[R, P]) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler[R, P]) Create(w http.ResponseWriter, r *http.Request) {
	var payload P
	if err := h.DecodeJSON(r, &payload); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rec, err := h.Service.Create(r.Context(), payload.ToRecord())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("Create: record created", "kind", h.Service.Label(), "id", rec.GetID())
	h.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler[R, P]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.List(r.Context(), r.URL.Query().Get("company_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler[R, P]) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler[R, P]) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload P
	if err := h.DecodeJSON(r, &payload); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rec, err := h.Service.Update(r.Context(), id, payload.ToRecord())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler[R, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, h.Service.Label()+" deleted")
}
