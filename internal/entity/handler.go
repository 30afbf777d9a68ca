package entity

import (
	"context"
	"net/http"

	entityDatamodel "github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, companyID, entityType string) ([]*entityDatamodel.Entity, error)
	Get(ctx context.Context, id string) (*entityDatamodel.Entity, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.GetEntities)
	r.Get("/{id}", h.GetEntity)
}

func (h *Handler) GetEntities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	entities, err := h.Service.List(r.Context(), query.Get("company_id"), query.Get("entity_type"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entities)
}

func (h *Handler) GetEntity(w http.ResponseWriter, r *http.Request) {
	ent, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ent)
}
