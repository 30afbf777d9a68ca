package document

import (
	"context"
	"net/http"

	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto DocumentDTO) (*Document, error)
	List(ctx context.Context, filter Filter) ([]*Document, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.CreateDocument)
	r.Get("/", h.GetDocuments)
	r.Delete("/{id}", h.DeleteDocument)
}

func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var dto DocumentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	d, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	docs, err := h.Service.List(r.Context(), Filter{
		PolicyID:      query.Get("policy_id"),
		EndorsementID: query.Get("endorsement_id"),
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, docs)
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Document deleted")
}
