package search

import (
	"context"
	"net/http"

	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Search(ctx context.Context, q, entityType string) (*Results, error)
}

type Handler struct {
	*transport.BaseHandler
	Searcher ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, searcher ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Searcher: searcher}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Search)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	results, err := h.Searcher.Search(r.Context(), query.Get("q"), query.Get("entity_type"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, results)
}
