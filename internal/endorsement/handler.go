package endorsement

import (
	"context"
	"net/http"

	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto EndorsementDTO) (*Endorsement, error)
	List(ctx context.Context, policyID string) ([]*Endorsement, error)
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
	r.Post("/", h.CreateEndorsement)
	r.Get("/", h.GetEndorsements)
}

func (h *Handler) CreateEndorsement(w http.ResponseWriter, r *http.Request) {
	var dto EndorsementDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	e, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) GetEndorsements(w http.ResponseWriter, r *http.Request) {
	endorsements, err := h.Service.List(r.Context(), r.URL.Query().Get("policy_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, endorsements)
}
