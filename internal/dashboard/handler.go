package dashboard

import (
	"context"
	"net/http"

	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/go-chi/chi"
)

type StatsProvider interface {
	Compute(ctx context.Context) (*Stats, error)
}

type Handler struct {
	*transport.BaseHandler
	Stats StatsProvider
}

func NewHandler(baseHandler *transport.BaseHandler, stats StatsProvider) *Handler {
	return &Handler{BaseHandler: baseHandler, Stats: stats}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/stats", h.GetStats)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Compute(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}
