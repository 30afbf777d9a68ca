package audit

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, filter Filter) ([]*Log, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.GetAuditLogs)
}

// GetAuditLogs supports entity_id, action, entity_type, date_from, date_to and limit.
func (h *Handler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := Filter{
		EntityID:   query.Get("entity_id"),
		Action:     query.Get("action"),
		EntityType: query.Get("entity_type"),
	}

	for field, dst := range map[string]*datamodel.Date{"date_from": &filter.From, "date_to": &filter.To} {
		raw := query.Get(field)
		if raw == "" {
			continue
		}
		d, err := datamodel.ParseDate(raw)
		if err != nil {
			h.HandleServiceError(w, internal.NewValidationFieldError(field, field+" must be a date (YYYY-MM-DD)", internal.ErrCodeInvalidDate))
			return
		}
		*dst = d
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			h.HandleServiceError(w, internal.NewValidationFieldError("limit", "limit must be an integer", internal.ErrCodeInvalidRange))
			return
		}
		filter.Limit = limit
	}

	logs, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, logs)
}
