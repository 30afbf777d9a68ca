package policy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto PolicyDTO) (*Policy, error)
	GetByID(ctx context.Context, id string) (*Policy, error)
	List(ctx context.Context, filter Filter) ([]*Policy, error)
	Update(ctx context.Context, id string, dto PolicyDTO) (*Policy, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	ListExpiring(ctx context.Context, days int) ([]*Policy, error)
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

// Routes registers /expiring ahead of /{id} so it is not taken for an id.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.CreatePolicy)
	r.Get("/", h.GetPolicies)
	r.Get("/expiring", h.GetExpiringPolicies)
	r.Get("/{id}", h.GetPolicy)
	r.Put("/{id}", h.UpdatePolicy)
	r.Put("/{id}/status", h.UpdatePolicyStatus)
	r.Delete("/{id}", h.DeletePolicy)
}

func (h *Handler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var dto PolicyDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	p, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetPolicies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := Filter{
		CompanyID:     strings.TrimSpace(query.Get("company_id")),
		EntityID:      strings.TrimSpace(query.Get("entity_id")),
		Status:        Status(strings.ToUpper(strings.TrimSpace(query.Get("status")))),
		InsuranceType: InsuranceType(strings.ToUpper(strings.TrimSpace(query.Get("insurance_type")))),
	}

	policies, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, policies)
}

func (h *Handler) GetExpiringPolicies(w http.ResponseWriter, r *http.Request) {
	days := DefaultExpiringDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.HandleServiceError(w, internal.NewValidationFieldError("days", "days must be an integer", internal.ErrCodeInvalidRange))
			return
		}
		days = parsed
	}

	policies, err := h.Service.ListExpiring(r.Context(), days)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, policies)
}

func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var dto PolicyDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	p, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// UpdatePolicyStatus takes the status from ?status= or from a JSON body.
func (h *Handler) UpdatePolicyStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		var dto StatusDTO
		if err := h.DecodeJSON(r, &dto); err != nil && !errors.Is(err, io.EOF) {
			h.HandleServiceError(w, err)
			return
		}
		status = dto.Status
	}
	if strings.TrimSpace(status) == "" {
		h.HandleServiceError(w, internal.NewValidationFieldError("status", "status is required", internal.ErrCodeInvalidStatus))
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Policy status updated")
}

func (h *Handler) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Policy deleted")
}
