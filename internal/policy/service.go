package policy

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/Rutuja-Parab/policyzen/internal/core/events"
	"github.com/google/uuid"
)

// Repository persists policies. Create and Update enforce the per-entity
// policy number rule inside their own transaction.
type Repository interface {
	Create(ctx context.Context, p *Policy) error
	GetByID(ctx context.Context, id string) (*Policy, error)
	List(ctx context.Context, filter Filter) ([]*Policy, error)
	Update(ctx context.Context, p *Policy) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status, at time.Time) (bool, error)
	// DeleteCascade removes the policy with its endorsements and documents.
	DeleteCascade(ctx context.Context, id string) (bool, error)
	ListExpiring(ctx context.Context, from, to datamodel.Date) ([]*Policy, error)
	MarkExpired(ctx context.Context, before datamodel.Date, at time.Time) (int64, error)
}

type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
	today     func() datamodel.Date
}

func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		today:     datamodel.Today,
	}
}

func (s *Service) Create(ctx context.Context, dto PolicyDTO) (*Policy, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("Create: policy validation failed", "error", err)
		return nil, err
	}

	now := time.Now().UTC()
	p := &Policy{
		ID:            uuid.NewString(),
		EntityID:      dto.EntityID,
		PolicyNumber:  strings.TrimSpace(dto.PolicyNumber),
		InsuranceType: dto.InsuranceType,
		Provider:      dto.Provider,
		StartDate:     dto.StartDate,
		EndDate:       dto.EndDate,
		SumInsured:    dto.SumInsured,
		PremiumAmount: dto.PremiumAmount,
		Status:        dto.status(),
		CreatedBy:     dto.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, s.storageError("Create", "create policy", p.ID, err)
	}

	s.logger.Info("Create: policy created", "policy_id", p.ID, "entity_id", p.EntityID, "policy_number", p.PolicyNumber)
	s.publish(ctx, events.EventTypeRecordCreated, p.ID, map[string]interface{}{
		"policy_number": p.PolicyNumber,
		"entity_id":     p.EntityID,
	})
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Policy, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storageError("GetByID", "get policy", id, err)
	}
	if p == nil {
		return nil, internal.ErrPolicyNotFound
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Policy, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalidStatus(string(filter.Status))
	}
	if filter.InsuranceType != "" && !filter.InsuranceType.Valid() {
		return nil, internal.NewValidationFieldError("insurance_type", "Invalid insurance type: "+string(filter.InsuranceType), internal.ErrCodeInvalidType)
	}

	policies, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.storageError("List", "list policies", "", err)
	}
	return policies, nil
}

func (s *Service) Update(ctx context.Context, id string, dto PolicyDTO) (*Policy, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Policy{
		ID:            id,
		EntityID:      dto.EntityID,
		PolicyNumber:  strings.TrimSpace(dto.PolicyNumber),
		InsuranceType: dto.InsuranceType,
		Provider:      dto.Provider,
		StartDate:     dto.StartDate,
		EndDate:       dto.EndDate,
		SumInsured:    dto.SumInsured,
		PremiumAmount: dto.PremiumAmount,
		Status:        dto.status(),
		CreatedBy:     dto.CreatedBy,
		UpdatedAt:     time.Now().UTC(),
	}
	found, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, s.storageError("Update", "update policy", id, err)
	}
	if !found {
		return nil, internal.ErrPolicyNotFound
	}

	s.publish(ctx, events.EventTypeRecordUpdated, id, map[string]interface{}{"policy_number": p.PolicyNumber})
	return s.GetByID(ctx, id)
}

// UpdateStatus accepts any target status regardless of the current one.
func (s *Service) UpdateStatus(ctx context.Context, id, rawStatus string) error {
	status, ok := ParseStatus(rawStatus)
	if !ok {
		return invalidStatus(rawStatus)
	}

	found, err := s.repo.UpdateStatus(ctx, id, status, time.Now().UTC())
	if err != nil {
		return s.storageError("UpdateStatus", "update policy status", id, err)
	}
	if !found {
		return internal.ErrPolicyNotFound
	}

	s.logger.Info("UpdateStatus: policy status changed", "policy_id", id, "status", status)
	s.publish(ctx, events.EventTypePolicyStatusChanged, id, map[string]interface{}{"status": string(status)})
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	found, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return s.storageError("Delete", "delete policy", id, err)
	}
	if !found {
		return internal.ErrPolicyNotFound
	}

	s.logger.Info("Delete: policy deleted", "policy_id", id)
	s.publish(ctx, events.EventTypeRecordDeleted, id, nil)
	return nil
}

// ListExpiring returns ACTIVE policies ending within [today, today+days], soonest first.
func (s *Service) ListExpiring(ctx context.Context, days int) ([]*Policy, error) {
	if days < 1 || days > MaxExpiringDays {
		return nil, internal.NewValidationFieldError("days", "days must be between 1 and 365", internal.ErrCodeInvalidRange)
	}

	today := s.today()
	policies, err := s.repo.ListExpiring(ctx, today, today.AddDays(days))
	if err != nil {
		return nil, s.storageError("ListExpiring", "list expiring policies", "", err)
	}
	return policies, nil
}

// ExpireLapsed flips ACTIVE policies whose end date has passed to EXPIRED.
func (s *Service) ExpireLapsed(ctx context.Context) (int64, error) {
	today := s.today()
	n, err := s.repo.MarkExpired(ctx, today, time.Now().UTC())
	if err != nil {
		return 0, s.storageError("ExpireLapsed", "expire lapsed policies", "", err)
	}

	s.logger.Info("ExpireLapsed: sweep finished", "expired", n, "cutoff", today.String())
	if n > 0 {
		s.publish(ctx, events.EventTypePoliciesExpired, "", map[string]interface{}{
			"count":  n,
			"cutoff": today.String(),
		})
	}
	return n, nil
}

func (s *Service) storageError(op, action, id string, err error) error {
	if _, ok := internal.IsAppError(err); ok {
		s.logger.Warn(op+": rejected", "policy_id", id, "error", err)
		return err
	}
	s.logger.Error(op+": storage failure", "policy_id", id, "error", err)
	return internal.NewInternalError("Failed to "+action, err)
}

func (s *Service) publish(ctx context.Context, eventType, id string, details map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	ev := events.NewRecordEvent(eventType, "policy", id, internal.ActorFromContext(ctx), details)
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Error("failed to publish policy event", "event_type", eventType, "policy_id", id, "error", err)
	}
}
