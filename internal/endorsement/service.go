package endorsement

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/common/validation"
	"github.com/Rutuja-Parab/policyzen/internal/core/events"
	"github.com/google/uuid"
)

type Repository interface {
	// Create rejects a duplicate endorsement number with a Conflict error.
	Create(ctx context.Context, e *Endorsement) error
	List(ctx context.Context, policyID string) ([]*Endorsement, error)
}

type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) Create(ctx context.Context, dto EndorsementDTO) (*Endorsement, error) {
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}
	v := validation.NewValidator()
	v.Field("effective_date", dto.EffectiveDate).Required()
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	now := time.Now().UTC()
	e := &Endorsement{
		ID:                uuid.NewString(),
		PolicyID:          dto.PolicyID,
		EndorsementNumber: strings.TrimSpace(dto.EndorsementNumber),
		Description:       dto.Description,
		EffectiveDate:     dto.EffectiveDate,
		CreatedBy:         dto.CreatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		if internal.IsConflict(err) {
			s.logger.Warn("Create: endorsement number taken", "endorsement_number", e.EndorsementNumber)
			return nil, err
		}
		s.logger.Error("Create: failed to store endorsement", "policy_id", e.PolicyID, "error", err)
		return nil, internal.NewInternalError("Failed to create endorsement", err)
	}

	s.logger.Info("Create: endorsement created", "endorsement_id", e.ID, "policy_id", e.PolicyID)
	if s.publisher != nil {
		ev := events.NewRecordEvent(events.EventTypeRecordCreated, "endorsement", e.ID, internal.ActorFromContext(ctx), map[string]interface{}{
			"policy_id":          e.PolicyID,
			"endorsement_number": e.EndorsementNumber,
		})
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.logger.Error("Create: failed to publish event", "endorsement_id", e.ID, "error", err)
		}
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, policyID string) ([]*Endorsement, error) {
	endorsements, err := s.repo.List(ctx, strings.TrimSpace(policyID))
	if err != nil {
		s.logger.Error("List: failed to list endorsements", "policy_id", policyID, "error", err)
		return nil, internal.NewInternalError("Failed to list endorsements", err)
	}
	return endorsements, nil
}
