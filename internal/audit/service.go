package audit

import (
	"context"
	"log/slog"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/common/validation"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Log, error) {
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}

	v := validation.NewValidator()
	v.Field("limit", filter.Limit).
		MinInt(1, internal.ErrCodeInvalidRange).
		MaxInt(MaxListLimit, internal.ErrCodeInvalidRange)
	v.Field("date_to", filter.To).NotBefore("date_from", filter.From)
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: failed to read audit logs", "error", err)
		return nil, internal.NewInternalError("Failed to list audit logs", err)
	}

	s.logger.Debug("List: audit logs read", "count", len(logs), "action", filter.Action, "entity_type", filter.EntityType)
	return logs, nil
}
