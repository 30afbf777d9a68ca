package entity

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Rutuja-Parab/policyzen/internal"
	entityDatamodel "github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
)

// Filter narrows a listing. Zero fields match everything.
type Filter struct {
	CompanyID string
	Type      entityDatamodel.Type
}

type RepositoryAPI interface {
	List(ctx context.Context, filter Filter) ([]*entityDatamodel.Entity, error)
	GetByID(ctx context.Context, id string) (*entityDatamodel.Entity, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List parses the raw query values and returns matching entity rows.
func (s *Service) List(ctx context.Context, companyID, entityType string) ([]*entityDatamodel.Entity, error) {
	filter := Filter{CompanyID: strings.TrimSpace(companyID)}
	if strings.TrimSpace(entityType) != "" {
		t, ok := entityDatamodel.ParseType(entityType)
		if !ok {
			return nil, internal.NewValidationError("Invalid entity type: "+entityType, internal.ErrCodeInvalidType)
		}
		filter.Type = t
	}

	entities, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: failed to list entities", "company_id", filter.CompanyID, "type", filter.Type, "error", err)
		return nil, internal.NewInternalError("Failed to list entities", err)
	}

	s.logger.Info("List: retrieved entities", "count", len(entities))
	return entities, nil
}

func (s *Service) Get(ctx context.Context, id string) (*entityDatamodel.Entity, error) {
	ent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Get: failed to load entity", "entity_row_id", id, "error", err)
		return nil, internal.NewInternalError("Failed to get entity", err)
	}
	if ent == nil {
		return nil, internal.NewNotFoundError("Entity not found", internal.ErrCodeNotFound)
	}
	return ent, nil
}
