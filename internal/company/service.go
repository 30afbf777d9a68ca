package company

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	List(ctx context.Context) ([]*Company, error)
	// Update and Delete report false when no row matched.
	Update(ctx context.Context, c *Company) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, dto CompanyDTO) (*Company, error) {
	now := time.Now().UTC()
	c := &Company{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(dto.Name),
		ParentCompanyID: dto.ParentCompanyID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("Create: failed to store company", "error", err)
		return nil, internal.NewInternalError("Failed to create company", err)
	}
	s.logger.Info("Create: company created", "company_id", c.ID)
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Company, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to load company", "company_id", id, "error", err)
		return nil, internal.NewInternalError("Failed to get company", err)
	}
	if c == nil {
		return nil, internal.ErrCompanyNotFound
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]*Company, error) {
	companies, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to list companies", "error", err)
		return nil, internal.NewInternalError("Failed to list companies", err)
	}
	return companies, nil
}

func (s *Service) Update(ctx context.Context, id string, dto CompanyDTO) (*Company, error) {
	c := &Company{
		ID:              id,
		Name:            strings.TrimSpace(dto.Name),
		ParentCompanyID: dto.ParentCompanyID,
		UpdatedAt:       time.Now().UTC(),
	}
	found, err := s.repo.Update(ctx, c)
	if err != nil {
		s.logger.Error("Update: failed to update company", "company_id", id, "error", err)
		return nil, internal.NewInternalError("Failed to update company", err)
	}
	if !found {
		return nil, internal.ErrCompanyNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to delete company", "company_id", id, "error", err)
		return internal.NewInternalError("Failed to delete company", err)
	}
	if !found {
		return internal.ErrCompanyNotFound
	}
	s.logger.Info("Delete: company deleted", "company_id", id)
	return nil
}
