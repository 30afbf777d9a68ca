package document

import (
	"context"
	"log/slog"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Document) error
	List(ctx context.Context, filter Filter) ([]*Document, error)
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
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, dto DocumentDTO) (*Document, error) {
	d := &Document{
		ID:            uuid.NewString(),
		PolicyID:      dto.PolicyID,
		EndorsementID: dto.EndorsementID,
		UploadedBy:    dto.UploadedBy,
		FileName:      dto.FileName,
		FilePath:      dto.FilePath,
		FileType:      dto.FileType,
		DocumentType:  dto.DocumentType,
		UploadedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("Create: failed to store document", "error", err)
		return nil, internal.NewInternalError("Failed to create document", err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Document, error) {
	docs, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: failed to list documents", "error", err)
		return nil, internal.NewInternalError("Failed to list documents", err)
	}
	return docs, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to delete document", "document_id", id, "error", err)
		return internal.NewInternalError("Failed to delete document", err)
	}
	if !found {
		return internal.ErrDocumentNotFound
	}
	return nil
}
