package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/common/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

// NewService falls back to bcrypt.DefaultCost when bcryptCost is out of range.
func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	dto.Email = strings.TrimSpace(dto.Email)
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("Register: failed to hash password", "error", err)
		return nil, internal.NewInternalError("Failed to register user", err)
	}

	now := time.Now().UTC()
	u := &User{
		ID:           uuid.NewString(),
		CompanyID:    dto.CompanyID,
		Name:         dto.Name,
		Email:        dto.Email,
		Role:         dto.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, ToDataModel(u)); err != nil {
		if internal.IsConflict(err) {
			s.logger.Warn("Register: email already registered", "email", u.Email)
			return nil, err
		}
		s.logger.Error("Register: failed to store user", "email", u.Email, "error", err)
		return nil, internal.NewInternalError("Failed to register user", err)
	}

	s.logger.Info("Register: user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// Authenticate returns the same error for an unknown email and a wrong password.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*User, error) {
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}

	stored, err := s.repo.GetByEmail(ctx, strings.TrimSpace(dto.Email))
	if err != nil {
		s.logger.Error("Authenticate: failed to load user", "error", err)
		return nil, internal.NewInternalError("Failed to authenticate", err)
	}
	if stored == nil {
		s.logger.Warn("Authenticate: unknown email")
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("Authenticate: password mismatch", "user_id", stored.ID)
		return nil, internal.ErrInvalidCredentials
	}

	s.logger.Info("Authenticate: login succeeded", "user_id", stored.ID)
	return FromDataModel(stored), nil
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
