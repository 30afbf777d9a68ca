package postgres

import (
	"context"
	"errors"

	"github.com/Rutuja-Parab/policyzen/internal/auth"
	userDatamodel "github.com/Rutuja-Parab/policyzen/internal/core/datamodel/user"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
	"gorm.io/gorm"
)

type Repository struct {
	db    *gorm.DB
	guard *uniqueness.Guard
}

func NewRepository(db *gorm.DB, guard *uniqueness.Guard) auth.RepositoryAPI {
	return &Repository{
		db:    db,
		guard: guard,
	}
}

func (r *Repository) Create(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.guard.Check(ctx, tx, uniqueness.UserEmail, u.Email, "", ""); err != nil {
			return err
		}
		return uniqueness.Translate(tx.Create(u).Error, uniqueness.UserEmail)
	})
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
