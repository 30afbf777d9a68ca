package postgres

import (
	"context"

	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
	"github.com/Rutuja-Parab/policyzen/internal/endorsement"
	"gorm.io/gorm"
)

type EndorsementRepository struct {
	db    *gorm.DB
	guard *uniqueness.Guard
}

func NewEndorsementRepository(db *gorm.DB, guard *uniqueness.Guard) endorsement.Repository {
	return &EndorsementRepository{
		db:    db,
		guard: guard,
	}
}

func (r *EndorsementRepository) Create(ctx context.Context, e *endorsement.Endorsement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.guard.Check(ctx, tx, uniqueness.EndorsementNumber, e.EndorsementNumber, "", ""); err != nil {
			return err
		}
		return uniqueness.Translate(tx.Create(e).Error, uniqueness.EndorsementNumber)
	})
}

func (r *EndorsementRepository) List(ctx context.Context, policyID string) ([]*endorsement.Endorsement, error) {
	endorsements := make([]*endorsement.Endorsement, 0)
	query := r.db.WithContext(ctx).Order("effective_date ASC, created_at ASC")
	if policyID != "" {
		query = query.Where("policy_id = ?", policyID)
	}
	err := query.Find(&endorsements).Error
	return endorsements, err
}
