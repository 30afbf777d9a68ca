package postgres

import (
	"context"
	"errors"

	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	entitySvc "github.com/Rutuja-Parab/policyzen/internal/entity"
	"gorm.io/gorm"
)

type EntityRepository struct {
	db *gorm.DB
}

func NewEntityRepository(db *gorm.DB) entitySvc.RepositoryAPI {
	return &EntityRepository{db: db}
}

func (r *EntityRepository) List(ctx context.Context, filter entitySvc.Filter) ([]*entity.Entity, error) {
	entities := make([]*entity.Entity, 0)
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	err := query.Find(&entities).Error
	return entities, err
}

func (r *EntityRepository) GetByID(ctx context.Context, id string) (*entity.Entity, error) {
	var ent entity.Entity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ent, nil
}
