package postgres

import (
	"context"

	"github.com/Rutuja-Parab/policyzen/internal/document"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) document.Repository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, d *document.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) List(ctx context.Context, filter document.Filter) ([]*document.Document, error) {
	docs := make([]*document.Document, 0)
	query := r.db.WithContext(ctx).Order("uploaded_at DESC")
	if filter.PolicyID != "" {
		query = query.Where("policy_id = ?", filter.PolicyID)
	}
	if filter.EndorsementID != "" {
		query = query.Where("endorsement_id = ?", filter.EndorsementID)
	}
	err := query.Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&document.Document{})
	return res.RowsAffected > 0, res.Error
}
