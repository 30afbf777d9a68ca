package postgres

import (
	"context"

	"github.com/Rutuja-Parab/policyzen/internal/audit"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, log *audit.Log) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// List returns matching rows newest first.
func (r *AuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Log, error) {
	query := r.db.WithContext(ctx).Model(&audit.Log{})

	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From.Time)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at < ?", filter.To.AddDays(1).Time)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	logs := make([]*audit.Log, 0)
	err := query.Order("created_at DESC").Find(&logs).Error
	return logs, err
}
