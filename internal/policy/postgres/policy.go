package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
	"github.com/Rutuja-Parab/policyzen/internal/policy"
	"gorm.io/gorm"
)

var errNoPolicy = errors.New("policy not found")

type PolicyRepository struct {
	db    *gorm.DB
	guard *uniqueness.Guard
}

func NewPolicyRepository(db *gorm.DB, guard *uniqueness.Guard) policy.Repository {
	return &PolicyRepository{
		db:    db,
		guard: guard,
	}
}

func (r *PolicyRepository) Create(ctx context.Context, p *policy.Policy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.guard.Check(ctx, tx, uniqueness.PolicyNumber, p.PolicyNumber, p.EntityID, ""); err != nil {
			return err
		}
		return uniqueness.Translate(tx.Create(p).Error, uniqueness.PolicyNumber)
	})
}

func (r *PolicyRepository) GetByID(ctx context.Context, id string) (*policy.Policy, error) {
	var p policy.Policy
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PolicyRepository) List(ctx context.Context, filter policy.Filter) ([]*policy.Policy, error) {
	policies := make([]*policy.Policy, 0)
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.CompanyID != "" {
		query = query.Where("entity_id IN (?)", r.db.Table("entities").Select("id").Where("company_id = ?", filter.CompanyID))
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.InsuranceType != "" {
		query = query.Where("insurance_type = ?", filter.InsuranceType)
	}
	err := query.Find(&policies).Error
	return policies, err
}

// Update reports false when id does not exist. The number check excludes the policy itself.
func (r *PolicyRepository) Update(ctx context.Context, p *policy.Policy) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&policy.Policy{}).Where("id = ?", p.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing == 0 {
			return errNoPolicy
		}

		if err := r.guard.Check(ctx, tx, uniqueness.PolicyNumber, p.PolicyNumber, p.EntityID, p.ID); err != nil {
			return err
		}

		err := tx.Model(&policy.Policy{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"entity_id":      p.EntityID,
			"policy_number":  p.PolicyNumber,
			"insurance_type": p.InsuranceType,
			"provider":       p.Provider,
			"start_date":     p.StartDate,
			"end_date":       p.EndDate,
			"sum_insured":    p.SumInsured,
			"premium_amount": p.PremiumAmount,
			"status":         p.Status,
			"created_by":     p.CreatedBy,
			"updated_at":     p.UpdatedAt,
		}).Error
		return uniqueness.Translate(err, uniqueness.PolicyNumber)
	})
	if errors.Is(err, errNoPolicy) {
		return false, nil
	}
	return err == nil, err
}

func (r *PolicyRepository) UpdateStatus(ctx context.Context, id string, status policy.Status, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&policy.Policy{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

// DeleteCascade removes documents attached to the policy or to one of its
// endorsements, then the endorsements, then the policy, in one transaction.
func (r *PolicyRepository) DeleteCascade(ctx context.Context, id string) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM documents WHERE policy_id = ? OR endorsement_id IN (SELECT id FROM endorsements WHERE policy_id = ?)`,
			id, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM endorsements WHERE policy_id = ?`, id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&policy.Policy{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNoPolicy
		}
		return nil
	})
	if errors.Is(err, errNoPolicy) {
		return false, nil
	}
	return err == nil, err
}

func (r *PolicyRepository) ListExpiring(ctx context.Context, from, to datamodel.Date) ([]*policy.Policy, error) {
	policies := make([]*policy.Policy, 0)
	err := r.db.WithContext(ctx).
		Where("status = ?", policy.StatusActive).
		Where("end_date >= ? AND end_date <= ?", from, to).
		Order("end_date ASC").
		Find(&policies).Error
	return policies, err
}

func (r *PolicyRepository) MarkExpired(ctx context.Context, before datamodel.Date, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&policy.Policy{}).
		Where("status = ? AND end_date < ?", policy.StatusActive, before).
		Updates(map[string]interface{}{
			"status":     policy.StatusExpired,
			"updated_at": at,
		})
	return res.RowsAffected, res.Error
}
