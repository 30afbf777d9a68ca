package postgres

import (
	"context"
	"errors"

	"github.com/Rutuja-Parab/policyzen/internal/company"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.Repository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*company.Company, error) {
	var c company.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]*company.Company, error) {
	companies := make([]*company.Company, 0)
	err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) (bool, error) {
	res := r.db.WithContext(ctx).Model(&company.Company{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":              c.Name,
		"parent_company_id": c.ParentCompanyID,
		"updated_at":        c.UpdatedAt,
	})
	return res.RowsAffected > 0, res.Error
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&company.Company{})
	return res.RowsAffected > 0, res.Error
}
