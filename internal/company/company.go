package company

import "time"

// Company is a node in the company tree. ParentCompanyID is not checked for
// existence or cycles.
type Company struct {
	ID              string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	ParentCompanyID *string   `json:"parent_company_id" gorm:"type:uuid;index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

type CompanyDTO struct {
	Name            string  `json:"name" validate:"required,max=255"`
	ParentCompanyID *string `json:"parent_company_id" validate:"omitempty,uuid"`
}
