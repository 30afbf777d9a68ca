package endorsement

import (
	"time"

	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
)

type Endorsement struct {
	ID                string         `json:"id" gorm:"type:uuid;primaryKey"`
	PolicyID          string         `json:"policy_id" gorm:"type:uuid;not null;index"`
	EndorsementNumber string         `json:"endorsement_number" gorm:"not null;uniqueIndex"`
	Description       string         `json:"description" gorm:"not null"`
	EffectiveDate     datamodel.Date `json:"effective_date" gorm:"type:date;not null"`
	CreatedBy         string         `json:"created_by" gorm:"not null"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (Endorsement) TableName() string {
	return "endorsements"
}

type EndorsementDTO struct {
	PolicyID          string         `json:"policy_id" validate:"required,uuid"`
	EndorsementNumber string         `json:"endorsement_number" validate:"required,max=100"`
	Description       string         `json:"description" validate:"required"`
	EffectiveDate     datamodel.Date `json:"effective_date"`
	CreatedBy         string         `json:"created_by" validate:"required"`
}
