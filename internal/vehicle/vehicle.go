package vehicle

import (
	"time"

	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/core/dualwrite"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
)

type Vehicle struct {
	ID                 string                 `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyID          string                 `json:"company_id" gorm:"type:uuid;not null;index"`
	RegistrationNumber string                 `json:"registration_number" gorm:"not null;uniqueIndex"`
	Make               string                 `json:"make" gorm:"not null"`
	Model              string                 `json:"model" gorm:"not null"`
	Year               int                    `json:"year" gorm:"not null"`
	Status             datamodel.RecordStatus `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) GetID() string        { return v.ID }
func (v *Vehicle) SetID(id string)      { v.ID = id }
func (v *Vehicle) GetCompanyID() string { return v.CompanyID }
func (v *Vehicle) NaturalKey() string   { return v.RegistrationNumber }

func (v *Vehicle) Describe() string {
	return "Vehicle: " + v.Make + " " + v.Model
}

func (v *Vehicle) Columns() map[string]interface{} {
	return map[string]interface{}{
		"company_id":          v.CompanyID,
		"registration_number": v.RegistrationNumber,
		"make":                v.Make,
		"model":               v.Model,
		"year":                v.Year,
		"status":              v.Status,
	}
}

var Kind = dualwrite.Kind[*Vehicle]{
	Type:  entity.TypeVehicle,
	Label: "Vehicle",
	Rule:  uniqueness.RegistrationNumber,
	New:   func() *Vehicle { return &Vehicle{} },
}
