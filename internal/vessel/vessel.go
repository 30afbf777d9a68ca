package vessel

import (
	"time"

	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/core/dualwrite"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
)

type Vessel struct {
	ID         string                 `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyID  string                 `json:"company_id" gorm:"type:uuid;not null;index"`
	VesselName string                 `json:"vessel_name" gorm:"not null"`
	IMONumber  string                 `json:"imo_number" gorm:"column:imo_number;not null;uniqueIndex"`
	Status     datamodel.RecordStatus `json:"status" gorm:"type:varchar(20);not null"`
	VesselType *string                `json:"vessel_type"`
	Flag       *string                `json:"flag"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

func (Vessel) TableName() string {
	return "vessels"
}

func (v *Vessel) GetID() string        { return v.ID }
func (v *Vessel) SetID(id string)      { v.ID = id }
func (v *Vessel) GetCompanyID() string { return v.CompanyID }
func (v *Vessel) NaturalKey() string   { return v.IMONumber }

func (v *Vessel) Describe() string {
	return "Vessel: " + v.VesselName
}

func (v *Vessel) Columns() map[string]interface{} {
	return map[string]interface{}{
		"company_id":  v.CompanyID,
		"vessel_name": v.VesselName,
		"imo_number":  v.IMONumber,
		"status":      v.Status,
		"vessel_type": v.VesselType,
		"flag":        v.Flag,
	}
}

// Vessels are tagged SHIP in the entities table.
var Kind = dualwrite.Kind[*Vessel]{
	Type:  entity.TypeShip,
	Label: "Vessel",
	Rule:  uniqueness.IMONumber,
	New:   func() *Vessel { return &Vessel{} },
}
