package vessel

import "github.com/Rutuja-Parab/policyzen/internal/core/datamodel"

type Payload struct {
	CompanyID  string                 `json:"company_id" validate:"required,uuid"`
	VesselName string                 `json:"vessel_name" validate:"required,max=255"`
	IMONumber  string                 `json:"imo_number" validate:"required,max=20"`
	Status     datamodel.RecordStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	VesselType *string                `json:"vessel_type" validate:"omitempty,max=100"`
	Flag       *string                `json:"flag" validate:"omitempty,max=100"`
}

func (p Payload) ToRecord() *Vessel {
	return &Vessel{
		CompanyID:  p.CompanyID,
		VesselName: p.VesselName,
		IMONumber:  p.IMONumber,
		Status:     p.Status.OrDefault(),
		VesselType: p.VesselType,
		Flag:       p.Flag,
	}
}
