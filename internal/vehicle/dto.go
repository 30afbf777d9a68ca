package vehicle

import "github.com/Rutuja-Parab/policyzen/internal/core/datamodel"

type Payload struct {
	CompanyID          string                 `json:"company_id" validate:"required,uuid"`
	RegistrationNumber string                 `json:"registration_number" validate:"required,max=50"`
	Make               string                 `json:"make" validate:"required,max=100"`
	Model              string                 `json:"model" validate:"required,max=100"`
	Year               int                    `json:"year" validate:"required,min=1886,max=2100"`
	Status             datamodel.RecordStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (p Payload) ToRecord() *Vehicle {
	return &Vehicle{
		CompanyID:          p.CompanyID,
		RegistrationNumber: p.RegistrationNumber,
		Make:               p.Make,
		Model:              p.Model,
		Year:               p.Year,
		Status:             p.Status.OrDefault(),
	}
}
