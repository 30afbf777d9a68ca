package employee

import "github.com/Rutuja-Parab/policyzen/internal/core/datamodel"

type Payload struct {
	CompanyID    string                 `json:"company_id" validate:"required,uuid"`
	EmployeeCode string                 `json:"employee_code" validate:"required,max=50"`
	Name         string                 `json:"name" validate:"required,max=255"`
	Status       datamodel.RecordStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	Department   *string                `json:"department" validate:"omitempty,max=100"`
	Position     *string                `json:"position" validate:"omitempty,max=100"`
}

func (p Payload) ToRecord() *Employee {
	return &Employee{
		CompanyID:    p.CompanyID,
		EmployeeCode: p.EmployeeCode,
		Name:         p.Name,
		Status:       p.Status.OrDefault(),
		Department:   p.Department,
		Position:     p.Position,
	}
}
