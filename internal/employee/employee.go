package employee

import (
	"time"

	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/core/dualwrite"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
)

type Employee struct {
	ID           string                 `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyID    string                 `json:"company_id" gorm:"type:uuid;not null;uniqueIndex:idx_employees_company_code"`
	EmployeeCode string                 `json:"employee_code" gorm:"not null;uniqueIndex:idx_employees_company_code"`
	Name         string                 `json:"name" gorm:"not null"`
	Status       datamodel.RecordStatus `json:"status" gorm:"type:varchar(20);not null"`
	Department   *string                `json:"department"`
	Position     *string                `json:"position"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) GetID() string        { return e.ID }
func (e *Employee) SetID(id string)      { e.ID = id }
func (e *Employee) GetCompanyID() string { return e.CompanyID }
func (e *Employee) NaturalKey() string   { return e.EmployeeCode }

func (e *Employee) Describe() string {
	return "Employee: " + e.Name
}

func (e *Employee) Columns() map[string]interface{} {
	return map[string]interface{}{
		"company_id":    e.CompanyID,
		"employee_code": e.EmployeeCode,
		"name":          e.Name,
		"status":        e.Status,
		"department":    e.Department,
		"position":      e.Position,
	}
}

var Kind = dualwrite.Kind[*Employee]{
	Type:  entity.TypeEmployee,
	Label: "Employee",
	Rule:  uniqueness.EmployeeCode,
	New:   func() *Employee { return &Employee{} },
}
