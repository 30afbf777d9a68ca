package student

import "github.com/Rutuja-Parab/policyzen/internal/core/datamodel"

type Payload struct {
	CompanyID   string                 `json:"company_id" validate:"required,uuid"`
	StudentID   string                 `json:"student_id" validate:"required,max=50"`
	Name        string                 `json:"name" validate:"required,max=255"`
	Status      datamodel.RecordStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	Course      *string                `json:"course" validate:"omitempty,max=100"`
	YearOfStudy *int                   `json:"year_of_study" validate:"omitempty,min=1,max=10"`
}

func (p Payload) ToRecord() *Student {
	return &Student{
		CompanyID:   p.CompanyID,
		StudentID:   p.StudentID,
		Name:        p.Name,
		Status:      p.Status.OrDefault(),
		Course:      p.Course,
		YearOfStudy: p.YearOfStudy,
	}
}
