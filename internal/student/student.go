package student

import (
	"time"

	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/core/dualwrite"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
)

type Student struct {
	ID          string                 `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyID   string                 `json:"company_id" gorm:"type:uuid;not null;uniqueIndex:idx_students_company_student"`
	StudentID   string                 `json:"student_id" gorm:"column:student_id;not null;uniqueIndex:idx_students_company_student"`
	Name        string                 `json:"name" gorm:"not null"`
	Status      datamodel.RecordStatus `json:"status" gorm:"type:varchar(20);not null"`
	Course      *string                `json:"course"`
	YearOfStudy *int                   `json:"year_of_study"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) GetID() string        { return s.ID }
func (s *Student) SetID(id string)      { s.ID = id }
func (s *Student) GetCompanyID() string { return s.CompanyID }
func (s *Student) NaturalKey() string   { return s.StudentID }

func (s *Student) Describe() string {
	return "Student: " + s.Name
}

func (s *Student) Columns() map[string]interface{} {
	return map[string]interface{}{
		"company_id":    s.CompanyID,
		"student_id":    s.StudentID,
		"name":          s.Name,
		"status":        s.Status,
		"course":        s.Course,
		"year_of_study": s.YearOfStudy,
	}
}

var Kind = dualwrite.Kind[*Student]{
	Type:  entity.TypeStudent,
	Label: "Student",
	Rule:  uniqueness.StudentID,
	New:   func() *Student { return &Student{} },
}
