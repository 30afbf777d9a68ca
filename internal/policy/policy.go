package policy

import (
	"strings"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/shopspring/decimal"
)

type InsuranceType string

const (
	InsuranceHealth   InsuranceType = "HEALTH"
	InsuranceAccident InsuranceType = "ACCIDENT"
	InsuranceProperty InsuranceType = "PROPERTY"
	InsuranceVehicle  InsuranceType = "VEHICLE"
	InsuranceMarine   InsuranceType = "MARINE"
)

func (t InsuranceType) Valid() bool {
	switch t {
	case InsuranceHealth, InsuranceAccident, InsuranceProperty, InsuranceVehicle, InsuranceMarine:
		return true
	}
	return false
}

// Status has no transition graph: any status may follow any other.
type Status string

const (
	StatusActive      Status = "ACTIVE"
	StatusExpired     Status = "EXPIRED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusCancelled   Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusUnderReview, StatusCancelled:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, bool) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	return status, status.Valid()
}

// Policy belongs to an Entity row (not to the underlying employee, vessel...).
type Policy struct {
	ID            string          `json:"id" gorm:"type:uuid;primaryKey"`
	EntityID      string          `json:"entity_id" gorm:"type:uuid;not null;uniqueIndex:idx_policies_entity_number"`
	PolicyNumber  string          `json:"policy_number" gorm:"not null;uniqueIndex:idx_policies_entity_number"`
	InsuranceType InsuranceType   `json:"insurance_type" gorm:"type:varchar(20);not null"`
	Provider      string          `json:"provider" gorm:"not null"`
	StartDate     datamodel.Date  `json:"start_date" gorm:"type:date;not null"`
	EndDate       datamodel.Date  `json:"end_date" gorm:"type:date;not null;index"`
	SumInsured    decimal.Decimal `json:"sum_insured" gorm:"type:numeric(15,2);not null"`
	PremiumAmount decimal.Decimal `json:"premium_amount" gorm:"type:numeric(15,2);not null"`
	Status        Status          `json:"status" gorm:"type:varchar(20);not null;index"`
	CreatedBy     string          `json:"created_by" gorm:"not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Policy) TableName() string {
	return "policies"
}

// Filter narrows List. Empty fields are ignored.
type Filter struct {
	CompanyID     string
	EntityID      string
	Status        Status
	InsuranceType InsuranceType
}
