package policy

import (
	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/common/validation"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/shopspring/decimal"
)

const (
	DefaultExpiringDays = 30
	MaxExpiringDays     = 365
)

type PolicyDTO struct {
	EntityID      string          `json:"entity_id" validate:"required,uuid"`
	PolicyNumber  string          `json:"policy_number" validate:"required,max=100"`
	InsuranceType InsuranceType   `json:"insurance_type" validate:"required,oneof=HEALTH ACCIDENT PROPERTY VEHICLE MARINE"`
	Provider      string          `json:"provider" validate:"required,max=255"`
	StartDate     datamodel.Date  `json:"start_date"`
	EndDate       datamodel.Date  `json:"end_date"`
	SumInsured    decimal.Decimal `json:"sum_insured"`
	PremiumAmount decimal.Decimal `json:"premium_amount"`
	Status        Status          `json:"status" validate:"omitempty,oneof=ACTIVE EXPIRED UNDER_REVIEW CANCELLED"`
	CreatedBy     string          `json:"created_by" validate:"required"`
}

// Validate covers the rules struct tags cannot express.
func (d PolicyDTO) Validate() error {
	if appErr := validation.Struct(d); appErr != nil {
		return appErr
	}

	v := validation.NewValidator()
	v.Field("start_date", d.StartDate).Required()
	v.Field("end_date", d.EndDate).Required().NotBefore("start_date", d.StartDate)
	v.Field("sum_insured", d.SumInsured).NonNegative()
	v.Field("premium_amount", d.PremiumAmount).NonNegative()
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func (d PolicyDTO) status() Status {
	if d.Status == "" {
		return StatusActive
	}
	return d.Status
}

type StatusDTO struct {
	Status string `json:"status"`
}

func invalidStatus(raw string) *internal.AppError {
	return internal.NewValidationFieldError("status", "Invalid policy status: "+raw, internal.ErrCodeInvalidStatus)
}
