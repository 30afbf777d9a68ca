package uniqueness

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Rutuja-Parab/policyzen/internal"
	"gorm.io/gorm"
)

// Rule describes one natural key. ScopeColumn is empty for globally unique keys.
type Rule struct {
	Table       string
	Column      string
	ScopeColumn string
	Message     string
}

func (r Rule) Scoped() bool {
	return r.ScopeColumn != ""
}

var (
	UserEmail = Rule{
		Table: "users", Column: "email",
		Message: "User already exists",
	}
	EmployeeCode = Rule{
		Table: "employees", Column: "employee_code", ScopeColumn: "company_id",
		Message: "Employee code already exists in this company",
	}
	StudentID = Rule{
		Table: "students", Column: "student_id", ScopeColumn: "company_id",
		Message: "Student ID already exists in this company",
	}
	IMONumber = Rule{
		Table: "vessels", Column: "imo_number",
		Message: "IMO number already exists",
	}
	RegistrationNumber = Rule{
		Table: "vehicles", Column: "registration_number",
		Message: "Registration number already exists",
	}
	PolicyNumber = Rule{
		Table: "policies", Column: "policy_number", ScopeColumn: "entity_id",
		Message: "Policy number already exists for this entity",
	}
	EndorsementNumber = Rule{
		Table: "endorsements", Column: "endorsement_number",
		Message: "Endorsement number already exists",
	}
)

// Guard looks for an existing row holding a natural key before a write.
// Unique indexes in the schema remain the real enforcement point; the guard
// produces the readable error and avoids a failed write in the common case.
type Guard struct {
	logger *slog.Logger
}

func NewGuard(logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{logger: logger}
}

// Check returns a Conflict error when another row already holds value.
// tx is the caller's unit of work; excludeID skips the row being updated.
func (g *Guard) Check(ctx context.Context, tx *gorm.DB, rule Rule, value, scope, excludeID string) error {
	query := tx.WithContext(ctx).Table(rule.Table).Where(rule.Column+" = ?", value)
	if rule.Scoped() {
		query = query.Where(rule.ScopeColumn+" = ?", scope)
	}
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		g.logger.Error("Check: uniqueness lookup failed", "table", rule.Table, "column", rule.Column, "error", err)
		return internal.NewInternalError("Failed to verify uniqueness", err)
	}
	if count > 0 {
		g.logger.Warn("Check: natural key already taken", "table", rule.Table, "column", rule.Column, "value", value)
		return Conflict(rule)
	}
	return nil
}

func Conflict(rule Rule) *internal.AppError {
	return internal.NewConflictError(rule.Message, internal.ErrCodeDuplicateKey)
}

// Translate maps a unique-index violation raised by the store to the rule's
// Conflict error and leaves other errors untouched.
func Translate(err error, rule Rule) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict(rule)
	}
	return err
}
