package entity

import (
	"strings"
	"time"
)

// Type tags the kind of insured record an Entity row stands for.
type Type string

const (
	TypeEmployee Type = "EMPLOYEE"
	TypeStudent  Type = "STUDENT"
	TypeVehicle  Type = "VEHICLE"
	TypeBuilding Type = "BUILDING"
	TypeShip     Type = "SHIP"
)

var allTypes = []Type{TypeEmployee, TypeStudent, TypeVehicle, TypeBuilding, TypeShip}

func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

func (t Type) Valid() bool {
	for _, candidate := range allTypes {
		if t == candidate {
			return true
		}
	}
	return false
}

// ParseType accepts any casing. VESSEL is accepted as an alias for SHIP.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if t == "VESSEL" {
		t = TypeShip
	}
	return t, t.Valid()
}

// Entity is the generic shadow row kept in lockstep with an employee, student,
// vessel or vehicle row. EntityID points back at that row.
type Entity struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyID   string    `json:"company_id" gorm:"type:uuid;not null;index"`
	Type        Type      `json:"type" gorm:"type:varchar(20);not null;uniqueIndex:idx_entities_ref,priority:2"`
	EntityID    string    `json:"entity_id" gorm:"type:uuid;not null;uniqueIndex:idx_entities_ref,priority:1"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Entity) TableName() string {
	return "entities"
}
