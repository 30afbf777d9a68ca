package datamodel

// RecordStatus is the lifecycle flag carried by every insured record.
type RecordStatus string

const (
	StatusActive   RecordStatus = "ACTIVE"
	StatusInactive RecordStatus = "INACTIVE"
)

func (s RecordStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// OrDefault returns ACTIVE when s is unset.
func (s RecordStatus) OrDefault() RecordStatus {
	if s == "" {
		return StatusActive
	}
	return s
}
