package document

import "time"

type Type string

const (
	TypePolicyDocument      Type = "POLICY_DOCUMENT"
	TypeEndorsementDocument Type = "ENDORSEMENT_DOCUMENT"
	TypeFinancialDocument   Type = "FINANCIAL_DOCUMENT"
	TypeOther               Type = "OTHER"
)

// Document is file metadata only; the file itself lives elsewhere.
type Document struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	PolicyID      *string   `json:"policy_id" gorm:"type:uuid;index"`
	EndorsementID *string   `json:"endorsement_id" gorm:"type:uuid;index"`
	UploadedBy    string    `json:"uploaded_by" gorm:"not null"`
	FileName      string    `json:"file_name" gorm:"not null"`
	FilePath      string    `json:"file_path" gorm:"not null"`
	FileType      string    `json:"file_type" gorm:"not null"`
	DocumentType  Type      `json:"document_type" gorm:"type:varchar(30);not null"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

func (Document) TableName() string {
	return "documents"
}

type DocumentDTO struct {
	PolicyID      *string `json:"policy_id" validate:"omitempty,uuid"`
	EndorsementID *string `json:"endorsement_id" validate:"omitempty,uuid"`
	UploadedBy    string  `json:"uploaded_by" validate:"required"`
	FileName      string  `json:"file_name" validate:"required,max=255"`
	FilePath      string  `json:"file_path" validate:"required"`
	FileType      string  `json:"file_type" validate:"required,max=100"`
	DocumentType  Type    `json:"document_type" validate:"required,oneof=POLICY_DOCUMENT ENDORSEMENT_DOCUMENT FINANCIAL_DOCUMENT OTHER"`
}

type Filter struct {
	PolicyID      string
	EndorsementID string
}
