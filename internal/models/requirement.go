package models

import "time"

// RequirementStatus tracks the review state of an admission requirement.
type RequirementStatus string

const (
	RequirementPending   RequirementStatus = "PENDING"
	RequirementSubmitted RequirementStatus = "SUBMITTED"
	RequirementVerified  RequirementStatus = "VERIFIED"
	RequirementRejected  RequirementStatus = "REJECTED"
)

// Requirement is a document an applicant must submit for their admission application.
type Requirement struct {
	ID            string            `db:"id" json:"id"`
	ApplicationID string            `db:"application_id" json:"applicationId"`
	Name          string            `db:"name" json:"name"`
	Description   *string           `db:"description" json:"description,omitempty"`
	IsRequired    bool              `db:"is_required" json:"isRequired"`
	Status        RequirementStatus `db:"status" json:"status"`
	FilePath      *string           `db:"file_path" json:"-"`
	FileName      *string           `db:"file_name" json:"fileName,omitempty"`
	MimeType      *string           `db:"mime_type" json:"mimeType,omitempty"`
	SubmittedAt   *time.Time        `db:"submitted_at" json:"submittedAt,omitempty"`
}

// RequirementDocument is the metadata recorded when a file is uploaded.
type RequirementDocument struct {
	FilePath string
	FileName string
	MimeType string
}
