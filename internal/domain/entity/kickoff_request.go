package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
)

// KickoffRequest is the handoff artifact by which sales asks delivery to
// take ownership of a signed deal. The same request id is reused across
// return/resubmit cycles; at most one live (pending or returned) request
// exists per agreement.
type KickoffRequest struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	AgreementID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"agreement_id"`
	Status            enum.KickoffStatus `gorm:"default:0" json:"status"`
	AssignedPMID      uuid.UUID          `gorm:"type:uuid;not null" json:"assigned_pm_id"`
	ExpectedStartDate time.Time          `gorm:"type:date;not null" json:"expected_start_date"`
	Notes             *string            `gorm:"type:text" json:"notes,omitempty"`
	ReturnReason      *string            `gorm:"size:255" json:"return_reason,omitempty"`
	ReturnNotes       *string            `gorm:"type:text" json:"return_notes,omitempty"`
	ReturnedBy        *uuid.UUID         `gorm:"type:uuid" json:"returned_by,omitempty"`
	ReturnedAt        *time.Time         `json:"returned_at,omitempty"`
	ProjectID         *uuid.UUID         `gorm:"type:uuid" json:"project_id,omitempty"`
	CreatedBy         uuid.UUID          `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Agreement  Agreement  `gorm:"foreignKey:AgreementID" json:"-"`
	AssignedPM Consultant `gorm:"foreignKey:AssignedPMID" json:"assigned_pm,omitempty"`
	Project    *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// BeforeCreate generates a UUID before creating a new kickoff request
func (k *KickoffRequest) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the KickoffRequest model
func (KickoffRequest) TableName() string {
	return "kickoff_requests"
}
