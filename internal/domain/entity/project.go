package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is materialized exactly once when a kickoff request is accepted.
// It owns no further lifecycle in this service.
type Project struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Reference        string    `gorm:"size:100;unique;not null" json:"reference"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	KickoffRequestID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"kickoff_request_id"`
	AgreementID      uuid.UUID `gorm:"type:uuid;not null;index" json:"agreement_id"`
	LeadID           uuid.UUID `gorm:"type:uuid;not null;index" json:"lead_id"`
	PMID             uuid.UUID `gorm:"type:uuid;not null" json:"pm_id"`
	StartDate        time.Time `gorm:"type:date;not null" json:"start_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relationships
	Lead Lead       `gorm:"foreignKey:LeadID" json:"-"`
	PM   Consultant `gorm:"foreignKey:PMID" json:"pm,omitempty"`
}

// BeforeCreate generates a UUID before creating a new project
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
