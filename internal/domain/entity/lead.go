package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead represents a prospective client engagement owning the pipeline
type Lead struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	CompanyName string         `gorm:"size:255" json:"company_name"`
	Email       string         `gorm:"size:255;not null" json:"email"`
	Phone       string         `gorm:"size:50" json:"phone"`
	CreatedBy   uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PricingPlans []PricingPlan `gorm:"foreignKey:LeadID" json:"pricing_plans,omitempty"`
}

// BeforeCreate generates a UUID before creating a new lead
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}
