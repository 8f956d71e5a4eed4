package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Consultant is a read-only employee directory entry, used to validate
// that an assigned PM exists and holds an eligible role.
type Consultant struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;unique;not null" json:"email"`
	Role      string    `gorm:"size:100;not null" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new consultant
func (c *Consultant) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Consultant model
func (Consultant) TableName() string {
	return "consultants"
}

// EligiblePM reports whether the consultant can be assigned to a kickoff request.
func (c *Consultant) EligiblePM() bool {
	return c.IsActive && (c.Role == "project-manager" || c.Role == "delivery-lead")
}
