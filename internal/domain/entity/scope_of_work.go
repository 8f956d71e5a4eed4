package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScopeItem is a master-catalog deliverable that can be selected into a
// scope of work. Read-only reference data, seeded at startup.
type ScopeItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;unique;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:100" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new scope item
func (s *ScopeItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ScopeItem model
func (ScopeItem) TableName() string {
	return "scope_items"
}

// ScopeOfWork is the selected catalog of deliverables attached to a pricing
// plan. At most one per plan, created once and never updated; revisions
// require a new pricing plan.
type ScopeOfWork struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PricingPlanID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"pricing_plan_id"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	PricingPlan PricingPlan      `gorm:"foreignKey:PricingPlanID" json:"-"`
	Selections  []ScopeSelection `gorm:"foreignKey:ScopeOfWorkID" json:"selections,omitempty"`
}

// BeforeCreate generates a UUID before creating a new scope of work
func (s *ScopeOfWork) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ScopeOfWork model
func (ScopeOfWork) TableName() string {
	return "scopes_of_work"
}

// ScopeSelection is one ordered selection of a catalog item in a scope of work
type ScopeSelection struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ScopeOfWorkID uuid.UUID `gorm:"type:uuid;not null;index" json:"scope_of_work_id"`
	ScopeItemID   uuid.UUID `gorm:"type:uuid;not null" json:"scope_item_id"`
	Position      int       `gorm:"not null" json:"position"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	ScopeOfWork ScopeOfWork `gorm:"foreignKey:ScopeOfWorkID" json:"-"`
	ScopeItem   ScopeItem   `gorm:"foreignKey:ScopeItemID" json:"scope_item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new scope selection
func (s *ScopeSelection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ScopeSelection model
func (ScopeSelection) TableName() string {
	return "scope_selections"
}
