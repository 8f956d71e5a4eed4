package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PricingPlan represents the priced team-deployment structure for a lead.
// Duration is plan-scoped; committed meetings on every row are derived from
// (frequency, duration) and recomputed whenever the duration changes. The
// plan becomes immutable once a scope of work references it.
type PricingPlan struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	LeadID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"lead_id"`
	DurationMonths     int            `gorm:"not null" json:"duration_months"`
	DiscountPercentage float64        `gorm:"type:decimal(5,2);default:0" json:"discount_percentage"`
	CreatedBy          uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lead Lead      `gorm:"foreignKey:LeadID" json:"-"`
	Rows []TeamRow `gorm:"foreignKey:PricingPlanID" json:"rows,omitempty"`
}

// BeforeCreate generates a UUID before creating a new pricing plan
func (p *PricingPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PricingPlan model
func (PricingPlan) TableName() string {
	return "pricing_plans"
}

// TeamRow represents one team deployment line in a pricing plan.
// CommittedMeetings is derived, never edited independently.
type TeamRow struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PricingPlanID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"pricing_plan_id"`
	RoleName          string         `gorm:"size:255;not null" json:"role_name"`
	MeetingType       string         `gorm:"size:100" json:"meeting_type"`
	Frequency         string         `gorm:"size:50;not null" json:"frequency"`
	Mode              string         `gorm:"size:50" json:"mode"`
	RatePerMeeting    float64        `gorm:"type:decimal(15,2);not null" json:"rate_per_meeting"`
	Count             int            `gorm:"not null;default:1" json:"count"`
	CommittedMeetings int            `gorm:"not null" json:"committed_meetings"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PricingPlan PricingPlan `gorm:"foreignKey:PricingPlanID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new team row
func (r *TeamRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TeamRow model
func (TeamRow) TableName() string {
	return "team_rows"
}
