package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/application/service"
	"github.com/niteshkumar/dealdesk-api/internal/presentation/http/dto/response"
)

// PricingHandler handles pricing plan HTTP requests
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

type teamRowRequest struct {
	RoleName       string  `json:"role_name" binding:"required"`
	MeetingType    string  `json:"meeting_type"`
	Frequency      string  `json:"frequency" binding:"required"`
	Mode           string  `json:"mode"`
	RatePerMeeting float64 `json:"rate_per_meeting" binding:"required,gt=0"`
	Count          int     `json:"count" binding:"required,gt=0"`
}

// Create handles creating a pricing plan
func (h *PricingHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		LeadID             uuid.UUID        `json:"lead_id" binding:"required"`
		DurationMonths     int              `json:"duration_months" binding:"required"`
		DiscountPercentage float64          `json:"discount_percentage"`
		Rows               []teamRowRequest `json:"rows" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rows := make([]service.TeamRowInput, 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, service.TeamRowInput{
			RoleName:       r.RoleName,
			MeetingType:    r.MeetingType,
			Frequency:      r.Frequency,
			Mode:           r.Mode,
			RatePerMeeting: r.RatePerMeeting,
			Count:          r.Count,
		})
	}

	plan, err := h.pricingService.CreatePlan(c.Request.Context(), &service.CreatePlanInput{
		UserID:             *userID,
		LeadID:             req.LeadID,
		DurationMonths:     req.DurationMonths,
		DiscountPercentage: req.DiscountPercentage,
		Rows:               rows,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Pricing plan created successfully", plan)
}

// Get handles getting a single pricing plan with its computed totals
func (h *PricingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pricing plan ID")
		return
	}

	plan, err := h.pricingService.GetPlan(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing plan retrieved successfully", plan)
}

// ListByLead handles listing a lead's pricing plans
func (h *PricingHandler) ListByLead(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	plans, err := h.pricingService.ListPlans(c.Request.Context(), leadID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing plans retrieved successfully", plans)
}

// UpdateDuration handles changing a plan's duration, re-deriving every row
func (h *PricingHandler) UpdateDuration(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pricing plan ID")
		return
	}

	var req struct {
		DurationMonths int `json:"duration_months" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	plan, err := h.pricingService.UpdateDuration(c.Request.Context(), id, req.DurationMonths)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing plan duration updated successfully", plan)
}
