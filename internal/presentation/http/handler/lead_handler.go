package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/application/service"
	domainRepo "github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"github.com/niteshkumar/dealdesk-api/internal/presentation/http/dto/response"
	"github.com/niteshkumar/dealdesk-api/pkg/pagination"
)

// LeadHandler handles lead-related HTTP requests
type LeadHandler struct {
	leadService     *service.LeadService
	pipelineService *service.PipelineService
	kickoffService  *service.KickoffService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(
	leadService *service.LeadService,
	pipelineService *service.PipelineService,
	kickoffService *service.KickoffService,
) *LeadHandler {
	return &LeadHandler{
		leadService:     leadService,
		pipelineService: pipelineService,
		kickoffService:  kickoffService,
	}
}

// Create handles creating a lead
func (h *LeadHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		CompanyName string `json:"company_name"`
		Email       string `json:"email" binding:"required,email"`
		Phone       string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), &service.CreateLeadInput{
		UserID:      *userID,
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lead created successfully", lead)
}

// Get handles getting a single lead
func (h *LeadHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead retrieved successfully", lead)
}

// List handles listing leads with pagination and search
func (h *LeadHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.leadService.ListLeads(c.Request.Context(), &domainRepo.LeadFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Leads retrieved successfully", result)
}

// Pipeline returns the stage reachability snapshot for a lead
func (h *LeadHandler) Pipeline(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	snapshot, err := h.pipelineService.Snapshot(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pipeline snapshot retrieved successfully", snapshot)
}

// Projects lists the projects created from this lead's accepted kickoffs
func (h *LeadHandler) Projects(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	projects, err := h.kickoffService.ListProjectsByLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Projects retrieved successfully", projects)
}
