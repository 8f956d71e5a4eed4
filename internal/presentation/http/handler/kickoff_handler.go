package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/application/service"
	"github.com/niteshkumar/dealdesk-api/internal/presentation/http/dto/response"
)

// KickoffHandler handles kickoff request HTTP requests
type KickoffHandler struct {
	kickoffService *service.KickoffService
}

// NewKickoffHandler creates a new kickoff handler
func NewKickoffHandler(kickoffService *service.KickoffService) *KickoffHandler {
	return &KickoffHandler{kickoffService: kickoffService}
}

// Create handles submitting a kickoff request for a signed agreement
func (h *KickoffHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		AgreementID       uuid.UUID `json:"agreement_id" binding:"required"`
		AssignedPMID      uuid.UUID `json:"assigned_pm_id" binding:"required"`
		ExpectedStartDate time.Time `json:"expected_start_date" binding:"required" time_format:"2006-01-02"`
		Notes             *string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.kickoffService.CreateKickoff(c.Request.Context(), &service.CreateKickoffInput{
		UserID:            *userID,
		AgreementID:       req.AgreementID,
		AssignedPMID:      req.AssignedPMID,
		ExpectedStartDate: req.ExpectedStartDate,
		Notes:             req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Kickoff request created successfully", request)
}

// Get handles getting a single kickoff request
func (h *KickoffHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid kickoff request ID")
		return
	}

	request, err := h.kickoffService.GetKickoff(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kickoff request retrieved successfully", request)
}

// ListByAgreement handles listing an agreement's kickoff requests
func (h *KickoffHandler) ListByAgreement(c *gin.Context) {
	agreementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agreement ID")
		return
	}

	requests, err := h.kickoffService.ListByAgreement(c.Request.Context(), agreementID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kickoff requests retrieved successfully", requests)
}

// Accept handles accepting a pending request and creating its project
func (h *KickoffHandler) Accept(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid kickoff request ID")
		return
	}

	request, err := h.kickoffService.Accept(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kickoff request accepted successfully", request)
}

// Reject handles rejecting a pending request
func (h *KickoffHandler) Reject(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid kickoff request ID")
		return
	}

	request, err := h.kickoffService.Reject(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kickoff request rejected successfully", request)
}

// Return handles bouncing a pending request back to sales for revision
func (h *KickoffHandler) Return(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid kickoff request ID")
		return
	}

	var req struct {
		Reason string  `json:"reason" binding:"required"`
		Notes  *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.kickoffService.Return(c.Request.Context(), &service.ReturnKickoffInput{
		RequestID: id,
		ActorID:   *userID,
		Reason:    req.Reason,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kickoff request returned successfully", request)
}

// Resubmit handles resubmitting a returned request, reusing the same request
func (h *KickoffHandler) Resubmit(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid kickoff request ID")
		return
	}

	request, err := h.kickoffService.Resubmit(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kickoff request resubmitted successfully", request)
}

// UpdateExpectedDate handles moving the expected start date of a live request
func (h *KickoffHandler) UpdateExpectedDate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid kickoff request ID")
		return
	}

	var req struct {
		ExpectedStartDate time.Time `json:"expected_start_date" binding:"required" time_format:"2006-01-02"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.kickoffService.UpdateExpectedDate(c.Request.Context(), id, req.ExpectedStartDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expected start date updated successfully", request)
}

// Consultants handles listing the employee directory for PM assignment
func (h *KickoffHandler) Consultants(c *gin.Context) {
	consultants, err := h.kickoffService.ListConsultants(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Consultants retrieved successfully", consultants)
}

// GetProject handles getting a project created from an accepted kickoff
func (h *KickoffHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.kickoffService.GetProject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Project retrieved successfully", project)
}
