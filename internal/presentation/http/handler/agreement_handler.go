package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/application/service"
	"github.com/niteshkumar/dealdesk-api/internal/presentation/http/dto/response"
)

// AgreementHandler handles agreement HTTP requests
type AgreementHandler struct {
	agreementService *service.AgreementService
	documentService  *service.DocumentService
}

// NewAgreementHandler creates a new agreement handler
func NewAgreementHandler(
	agreementService *service.AgreementService,
	documentService *service.DocumentService,
) *AgreementHandler {
	return &AgreementHandler{
		agreementService: agreementService,
		documentService:  documentService,
	}
}

// Create handles creating an agreement from a finalized proforma invoice
func (h *AgreementHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		ProformaInvoiceID uuid.UUID `json:"proforma_invoice_id" binding:"required"`
		ClientEmail       string    `json:"client_email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	agreement, err := h.agreementService.CreateAgreement(c.Request.Context(), *userID, req.ProformaInvoiceID, req.ClientEmail)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Agreement created successfully", agreement)
}

// Get handles getting a single agreement with its milestones
func (h *AgreementHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agreement ID")
		return
	}

	view, err := h.agreementService.GetAgreement(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Agreement retrieved successfully", view)
}

// Send handles emailing the agreement to the client
func (h *AgreementHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agreement ID")
		return
	}

	// Body is optional; it may override the recipient stored on the agreement.
	var req struct {
		ClientEmail string `json:"client_email"`
	}
	_ = c.ShouldBindJSON(&req)

	view, err := h.agreementService.SendAgreement(c.Request.Context(), id, req.ClientEmail)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Agreement sent successfully", view)
}

// Sign handles capturing the client's e-signature
func (h *AgreementHandler) Sign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agreement ID")
		return
	}

	var req struct {
		SignerName     string `json:"signer_name" binding:"required"`
		SignerEmail    string `json:"signer_email" binding:"required,email"`
		SignatureImage string `json:"signature_image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.agreementService.SignAgreement(c.Request.Context(), &service.SignAgreementInput{
		AgreementID:    id,
		SignerName:     req.SignerName,
		SignerEmail:    req.SignerEmail,
		SignatureImage: req.SignatureImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Agreement signed successfully", view)
}

// AddMilestone handles appending a milestone to an unsigned agreement
func (h *AgreementHandler) AddMilestone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agreement ID")
		return
	}

	var req struct {
		Description string    `json:"description" binding:"required"`
		Amount      float64   `json:"amount" binding:"required,gt=0"`
		DueDate     time.Time `json:"due_date" binding:"required" time_format:"2006-01-02"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.agreementService.AddMilestone(c.Request.Context(), &service.AddMilestoneInput{
		AgreementID: id,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Milestone added successfully", view)
}

// RemoveMilestone handles removing a milestone from an unsigned agreement
func (h *AgreementHandler) RemoveMilestone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agreement ID")
		return
	}

	milestoneID, err := uuid.Parse(c.Param("milestoneId"))
	if err != nil {
		response.BadRequest(c, "Invalid milestone ID")
		return
	}

	view, err := h.agreementService.RemoveMilestone(c.Request.Context(), id, milestoneID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Milestone removed successfully", view)
}

// Document renders the printable view of a signed agreement
func (h *AgreementHandler) Document(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agreement ID")
		return
	}

	doc, err := h.documentService.AgreementDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(200, "text/html; charset=utf-8", doc)
}
