package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/application/service"
	"github.com/niteshkumar/dealdesk-api/internal/presentation/http/dto/response"
)

// ProformaHandler handles proforma invoice HTTP requests
type ProformaHandler struct {
	proformaService *service.ProformaService
	documentService *service.DocumentService
}

// NewProformaHandler creates a new proforma handler
func NewProformaHandler(
	proformaService *service.ProformaService,
	documentService *service.DocumentService,
) *ProformaHandler {
	return &ProformaHandler{
		proformaService: proformaService,
		documentService: documentService,
	}
}

// Create handles creating a draft invoice from a pricing plan
func (h *ProformaHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		PricingPlanID uuid.UUID `json:"pricing_plan_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.proformaService.CreateDraft(c.Request.Context(), *userID, req.PricingPlanID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Proforma invoice created successfully", invoice)
}

// Get handles getting a single proforma invoice
func (h *ProformaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma invoice ID")
		return
	}

	invoice, err := h.proformaService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proforma invoice retrieved successfully", invoice)
}

// ListByLead handles listing a lead's proforma invoices
func (h *ProformaHandler) ListByLead(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	invoices, err := h.proformaService.ListByLead(c.Request.Context(), leadID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proforma invoices retrieved successfully", invoices)
}

// Finalize handles the one-way draft to final transition
func (h *ProformaHandler) Finalize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma invoice ID")
		return
	}

	invoice, err := h.proformaService.Finalize(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proforma invoice finalized successfully", invoice)
}

// Document renders the printable view of a finalized invoice
func (h *ProformaHandler) Document(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma invoice ID")
		return
	}

	doc, err := h.documentService.ProformaDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(200, "text/html; charset=utf-8", doc)
}
