package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/application/service"
	"github.com/niteshkumar/dealdesk-api/internal/presentation/http/dto/response"
)

// ScopeHandler handles scope of work HTTP requests
type ScopeHandler struct {
	scopeService *service.ScopeService
}

// NewScopeHandler creates a new scope handler
func NewScopeHandler(scopeService *service.ScopeService) *ScopeHandler {
	return &ScopeHandler{scopeService: scopeService}
}

// Create handles creating the scope of work for a pricing plan
func (h *ScopeHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		PricingPlanID uuid.UUID   `json:"pricing_plan_id" binding:"required"`
		ScopeItemIDs  []uuid.UUID `json:"scope_item_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	scope, err := h.scopeService.CreateScope(c.Request.Context(), &service.CreateScopeInput{
		UserID:        *userID,
		PricingPlanID: req.PricingPlanID,
		ScopeItemIDs:  req.ScopeItemIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Scope of work created successfully", scope)
}

// GetByPlan handles getting the scope of work attached to a pricing plan
func (h *ScopeHandler) GetByPlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid pricing plan ID")
		return
	}

	scope, err := h.scopeService.GetScopeByPlan(c.Request.Context(), planID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Scope of work retrieved successfully", scope)
}

// Catalog handles listing the scope item master catalog
func (h *ScopeHandler) Catalog(c *gin.Context) {
	items, err := h.scopeService.ListCatalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Scope items retrieved successfully", items)
}
