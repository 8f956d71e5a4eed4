package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/application/service"
	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
	"github.com/niteshkumar/dealdesk-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record handles appending a payment against a signed agreement
func (h *PaymentHandler) Record(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	agreementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agreement ID")
		return
	}

	var req struct {
		Amount       float64          `json:"amount" binding:"required,gt=0"`
		PaymentDate  time.Time        `json:"payment_date" binding:"required" time_format:"2006-01-02"`
		Mode         enum.PaymentMode `json:"mode"`
		ChequeNumber *string          `json:"cheque_number"`
		UTRNumber    *string          `json:"utr_number"`
		Notes        *string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		UserID:       *userID,
		AgreementID:  agreementID,
		Amount:       req.Amount,
		PaymentDate:  req.PaymentDate,
		Mode:         req.Mode,
		ChequeNumber: req.ChequeNumber,
		UTRNumber:    req.UTRNumber,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// List handles listing an agreement's payments
func (h *PaymentHandler) List(c *gin.Context) {
	agreementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agreement ID")
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), agreementID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// Totals handles returning the derived paid and remaining amounts
func (h *PaymentHandler) Totals(c *gin.Context) {
	agreementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agreement ID")
		return
	}

	totals, err := h.paymentService.Totals(c.Request.Context(), agreementID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment totals retrieved successfully", totals)
}
