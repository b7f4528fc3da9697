package handlers

import (
	"SmartHospital/middlewares"
	"SmartHospital/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.service.List(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) ListPaymentsByPatient(c *gin.Context) {
	patientID, ok := parseUintParam(c, "patient_id")
	if !ok {
		return
	}

	payments, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// MakePayment records a payment and marks the bill Paid atomically.
func (h *PaymentHandler) MakePayment(c *gin.Context) {
	var req services.MakePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	payment, err := h.service.Make(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}
