package handlers

import (
	"SmartHospital/middlewares"
	"SmartHospital/services"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	service *services.BillService
}

func NewBillHandler(service *services.BillService) *BillHandler {
	return &BillHandler{service: service}
}

func (h *BillHandler) ListBills(c *gin.Context) {
	bills, err := h.service.List(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *BillHandler) ListBillsByPatient(c *gin.Context) {
	patientID, ok := parseUintParam(c, "patient_id")
	if !ok {
		return
	}

	bills, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *BillHandler) CreateBill(c *gin.Context) {
	var req services.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	bill, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

func (h *BillHandler) UpdateBillStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bill status updated"})
}

func (h *BillHandler) DeleteBill(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bill deleted"})
}

// BillReceipt streams a PDF receipt for a paid bill.
func (h *BillHandler) BillReceipt(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	receipt, err := h.service.Receipt(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", receipt)
}
