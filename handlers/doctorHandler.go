package handlers

import (
	"SmartHospital/middlewares"
	"SmartHospital/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	service *services.DoctorService
}

func NewDoctorHandler(service *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// ListDoctors supports optional specialization and availability filters.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	specialization := c.Query("specialization")

	var available *bool
	switch c.Query("available") {
	case "true":
		v := true
		available = &v
	case "false":
		v := false
		available = &v
	}

	doctors, err := h.service.List(c.Request.Context(), specialization, available)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	doctor, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) ListSpecializations(c *gin.Context) {
	specializations, err := h.service.Specializations(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, specializations)
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req services.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	doctor, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doctor)
}

func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	doctor, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// ReconcileDoctors backfills doctor profiles for doctor-role users that lack one.
func (h *DoctorHandler) ReconcileDoctors(c *gin.Context) {
	created, err := h.service.Reconcile(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}
