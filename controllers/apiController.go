package controllers

import (
	"SmartHospital/handlers"
	"SmartHospital/middlewares"
	"SmartHospital/models"
	"SmartHospital/utils"

	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes wires the resource route groups. Every group sits behind
// token auth; role gates narrow down from there, and the appointment service
// applies ownership rules on top.
func SetupAPIRoutes(
	router *gin.Engine,
	tokens *utils.TokenMaker,
	appointmentHandler *handlers.AppointmentHandler,
	doctorHandler *handlers.DoctorHandler,
	patientHandler *handlers.PatientHandler,
	billHandler *handlers.BillHandler,
	paymentHandler *handlers.PaymentHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	auth := middlewares.TokenAuthMiddleware(tokens)
	adminOnly := middlewares.RequireRoles(models.RoleAdmin)

	appointment := router.Group("/api/Appointment").Use(auth)
	{
		appointment.GET("", appointmentHandler.ListAppointments)
		appointment.GET("/:id", appointmentHandler.GetAppointment)
		appointment.POST("/book", middlewares.RequireRoles(models.RoleAdmin, models.RolePatient), appointmentHandler.BookAppointment)
		appointment.PUT("/:id", middlewares.RequireRoles(models.RoleDoctor), appointmentHandler.UpdateAppointmentStatus)
		appointment.PUT("/update/:id", middlewares.RequireRoles(models.RolePatient), appointmentHandler.UpdateAppointment)
		appointment.DELETE("/:id", appointmentHandler.DeleteAppointment)
	}

	doctor := router.Group("/api/Doctor").Use(auth)
	{
		doctor.GET("", doctorHandler.ListDoctors)
		doctor.GET("/specializations", doctorHandler.ListSpecializations)
		doctor.GET("/:id", doctorHandler.GetDoctor)
		doctor.POST("", adminOnly, doctorHandler.CreateDoctor)
		doctor.PUT("/:id", adminOnly, doctorHandler.UpdateDoctor)
		doctor.POST("/reconcile", adminOnly, doctorHandler.ReconcileDoctors)
	}

	staff := middlewares.RequireRoles(models.RoleAdmin, models.RoleDoctor)

	patient := router.Group("/api/Patient").Use(auth)
	{
		patient.GET("", staff, patientHandler.ListPatients)
		patient.GET("/:id", staff, patientHandler.GetPatient)
		patient.POST("", staff, patientHandler.CreatePatient)
		patient.PUT("/:id", staff, patientHandler.UpdatePatient)
		patient.DELETE("/:id", adminOnly, patientHandler.DeletePatient)
		patient.POST("/reconcile", adminOnly, patientHandler.ReconcilePatients)
	}

	bill := router.Group("/api/Bill").Use(auth)
	{
		bill.GET("", staff, billHandler.ListBills)
		bill.GET("/patient/:patient_id", middlewares.RequireRoles(models.RoleAdmin, models.RolePatient), billHandler.ListBillsByPatient)
		bill.POST("", staff, billHandler.CreateBill)
		bill.PUT("/:id", staff, billHandler.UpdateBillStatus)
		bill.DELETE("/:id", adminOnly, billHandler.DeleteBill)
		bill.GET("/:id/receipt", middlewares.RequireRoles(models.RoleAdmin, models.RolePatient), billHandler.BillReceipt)
	}

	payment := router.Group("/api/Payment").Use(auth)
	{
		payment.GET("", staff, paymentHandler.ListPayments)
		payment.GET("/patient/:patient_id", middlewares.RequireRoles(models.RoleAdmin, models.RolePatient), paymentHandler.ListPaymentsByPatient)
		payment.POST("", middlewares.RequireRoles(models.RoleAdmin, models.RolePatient), paymentHandler.MakePayment)
	}

	notification := router.Group("/api/Notification").Use(auth, middlewares.RequireRoles(models.RoleDoctor))
	{
		notification.GET("/doctor", notificationHandler.DoctorNotification)
		notification.DELETE("/doctor", notificationHandler.ClearDoctorNotification)
	}
}
