package services

import (
	"SmartHospital/apperrors"
	"SmartHospital/models"
	"SmartHospital/repositories"
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BookAppointmentRequest carries a booking. PatientID is honoured only on the
// admin path; patients always book for themselves.
type BookAppointmentRequest struct {
	DoctorID            *uint     `json:"doctorId"`
	PatientID           *uint     `json:"patientId"`
	AppointmentDateTime time.Time `json:"appointmentDateTime"`
	Notes               string    `json:"notes"`
	Phone               string    `json:"phone"`
}

func (r BookAppointmentRequest) Validate() error {
	return validation.Errors{
		"doctorId":            validation.Validate(r.DoctorID, validation.Required.Error("doctor is required")),
		"appointmentDateTime": validation.Validate(r.AppointmentDateTime, validation.Required),
	}.Filter()
}

// UpdateAppointmentRequest carries a detail update; zero-valued fields are
// left untouched.
type UpdateAppointmentRequest struct {
	Reason              string     `json:"reason"`
	AppointmentDateTime *time.Time `json:"appointmentDateTime"`
	DoctorID            *uint      `json:"doctorId"`
}

type AppointmentService struct {
	identity      *IdentityService
	appointments  repositories.AppointmentRepository
	doctors       repositories.DoctorRepository
	patients      repositories.PatientRepository
	notifications *NotificationService
}

func NewAppointmentService(
	identity *IdentityService,
	appointments repositories.AppointmentRepository,
	doctors repositories.DoctorRepository,
	patients repositories.PatientRepository,
	notifications *NotificationService,
) *AppointmentService {
	return &AppointmentService{
		identity:      identity,
		appointments:  appointments,
		doctors:       doctors,
		patients:      patients,
		notifications: notifications,
	}
}

// List returns the appointments visible to the caller: everything for admins,
// own rows for doctors and patients. A doctor or patient role without a
// linked profile row sees nothing.
func (s *AppointmentService) List(ctx context.Context, userID int64) ([]models.Appointment, error) {
	principal, err := s.identity.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !CanAct(principal, OpList, AppointmentFacts{}) {
		return nil, apperrors.Forbidden("insufficient privileges")
	}

	var scope repositories.ListScope
	switch principal.Role {
	case models.RoleAdmin:
		// unscoped
	case models.RoleDoctor:
		if principal.DoctorID == nil {
			return []models.Appointment{}, nil
		}
		scope.DoctorID = principal.DoctorID
	case models.RolePatient:
		if principal.PatientID == nil {
			return []models.Appointment{}, nil
		}
		scope.PatientID = principal.PatientID
	}

	appointments, err := s.appointments.List(ctx, scope)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointments, nil
}

// Get returns a single appointment with doctor and patient details.
func (s *AppointmentService) Get(ctx context.Context, userID int64, id uint) (*models.Appointment, error) {
	principal, err := s.identity.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if appointment == nil {
		return nil, apperrors.NotFound("appointment not found")
	}

	if !CanAct(principal, OpView, AppointmentFacts{DoctorID: appointment.DoctorID, PatientID: appointment.PatientID}) {
		return nil, apperrors.Forbidden("insufficient privileges")
	}
	return appointment, nil
}

// Book creates a Pending appointment. A patient booking for the first time
// gets a Patient row created from their user record; later bookings reuse it.
// Admins must name an existing patient. No slot-conflict check is performed.
func (s *AppointmentService) Book(ctx context.Context, userID int64, req BookAppointmentRequest) (*models.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	principal, err := s.identity.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !CanAct(principal, OpBook, AppointmentFacts{}) {
		return nil, apperrors.Forbidden("only patients and admins may book appointments")
	}

	doctor, err := s.doctors.GetByID(ctx, *req.DoctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if doctor == nil {
		return nil, apperrors.NotFound("doctor not found")
	}

	patient, err := s.resolveBookingPatient(ctx, principal, req)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		DoctorID:        doctor.ID,
		PatientID:       patient.ID,
		AppointmentDate: req.AppointmentDateTime,
		Status:          models.StatusPending,
		Reason:          req.Notes,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.notifications.Notify(doctor.ID, fmt.Sprintf(
		"New appointment booked by %s for %s",
		patient.FullName, req.AppointmentDateTime.Format(time.RFC1123),
	))

	return appointment, nil
}

func (s *AppointmentService) resolveBookingPatient(ctx context.Context, principal *Principal, req BookAppointmentRequest) (*models.Patient, error) {
	if principal.Role == models.RolePatient {
		patient, err := s.patients.GetByUserID(ctx, principal.UserID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if patient != nil {
			return patient, nil
		}

		phone := req.Phone
		if phone == "" {
			phone = "Not provided"
		}
		patient = &models.Patient{
			FullName: principal.FullName,
			Email:    principal.Email,
			Phone:    phone,
			UserID:   principal.UserID,
		}
		if err := s.patients.Create(ctx, patient); err != nil {
			return nil, apperrors.Internal(err)
		}
		return patient, nil
	}

	// Admin path: the target patient must already exist.
	if req.PatientID == nil {
		return nil, apperrors.Validation("patient is required")
	}
	patient, err := s.patients.GetByID(ctx, *req.PatientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if patient == nil {
		return nil, apperrors.NotFound("patient not found")
	}
	return patient, nil
}

// UpdateStatus rewrites the appointment status. Only the owning doctor may do
// so; a denied call leaves the stored status untouched.
func (s *AppointmentService) UpdateStatus(ctx context.Context, userID int64, id uint, status string) error {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if appointment == nil {
		return apperrors.NotFound("appointment not found")
	}

	if err := ValidateStatusTransition(appointment.Status, status); err != nil {
		return err
	}

	principal, err := s.identity.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	facts := AppointmentFacts{DoctorID: appointment.DoctorID, PatientID: appointment.PatientID}
	if !CanAct(principal, OpUpdateStatus, facts) {
		return apperrors.Forbidden("only the appointment's doctor may update its status")
	}

	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// UpdateDetails lets the booking patient amend reason, date or doctor.
func (s *AppointmentService) UpdateDetails(ctx context.Context, userID int64, id uint, req UpdateAppointmentRequest) error {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if appointment == nil {
		return apperrors.NotFound("appointment not found")
	}

	principal, err := s.identity.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	facts := AppointmentFacts{DoctorID: appointment.DoctorID, PatientID: appointment.PatientID}
	if !CanAct(principal, OpUpdateDetails, facts) {
		return apperrors.Forbidden("only the booking patient may update this appointment")
	}

	if req.Reason != "" {
		appointment.Reason = req.Reason
	}
	if req.AppointmentDateTime != nil {
		appointment.AppointmentDate = *req.AppointmentDateTime
	}
	if req.DoctorID != nil {
		doctor, err := s.doctors.GetByID(ctx, *req.DoctorID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if doctor == nil {
			return apperrors.NotFound("doctor not found")
		}
		appointment.DoctorID = doctor.ID
	}
	now := time.Now().UTC()
	appointment.UpdatedAt = &now

	if err := s.appointments.Update(ctx, appointment); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Delete removes an appointment; bills cascade away with it, the doctor and
// patient rows stay.
func (s *AppointmentService) Delete(ctx context.Context, userID int64, id uint) error {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if appointment == nil {
		return apperrors.NotFound("appointment not found")
	}

	principal, err := s.identity.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	facts := AppointmentFacts{DoctorID: appointment.DoctorID, PatientID: appointment.PatientID}
	if !CanAct(principal, OpDelete, facts) {
		return apperrors.Forbidden("insufficient privileges to delete this appointment")
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
