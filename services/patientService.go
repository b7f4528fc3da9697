package services

import (
	"SmartHospital/apperrors"
	"SmartHospital/models"
	"SmartHospital/repositories"
	"context"
	"log"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// PatientRequest carries patient create/update payloads.
type PatientRequest struct {
	FullName       string     `json:"fullName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	Gender         string     `json:"gender"`
	BloodGroup     string     `json:"bloodGroup"`
	MedicalHistory string     `json:"medicalHistory"`
	UserID         int64      `json:"userId"`
}

func (r PatientRequest) Validate() error {
	return validation.Errors{
		"fullName": validation.Validate(r.FullName, validation.Required, validation.Length(2, 255)),
		"email":    validation.Validate(r.Email, validation.Required, is.EmailFormat),
		"userId":   validation.Validate(r.UserID, validation.Required),
	}.Filter()
}

type PatientService struct {
	patients repositories.PatientRepository
	users    repositories.UserRepository
}

func NewPatientService(patients repositories.PatientRepository, users repositories.UserRepository) *PatientService {
	return &PatientService{patients: patients, users: users}
}

func (s *PatientService) List(ctx context.Context) ([]models.Patient, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return patients, nil
}

func (s *PatientService) Get(ctx context.Context, id uint) (*models.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if patient == nil {
		return nil, apperrors.NotFound("patient not found")
	}
	return patient, nil
}

func (s *PatientService) Create(ctx context.Context, req PatientRequest) (*models.Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	exists, err := s.patients.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Conflict("patient with this email already exists")
	}

	patient := &models.Patient{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		BloodGroup:     req.BloodGroup,
		MedicalHistory: req.MedicalHistory,
		UserID:         req.UserID,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}

func (s *PatientService) Update(ctx context.Context, id uint, req PatientRequest) (*models.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if patient == nil {
		return nil, apperrors.NotFound("patient not found")
	}

	if req.FullName != "" {
		patient.FullName = req.FullName
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != "" {
		patient.Gender = req.Gender
	}
	if req.BloodGroup != "" {
		patient.BloodGroup = req.BloodGroup
	}
	if req.MedicalHistory != "" {
		patient.MedicalHistory = req.MedicalHistory
	}

	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}

func (s *PatientService) Delete(ctx context.Context, id uint) error {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if patient == nil {
		return apperrors.NotFound("patient not found")
	}
	if err := s.patients.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Reconcile backfills a Patient row for every Patient-role user lacking one,
// as an explicit admin operation rather than a side effect of registration
// repair scripts. Idempotent across runs.
func (s *PatientService) Reconcile(ctx context.Context) (int, error) {
	users, err := s.users.ListByRole(ctx, models.RolePatient)
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	created := 0
	for i := range users {
		user := &users[i]
		existing, err := s.patients.GetByUserID(ctx, user.ID)
		if err != nil {
			return created, apperrors.Internal(err)
		}
		if existing != nil {
			continue
		}
		if exists, err := s.patients.EmailExists(ctx, user.Email); err != nil {
			return created, apperrors.Internal(err)
		} else if exists {
			continue
		}

		patient := &models.Patient{
			FullName: user.FullName,
			Email:    user.Email,
			Phone:    "Not provided",
			UserID:   user.ID,
		}
		if err := s.patients.Create(ctx, patient); err != nil {
			return created, apperrors.Internal(err)
		}
		log.Printf("Reconciled patient profile for user %s", user.Email)
		created++
	}
	return created, nil
}
