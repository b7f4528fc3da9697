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

// DoctorRequest carries doctor create/update payloads.
type DoctorRequest struct {
	FullName        string     `json:"fullName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Specialization  string     `json:"specialization"`
	Qualification   string     `json:"qualification"`
	ExperienceYears int        `json:"experienceYears"`
	Department      string     `json:"department"`
	Bio             string     `json:"bio"`
	IsAvailable     *bool      `json:"isAvailable"`
	AvailableFrom   *time.Time `json:"availableFrom"`
	AvailableTo     *time.Time `json:"availableTo"`
	UserID          *int64     `json:"userId"`
}

func (r DoctorRequest) Validate() error {
	return validation.Errors{
		"fullName": validation.Validate(r.FullName, validation.Required, validation.Length(2, 255)),
		"email":    validation.Validate(r.Email, validation.Required, is.EmailFormat),
	}.Filter()
}

type DoctorService struct {
	doctors repositories.DoctorRepository
	users   repositories.UserRepository
}

func NewDoctorService(doctors repositories.DoctorRepository, users repositories.UserRepository) *DoctorService {
	return &DoctorService{doctors: doctors, users: users}
}

func (s *DoctorService) List(ctx context.Context, specialization string, available *bool) ([]models.Doctor, error) {
	doctors, err := s.doctors.List(ctx, specialization, available)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctors, nil
}

func (s *DoctorService) Get(ctx context.Context, id uint) (*models.Doctor, error) {
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if doctor == nil {
		return nil, apperrors.NotFound("doctor not found")
	}
	return doctor, nil
}

func (s *DoctorService) Specializations(ctx context.Context) ([]string, error) {
	specializations, err := s.doctors.Specializations(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return specializations, nil
}

func (s *DoctorService) Create(ctx context.Context, req DoctorRequest) (*models.Doctor, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	exists, err := s.doctors.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Conflict("doctor with this email already exists")
	}

	specialization := req.Specialization
	if specialization == "" {
		specialization = "General"
	}
	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	doctor := &models.Doctor{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Specialization:  specialization,
		Qualification:   req.Qualification,
		ExperienceYears: req.ExperienceYears,
		Department:      req.Department,
		Bio:             req.Bio,
		IsAvailable:     isAvailable,
		AvailableFrom:   req.AvailableFrom,
		AvailableTo:     req.AvailableTo,
		UserID:          req.UserID,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctor, nil
}

func (s *DoctorService) Update(ctx context.Context, id uint, req DoctorRequest) (*models.Doctor, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if doctor == nil {
		return nil, apperrors.NotFound("doctor not found")
	}

	doctor.FullName = req.FullName
	doctor.Email = req.Email
	doctor.Phone = req.Phone
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	doctor.Qualification = req.Qualification
	doctor.ExperienceYears = req.ExperienceYears
	doctor.Department = req.Department
	doctor.Bio = req.Bio
	if req.IsAvailable != nil {
		doctor.IsAvailable = *req.IsAvailable
	}
	doctor.AvailableFrom = req.AvailableFrom
	doctor.AvailableTo = req.AvailableTo

	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctor, nil
}

// Reconcile backfills a Doctor row for every Doctor-role user lacking one.
// It is an explicit admin operation, idempotent across runs; listing doctors
// never mutates anything.
func (s *DoctorService) Reconcile(ctx context.Context) (int, error) {
	users, err := s.users.ListByRole(ctx, models.RoleDoctor)
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	created := 0
	for i := range users {
		user := &users[i]
		existing, err := s.doctors.GetByUserID(ctx, user.ID)
		if err != nil {
			return created, apperrors.Internal(err)
		}
		if existing != nil {
			continue
		}
		if exists, err := s.doctors.EmailExists(ctx, user.Email); err != nil {
			return created, apperrors.Internal(err)
		} else if exists {
			continue
		}

		doctor := &models.Doctor{
			FullName:       user.FullName,
			Email:          user.Email,
			Specialization: "General",
			IsAvailable:    true,
			UserID:         &user.ID,
		}
		if err := s.doctors.Create(ctx, doctor); err != nil {
			return created, apperrors.Internal(err)
		}
		log.Printf("Reconciled doctor profile for user %s", user.Email)
		created++
	}
	return created, nil
}
