package services

import (
	"SmartHospital/apperrors"
	"SmartHospital/models"
	"SmartHospital/repositories"
	"context"
)

// Principal is an authenticated identity resolved against the database:
// the user's role plus the doctor/patient record linked to it, if any.
type Principal struct {
	UserID    int64
	FullName  string
	Email     string
	Role      models.Role
	DoctorID  *uint
	PatientID *uint
}

// IdentityService resolves a token subject to a Principal. Resolution is a
// pure read and happens on every call so mutations never trust stale
// ownership facts.
type IdentityService struct {
	users    repositories.UserRepository
	doctors  repositories.DoctorRepository
	patients repositories.PatientRepository
}

func NewIdentityService(users repositories.UserRepository, doctors repositories.DoctorRepository, patients repositories.PatientRepository) *IdentityService {
	return &IdentityService{users: users, doctors: doctors, patients: patients}
}

// Resolve maps a user id to a Principal. Fails NotFound when the subject no
// longer maps to a stored user.
func (s *IdentityService) Resolve(ctx context.Context, userID int64) (*Principal, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	p := &Principal{
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}

	switch user.Role {
	case models.RoleDoctor:
		doctor, err := s.doctors.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if doctor != nil {
			p.DoctorID = &doctor.ID
		}
	case models.RolePatient:
		patient, err := s.patients.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if patient != nil {
			p.PatientID = &patient.ID
		}
	}

	return p, nil
}
