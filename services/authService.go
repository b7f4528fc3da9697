package services

import (
	"SmartHospital/apperrors"
	"SmartHospital/cache"
	"SmartHospital/models"
	"SmartHospital/repositories"
	"SmartHospital/utils"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterRequest carries the fields accepted at registration.
type RegisterRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
}

// UserSummary is the client-facing view of a user with resolved profile ids.
type UserSummary struct {
	ID        int64       `json:"id"`
	FullName  string      `json:"fullName"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	DoctorID  *uint       `json:"doctorId"`
	PatientID *uint       `json:"patientId"`
}

// LoginResult is the token pair plus the user summary returned on login.
type LoginResult struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	User         UserSummary `json:"user"`
}

// TokenPair is returned by a refresh-token exchange.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService struct {
	db       *gorm.DB
	users    repositories.UserRepository
	doctors  repositories.DoctorRepository
	patients repositories.PatientRepository
	identity *IdentityService
	tokens   *utils.TokenMaker
	mailer   *utils.Mailer
	cache    *cache.Cache
}

func NewAuthService(
	db *gorm.DB,
	users repositories.UserRepository,
	doctors repositories.DoctorRepository,
	patients repositories.PatientRepository,
	identity *IdentityService,
	tokens *utils.TokenMaker,
	mailer *utils.Mailer,
	cache *cache.Cache,
) *AuthService {
	return &AuthService{
		db:       db,
		users:    users,
		doctors:  doctors,
		patients: patients,
		identity: identity,
		tokens:   tokens,
		mailer:   mailer,
		cache:    cache,
	}
}

// Register creates a User and, in the same transaction, the profile row the
// role implies: Patients get a linked Patient record, Doctors a Doctor record
// with specialization defaulting to "General".
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, apperrors.Validation("role must be one of Admin, Doctor, Patient")
	}

	if err := utils.ValidateCredentials(req.FullName, req.Email, req.Password); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Conflict("email already registered")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	refreshExpiry := time.Now().UTC().Add(utils.RefreshTokenExpiry)
	user := &models.User{
		FullName:           req.FullName,
		Email:              req.Email,
		Password:           hashed,
		Role:               role,
		RefreshToken:       uuid.New().String(),
		RefreshTokenExpiry: &refreshExpiry,
	}

	phone := req.Phone
	if phone == "" {
		phone = "Not provided"
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		switch role {
		case models.RolePatient:
			patient := &models.Patient{
				FullName: user.FullName,
				Email:    user.Email,
				Phone:    phone,
				UserID:   user.ID,
			}
			if err := tx.Create(patient).Error; err != nil {
				return fmt.Errorf("failed to create patient profile: %w", err)
			}
		case models.RoleDoctor:
			specialization := req.Specialization
			if specialization == "" {
				specialization = "General"
			}
			doctor := &models.Doctor{
				FullName:       user.FullName,
				Email:          user.Email,
				Phone:          req.Phone,
				Specialization: specialization,
				IsAvailable:    true,
				UserID:         &user.ID,
			}
			if err := tx.Create(doctor).Error; err != nil {
				return fmt.Errorf("failed to create doctor profile: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return user, nil
}

// Login verifies credentials, rotates the refresh token and issues an access
// token carrying the subject id, email and role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return nil, apperrors.Unauthenticated("invalid email or password")
	}

	pair, err := s.rotateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	principal, err := s.identity.Resolve(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:        pair.Token,
		RefreshToken: pair.RefreshToken,
		User: UserSummary{
			ID:        user.ID,
			FullName:  user.FullName,
			Email:     user.Email,
			Role:      user.Role,
			DoctorID:  principal.DoctorID,
			PatientID: principal.PatientID,
		},
	}, nil
}

// Refresh exchanges a stored refresh token for a new pair, rejecting unknown
// or expired tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	user, err := s.users.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if user == nil || user.RefreshTokenExpiry == nil || user.RefreshTokenExpiry.Before(time.Now().UTC()) {
		return nil, apperrors.Unauthenticated("invalid or expired refresh token")
	}

	return s.rotateTokens(ctx, user)
}

func (s *AuthService) rotateTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := s.tokens.Generate(user.ID, user.Email, user.Role.String())
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	refreshToken := uuid.New().String()
	expiry := time.Now().UTC().Add(utils.RefreshTokenExpiry)
	if err := s.users.UpdateRefreshToken(ctx, user.ID, refreshToken, expiry); err != nil {
		return nil, apperrors.Internal(err)
	}

	return &TokenPair{Token: accessToken, RefreshToken: refreshToken}, nil
}

// Me returns the current user together with the linked doctor or patient row.
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, *models.Doctor, *models.Patient, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, apperrors.Internal(err)
	}
	if user == nil {
		return nil, nil, nil, apperrors.NotFound("user not found")
	}

	var doctor *models.Doctor
	var patient *models.Patient
	switch user.Role {
	case models.RoleDoctor:
		doctor, err = s.doctors.GetByUserID(ctx, userID)
	case models.RolePatient:
		patient, err = s.patients.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, nil, nil, apperrors.Internal(err)
	}

	return user, doctor, patient, nil
}

// SendResetCode emails a short-lived reset code to a registered address. The
// outcome is identical for unknown addresses so the endpoint cannot be used
// to probe for accounts.
func (s *AuthService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return apperrors.Internal(err)
	}
	if user == nil {
		return nil
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := utils.SetResetCode(ctx, s.cache, email, code); err != nil {
		return apperrors.Internal(err)
	}

	if err := s.mailer.SendResetCodeEmail(email, code); err != nil {
		log.Printf("Failed to send reset code email: %v", err)
		return apperrors.Internal(err)
	}
	return nil
}

// ChangePassword redeems a reset code for a new password.
func (s *AuthService) ChangePassword(ctx context.Context, email, code, newPassword string) error {
	if err := utils.ValidatePasswordReset(code, newPassword); err != nil {
		return apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	stored, err := utils.GetResetCode(ctx, s.cache, email)
	if err != nil {
		return apperrors.Internal(err)
	}
	if stored == "" || stored != code {
		return apperrors.Validation("invalid reset code")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return apperrors.Internal(err)
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return apperrors.Internal(err)
	}

	if err := utils.DeleteResetCode(ctx, s.cache, email); err != nil {
		log.Printf("Failed to delete redeemed reset code: %v", err)
	}
	return nil
}
