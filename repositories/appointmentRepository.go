package repositories

import (
	"SmartHospital/cache"
	"SmartHospital/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	AppointmentCacheExpiry = 24 * time.Hour

	appointmentsCacheKey = "appointments_cache"
)

// ListScope narrows an appointment listing to one doctor or one patient.
// Both nil means an unscoped (admin) listing.
type ListScope struct {
	DoctorID  *uint
	PatientID *uint
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	List(ctx context.Context, scope ListScope) ([]models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type appointmentRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewAppointmentRepository(db *gorm.DB, cache *cache.Cache) AppointmentRepository {
	return &appointmentRepository{db: db, cache: cache}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return withLock(ctx, fmt.Sprintf("appointment_lock:%d_%d", appointment.PatientID, appointment.DoctorID), func() error {
		if err := r.db.WithContext(ctx).Create(appointment).Error; err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return r.cache.DeleteAll(ctx, appointmentsCacheKey+"*")
	})
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getAppointmentCacheKey(id)
	var cached models.Appointment
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Failed to get appointment from cache: %v", err)
	}

	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email, specialization")
		}).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email, phone, user_id")
		}).
		First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, appointment, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointment in cache: %v", err)
	}

	return &appointment, nil
}

// List returns appointments newest-first. Scoped listings always hit the
// database so ownership is resolved from fresh rows; only the unscoped admin
// listing is cached.
func (r *appointmentRepository) List(ctx context.Context, scope ListScope) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	unscoped := scope.DoctorID == nil && scope.PatientID == nil
	if unscoped {
		var cached []models.Appointment
		if err := r.cache.GetJSON(ctx, appointmentsCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Printf("Failed to get appointments from cache: %v", err)
		}
	}

	query := r.db.WithContext(ctx).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email, specialization")
		}).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email, phone, user_id")
		})
	if scope.DoctorID != nil {
		query = query.Where("doctor_id = ?", *scope.DoctorID)
	}
	if scope.PatientID != nil {
		query = query.Where("patient_id = ?", *scope.PatientID)
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date DESC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	if unscoped {
		if err := r.cache.SetJSON(ctx, appointmentsCacheKey, appointments, AppointmentCacheExpiry); err != nil {
			log.Printf("Failed to set appointments in cache: %v", err)
		}
	}

	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return withLock(ctx, fmt.Sprintf("appointment_lock:%d", appointment.ID), func() error {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(appointment).Error; err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		return r.invalidate(ctx, appointment.ID)
	})
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return withLock(ctx, fmt.Sprintf("appointment_lock:%d", id), func() error {
		now := time.Now().UTC()
		err := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}
		return r.invalidate(ctx, id)
	})
}

func (r *appointmentRepository) Delete(ctx context.Context, id uint) error {
	return withLock(ctx, fmt.Sprintf("appointment_lock:%d", id), func() error {
		if err := r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		return r.invalidate(ctx, id)
	})
}

func (r *appointmentRepository) invalidate(ctx context.Context, id uint) error {
	if err := r.cache.Delete(ctx, r.getAppointmentCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete appointment cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, appointmentsCacheKey+"*")
}

func (r *appointmentRepository) getAppointmentCacheKey(id uint) string {
	return fmt.Sprintf("appointment_cache:%d", id)
}
