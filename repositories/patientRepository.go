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
	PatientCacheExpiry = 24 * time.Hour

	patientsCacheKey = "patients_cache"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Patient, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, id uint) error
}

type patientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) PatientRepository {
	return &patientRepository{db: db, cache: cache}
}

func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return r.cache.DeleteAll(ctx, patientsCacheKey+"*")
}

func (r *patientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPatientCacheKey(id)
	var cached models.Patient
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, patient, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patient in cache: %v", err)
	}

	return &patient, nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient by user id: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check patient email existence: %w", err)
	}
	return count > 0, nil
}

func (r *patientRepository) List(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cached []models.Patient
	if err := r.cache.GetJSON(ctx, patientsCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Failed to get patients from cache: %v", err)
	}

	var patients []models.Patient
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	if err := r.cache.SetJSON(ctx, patientsCacheKey, patients, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patients in cache: %v", err)
	}

	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *models.Patient) error {
	return withLock(ctx, fmt.Sprintf("patient_lock:%d", patient.ID), func() error {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(patient).Error; err != nil {
			return fmt.Errorf("failed to update patient: %w", err)
		}
		return r.invalidate(ctx, patient.ID)
	})
}

func (r *patientRepository) Delete(ctx context.Context, id uint) error {
	return withLock(ctx, fmt.Sprintf("patient_lock:%d", id), func() error {
		if err := r.db.WithContext(ctx).Delete(&models.Patient{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete patient: %w", err)
		}
		return r.invalidate(ctx, id)
	})
}

func (r *patientRepository) invalidate(ctx context.Context, id uint) error {
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, patientsCacheKey+"*")
}

func (r *patientRepository) getPatientCacheKey(id uint) string {
	return fmt.Sprintf("patient_cache:%d", id)
}
