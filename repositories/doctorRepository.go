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
	DoctorCacheExpiry = 24 * time.Hour

	doctorsCacheKey = "doctors_cache"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id uint) (*models.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Doctor, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, specialization string, available *bool) ([]models.Doctor, error)
	Specializations(ctx context.Context) ([]string, error)
	Update(ctx context.Context, doctor *models.Doctor) error
}

type doctorRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDoctorRepository(db *gorm.DB, cache *cache.Cache) DoctorRepository {
	return &doctorRepository{db: db, cache: cache}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return r.cache.DeleteAll(ctx, doctorsCacheKey+"*")
}

func (r *doctorRepository) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getDoctorCacheKey(id)
	var cached models.Doctor
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	err := r.db.WithContext(ctx).First(&doctor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, doctor, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctor in cache: %v", err)
	}

	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor by user id: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check doctor email existence: %w", err)
	}
	return count > 0, nil
}

// List returns doctors ordered by name, optionally filtered by specialization
// and availability. Only the unfiltered listing is cached.
func (r *doctorRepository) List(ctx context.Context, specialization string, available *bool) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	unfiltered := specialization == "" && available == nil
	if unfiltered {
		var cached []models.Doctor
		if err := r.cache.GetJSON(ctx, doctorsCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Printf("Failed to get doctors from cache: %v", err)
		}
	}

	query := r.db.WithContext(ctx).Model(&models.Doctor{})
	if specialization != "" && specialization != "All" {
		query = query.Where("specialization = ?", specialization)
	}
	if available != nil {
		query = query.Where("is_available = ?", *available)
	}

	var doctors []models.Doctor
	if err := query.Order("full_name ASC").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	if unfiltered {
		if err := r.cache.SetJSON(ctx, doctorsCacheKey, doctors, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctors in cache: %v", err)
		}
	}

	return doctors, nil
}

func (r *doctorRepository) Specializations(ctx context.Context) ([]string, error) {
	var specializations []string
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).
		Where("specialization <> ''").
		Distinct("specialization").
		Order("specialization ASC").
		Pluck("specialization", &specializations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list specializations: %w", err)
	}
	return specializations, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	return withLock(ctx, fmt.Sprintf("doctor_lock:%d", doctor.ID), func() error {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(doctor).Error; err != nil {
			return fmt.Errorf("failed to update doctor: %w", err)
		}
		if err := r.cache.Delete(ctx, r.getDoctorCacheKey(doctor.ID)); err != nil {
			return fmt.Errorf("failed to delete doctor cache: %w", err)
		}
		return r.cache.DeleteAll(ctx, doctorsCacheKey+"*")
	})
}

func (r *doctorRepository) getDoctorCacheKey(id uint) string {
	return fmt.Sprintf("doctor_cache:%d", id)
}
