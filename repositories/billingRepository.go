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
)

const (
	BillCacheExpiry = 1 * time.Hour

	billsCacheKey = "bills_cache"
)

type BillRepository interface {
	Create(ctx context.Context, bill *models.Bill) error
	GetByID(ctx context.Context, id uint) (*models.Bill, error)
	List(ctx context.Context) ([]models.Bill, error)
	ListByPatient(ctx context.Context, patientID uint) ([]models.Bill, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type billRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewBillRepository(db *gorm.DB, cache *cache.Cache) BillRepository {
	return &billRepository{db: db, cache: cache}
}

func (r *billRepository) Create(ctx context.Context, bill *models.Bill) error {
	if bill.DueDate.IsZero() {
		bill.DueDate = time.Now().UTC().AddDate(0, 0, 30)
	}
	if err := r.db.WithContext(ctx).Create(bill).Error; err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return r.cache.DeleteAll(ctx, billsCacheKey+"*")
}

// GetByID loads a bill with the parties needed for receipts.
func (r *billRepository) GetByID(ctx context.Context, id uint) (*models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bill models.Bill
	err := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email, phone, user_id")
		}).
		Preload("Appointment").
		Preload("Appointment.Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, specialization")
		}).
		First(&bill, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &bill, nil
}

func (r *billRepository) List(ctx context.Context) ([]models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bills []models.Bill
	err := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email")
		}).
		Preload("Appointment").
		Order("created_at DESC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// ListByPatient is the hot read path (patients polling their own bills), so
// it is served cache-aside; every write below invalidates the whole keyspace.
func (r *billRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.Bill, error) {
	cacheKey := fmt.Sprintf("%s:patient:%d", billsCacheKey, patientID)
	var cached []models.Bill
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Failed to get patient bills from cache: %v", err)
	}

	var bills []models.Bill
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Preload("Appointment").
		Order("created_at DESC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patient bills: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, bills, BillCacheExpiry); err != nil {
		log.Printf("Failed to set patient bills in cache: %v", err)
	}
	return bills, nil
}

func (r *billRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return withLock(ctx, fmt.Sprintf("bill_lock:%d", id), func() error {
		err := r.db.WithContext(ctx).Model(&models.Bill{}).Where("id = ?", id).
			Update("status", status).Error
		if err != nil {
			return fmt.Errorf("failed to update bill status: %w", err)
		}
		return r.cache.DeleteAll(ctx, billsCacheKey+"*")
	})
}

func (r *billRepository) Delete(ctx context.Context, id uint) error {
	return withLock(ctx, fmt.Sprintf("bill_lock:%d", id), func() error {
		if err := r.db.WithContext(ctx).Delete(&models.Bill{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}
		return r.cache.DeleteAll(ctx, billsCacheKey+"*")
	})
}
