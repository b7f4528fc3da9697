package repositories

import (
	"SmartHospital/cache"
	"SmartHospital/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	CreateWithBillPaid(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context) ([]models.Payment, error)
	ListByPatient(ctx context.Context, patientID uint) ([]models.Payment, error)
}

type paymentRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPaymentRepository(db *gorm.DB, cache *cache.Cache) PaymentRepository {
	return &paymentRepository{db: db, cache: cache}
}

// CreateWithBillPaid inserts the payment and marks its bill Paid in a single
// transaction. Either both rows land or neither does.
func (r *paymentRepository) CreateWithBillPaid(ctx context.Context, payment *models.Payment) error {
	return withLock(ctx, fmt.Sprintf("bill_lock:%d", payment.BillID), func() error {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(payment).Error; err != nil {
				return fmt.Errorf("failed to create payment: %w", err)
			}
			if err := tx.Model(&models.Bill{}).Where("id = ?", payment.BillID).
				Update("status", models.BillPaid).Error; err != nil {
				return fmt.Errorf("failed to mark bill paid: %w", err)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("payment transaction failed: %w", err)
		}
		// The bill just changed status under the cached patient lists.
		return r.cache.DeleteAll(ctx, billsCacheKey+"*")
	})
}

func (r *paymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("Bill").
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email")
		}).
		Order("payment_date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Preload("Bill").
		Order("payment_date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patient payments: %w", err)
	}
	return payments, nil
}
