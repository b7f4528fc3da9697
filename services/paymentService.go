package services

import (
	"SmartHospital/apperrors"
	"SmartHospital/models"
	"SmartHospital/repositories"
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MakePaymentRequest settles a bill in full.
type MakePaymentRequest struct {
	BillID uint    `json:"billId"`
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

func (r MakePaymentRequest) Validate() error {
	return validation.Errors{
		"billId": validation.Validate(r.BillID, validation.Required),
		"amount": validation.Validate(r.Amount, validation.Required, validation.Min(0.01)),
		"method": validation.Validate(r.Method, validation.Required, validation.Length(1, 50)),
	}.Filter()
}

type PaymentService struct {
	payments repositories.PaymentRepository
	bills    repositories.BillRepository
}

func NewPaymentService(payments repositories.PaymentRepository, bills repositories.BillRepository) *PaymentService {
	return &PaymentService{payments: payments, bills: bills}
}

func (s *PaymentService) List(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return payments, nil
}

func (s *PaymentService) ListByPatient(ctx context.Context, patientID uint) ([]models.Payment, error) {
	payments, err := s.payments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return payments, nil
}

// Make records a payment and marks the bill Paid in one transaction.
func (s *PaymentService) Make(ctx context.Context, req MakePaymentRequest) (*models.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	bill, err := s.bills.GetByID(ctx, req.BillID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if bill == nil {
		return nil, apperrors.NotFound("bill not found")
	}
	if bill.Status == models.BillPaid {
		return nil, apperrors.Conflict("bill is already paid")
	}

	payment := &models.Payment{
		BillID:      req.BillID,
		PatientID:   bill.PatientID,
		Amount:      req.Amount,
		Method:      req.Method,
		PaymentDate: time.Now(),
		Status:      "Completed",
	}
	if err := s.payments.CreateWithBillPaid(ctx, payment); err != nil {
		return nil, apperrors.Internal(err)
	}
	return payment, nil
}
