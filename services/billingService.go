package services

import (
	"SmartHospital/apperrors"
	"SmartHospital/models"
	"SmartHospital/pdf"
	"SmartHospital/repositories"
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateBillRequest carries a new bill for a completed appointment.
type CreateBillRequest struct {
	AppointmentID uint       `json:"appointmentId"`
	PatientID     uint       `json:"patientId"`
	Amount        float64    `json:"amount"`
	DueDate       *time.Time `json:"dueDate"`
}

func (r CreateBillRequest) Validate() error {
	return validation.Errors{
		"appointmentId": validation.Validate(r.AppointmentID, validation.Required),
		"patientId":     validation.Validate(r.PatientID, validation.Required),
		"amount":        validation.Validate(r.Amount, validation.Required, validation.Min(0.01)),
	}.Filter()
}

type BillService struct {
	bills        repositories.BillRepository
	appointments repositories.AppointmentRepository
}

func NewBillService(bills repositories.BillRepository, appointments repositories.AppointmentRepository) *BillService {
	return &BillService{bills: bills, appointments: appointments}
}

func (s *BillService) List(ctx context.Context) ([]models.Bill, error) {
	bills, err := s.bills.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return bills, nil
}

func (s *BillService) ListByPatient(ctx context.Context, patientID uint) ([]models.Bill, error) {
	bills, err := s.bills.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return bills, nil
}

// Create issues an Unpaid bill against an existing appointment.
func (s *BillService) Create(ctx context.Context, req CreateBillRequest) (*models.Bill, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	appointment, err := s.appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if appointment == nil {
		return nil, apperrors.NotFound("appointment not found")
	}

	bill := &models.Bill{
		AppointmentID: req.AppointmentID,
		PatientID:     req.PatientID,
		Amount:        req.Amount,
		Status:        models.BillUnpaid,
	}
	if req.DueDate != nil {
		bill.DueDate = *req.DueDate
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, apperrors.Internal(err)
	}
	return bill, nil
}

func (s *BillService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if status != models.BillUnpaid && status != models.BillPaid {
		return apperrors.Validation("bill status must be Unpaid or Paid")
	}

	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if bill == nil {
		return apperrors.NotFound("bill not found")
	}

	if err := s.bills.UpdateStatus(ctx, id, status); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *BillService) Delete(ctx context.Context, id uint) error {
	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if bill == nil {
		return apperrors.NotFound("bill not found")
	}
	if err := s.bills.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Receipt renders a PDF receipt for a Paid bill.
func (s *BillService) Receipt(ctx context.Context, id uint) ([]byte, error) {
	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if bill == nil {
		return nil, apperrors.NotFound("bill not found")
	}
	if bill.Status != models.BillPaid {
		return nil, apperrors.Validation("receipt is only available for paid bills")
	}

	receipt, err := pdf.RenderReceipt(bill)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return receipt, nil
}
