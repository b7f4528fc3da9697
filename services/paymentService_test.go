package services

import (
	"SmartHospital/apperrors"
	"SmartHospital/models"
	"context"
	"testing"
)

func TestMakePaymentMarksBillPaid(t *testing.T) {
	ctx := context.Background()
	bills := newFakeBillRepo()
	payments := newFakePaymentRepo(bills)
	service := NewPaymentService(payments, bills)

	bill := &models.Bill{AppointmentID: 1, PatientID: 3, Amount: 120.50, Status: models.BillUnpaid}
	if err := bills.Create(ctx, bill); err != nil {
		t.Fatal(err)
	}

	payment, err := service.Make(ctx, MakePaymentRequest{BillID: bill.ID, Amount: 120.50, Method: "Card"})
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if payment.PatientID != bill.PatientID {
		t.Errorf("payment patient = %d, want %d", payment.PatientID, bill.PatientID)
	}

	stored, _ := bills.GetByID(ctx, bill.ID)
	if stored.Status != models.BillPaid {
		t.Errorf("bill status = %q, want Paid", stored.Status)
	}
}

func TestMakePaymentAlreadyPaidConflicts(t *testing.T) {
	ctx := context.Background()
	bills := newFakeBillRepo()
	payments := newFakePaymentRepo(bills)
	service := NewPaymentService(payments, bills)

	bill := &models.Bill{AppointmentID: 1, PatientID: 3, Amount: 80, Status: models.BillPaid}
	if err := bills.Create(ctx, bill); err != nil {
		t.Fatal(err)
	}

	_, err := service.Make(ctx, MakePaymentRequest{BillID: bill.ID, Amount: 80, Method: "Cash"})
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Errorf("kind = %v, want KindConflict", apperrors.KindOf(err))
	}
}

func TestMakePaymentValidation(t *testing.T) {
	bills := newFakeBillRepo()
	service := NewPaymentService(newFakePaymentRepo(bills), bills)

	tests := []struct {
		name string
		req  MakePaymentRequest
		kind apperrors.Kind
	}{
		{"missing bill", MakePaymentRequest{Amount: 10, Method: "Cash"}, apperrors.KindValidation},
		{"zero amount", MakePaymentRequest{BillID: 1, Method: "Cash"}, apperrors.KindValidation},
		{"missing method", MakePaymentRequest{BillID: 1, Amount: 10}, apperrors.KindValidation},
		{"unknown bill", MakePaymentRequest{BillID: 9, Amount: 10, Method: "Cash"}, apperrors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Make(context.Background(), tt.req)
			if apperrors.KindOf(err) != tt.kind {
				t.Errorf("kind = %v, want %v", apperrors.KindOf(err), tt.kind)
			}
		})
	}
}
