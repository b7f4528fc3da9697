package services

import (
	"SmartHospital/apperrors"
	"SmartHospital/models"
	"testing"
)

func uintPtr(v uint) *uint { return &v }

func TestCanAct(t *testing.T) {
	facts := AppointmentFacts{DoctorID: 7, PatientID: 3}

	owningDoctor := &Principal{Role: models.RoleDoctor, DoctorID: uintPtr(7)}
	otherDoctor := &Principal{Role: models.RoleDoctor, DoctorID: uintPtr(8)}
	profilelessDoctor := &Principal{Role: models.RoleDoctor}
	owningPatient := &Principal{Role: models.RolePatient, PatientID: uintPtr(3)}
	otherPatient := &Principal{Role: models.RolePatient, PatientID: uintPtr(4)}
	admin := &Principal{Role: models.RoleAdmin}
	unknownRole := &Principal{Role: models.Role("Receptionist")}

	tests := []struct {
		name      string
		principal *Principal
		op        Operation
		want      bool
	}{
		{"admin views", admin, OpView, true},
		{"doctor views", otherDoctor, OpView, true},
		{"patient lists", otherPatient, OpList, true},
		{"unknown role denied view", unknownRole, OpView, false},

		{"admin books", admin, OpBook, true},
		{"patient books", owningPatient, OpBook, true},
		{"doctor cannot book", owningDoctor, OpBook, false},

		{"owning doctor updates status", owningDoctor, OpUpdateStatus, true},
		{"other doctor cannot update status", otherDoctor, OpUpdateStatus, false},
		{"doctor without profile cannot update status", profilelessDoctor, OpUpdateStatus, false},
		{"admin cannot update status", admin, OpUpdateStatus, false},
		{"patient cannot update status", owningPatient, OpUpdateStatus, false},

		{"owning patient updates details", owningPatient, OpUpdateDetails, true},
		{"other patient cannot update details", otherPatient, OpUpdateDetails, false},
		{"admin cannot update details", admin, OpUpdateDetails, false},
		{"doctor cannot update details", owningDoctor, OpUpdateDetails, false},

		{"admin deletes", admin, OpDelete, true},
		{"owning doctor deletes", owningDoctor, OpDelete, true},
		{"other doctor cannot delete", otherDoctor, OpDelete, false},
		{"owning patient deletes", owningPatient, OpDelete, true},
		{"other patient cannot delete", otherPatient, OpDelete, false},
		{"unknown role cannot delete", unknownRole, OpDelete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAct(tt.principal, tt.op, facts); got != tt.want {
				t.Errorf("CanAct() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateStatusTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{"pending to confirmed", models.StatusPending, models.StatusConfirmed, false},
		{"confirmed to completed", models.StatusConfirmed, models.StatusCompleted, false},
		{"completed back to pending", models.StatusCompleted, models.StatusPending, false},
		{"cancelled to confirmed", models.StatusCancelled, models.StatusConfirmed, false},
		{"unknown target", models.StatusPending, "Rescheduled", true},
		{"empty target", models.StatusPending, "", true},
		{"unknown stored status", "Limbo", models.StatusConfirmed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatusTransition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStatusTransition(%q, %q) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}
			if err != nil && apperrors.KindOf(err) != apperrors.KindValidation {
				t.Errorf("kind = %v, want KindValidation", apperrors.KindOf(err))
			}
		})
	}
}
