package services

import (
	"SmartHospital/apperrors"
	"SmartHospital/models"
	"context"
	"testing"
	"time"
)

type appointmentFixture struct {
	service      *AppointmentService
	users        *fakeUserRepo
	doctors      *fakeDoctorRepo
	patients     *fakePatientRepo
	appointments *fakeAppointmentRepo
	notify       *NotificationService
}

func newAppointmentFixture() *appointmentFixture {
	users := newFakeUserRepo()
	doctors := newFakeDoctorRepo()
	patients := newFakePatientRepo()
	appointments := newFakeAppointmentRepo()
	notify := NewNotificationService()

	identity := NewIdentityService(users, doctors, patients)
	service := NewAppointmentService(identity, appointments, doctors, patients, notify)

	return &appointmentFixture{
		service:      service,
		users:        users,
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
		notify:       notify,
	}
}

func (f *appointmentFixture) addUser(t *testing.T, name, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{FullName: name, Email: email, Role: role}
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *appointmentFixture) addDoctor(t *testing.T, name string, userID int64) *models.Doctor {
	t.Helper()
	doctor := &models.Doctor{FullName: name, Email: name + "@hospital.test", Specialization: "General", UserID: &userID}
	if err := f.doctors.Create(context.Background(), doctor); err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return doctor
}

func (f *appointmentFixture) addPatient(t *testing.T, name string, userID int64) *models.Patient {
	t.Helper()
	patient := &models.Patient{FullName: name, Email: name + "@hospital.test", UserID: userID}
	if err := f.patients.Create(context.Background(), patient); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return patient
}

func TestBookCreatesPatientProfileOnce(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()

	docUser := f.addUser(t, "Dr Adams", "adams@hospital.test", models.RoleDoctor)
	doctor := f.addDoctor(t, "adams", docUser.ID)
	patUser := f.addUser(t, "Paula Berg", "paula@hospital.test", models.RolePatient)

	when := time.Now().Add(48 * time.Hour)
	req := BookAppointmentRequest{DoctorID: &doctor.ID, AppointmentDateTime: when, Notes: "checkup"}

	first, err := f.service.Book(ctx, patUser.ID, req)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if first.Status != models.StatusPending {
		t.Errorf("status = %q, want Pending", first.Status)
	}
	if f.patients.creates != 1 {
		t.Fatalf("patient creates = %d, want 1", f.patients.creates)
	}
	created, _ := f.patients.GetByUserID(ctx, patUser.ID)
	if created == nil {
		t.Fatal("expected auto-created patient profile")
	}
	if created.Phone != "Not provided" {
		t.Errorf("phone = %q, want default", created.Phone)
	}

	// A second booking reuses the existing profile.
	if _, err := f.service.Book(ctx, patUser.ID, req); err != nil {
		t.Fatalf("second booking: %v", err)
	}
	if f.patients.creates != 1 {
		t.Errorf("patient creates after second booking = %d, want 1", f.patients.creates)
	}

	// The doctor has a pending notification.
	if _, ok := f.notify.Latest(doctor.ID); !ok {
		t.Error("expected a notification for the doctor")
	}
}

func TestBookAdminRequiresExistingPatient(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()

	admin := f.addUser(t, "Root", "root@hospital.test", models.RoleAdmin)
	docUser := f.addUser(t, "Dr Adams", "adams@hospital.test", models.RoleDoctor)
	doctor := f.addDoctor(t, "adams", docUser.ID)

	when := time.Now().Add(24 * time.Hour)
	req := BookAppointmentRequest{DoctorID: &doctor.ID, AppointmentDateTime: when}

	if _, err := f.service.Book(ctx, admin.ID, req); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Errorf("booking without patient id: kind = %v, want KindValidation", apperrors.KindOf(err))
	}

	missing := uint(99)
	req.PatientID = &missing
	if _, err := f.service.Book(ctx, admin.ID, req); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("booking unknown patient: kind = %v, want KindNotFound", apperrors.KindOf(err))
	}

	patUser := f.addUser(t, "Paula Berg", "paula@hospital.test", models.RolePatient)
	patient := f.addPatient(t, "paula", patUser.ID)
	req.PatientID = &patient.ID
	if _, err := f.service.Book(ctx, admin.ID, req); err != nil {
		t.Fatalf("admin booking for existing patient: %v", err)
	}
	if f.patients.creates != 1 {
		t.Errorf("admin booking must not auto-create patients, creates = %d", f.patients.creates)
	}
}

func TestBookUnknownDoctor(t *testing.T) {
	f := newAppointmentFixture()
	patUser := f.addUser(t, "Paula Berg", "paula@hospital.test", models.RolePatient)

	missing := uint(42)
	req := BookAppointmentRequest{DoctorID: &missing, AppointmentDateTime: time.Now().Add(time.Hour)}
	if _, err := f.service.Book(context.Background(), patUser.ID, req); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound", apperrors.KindOf(err))
	}
}

func TestBookDoctorForbidden(t *testing.T) {
	f := newAppointmentFixture()
	docUser := f.addUser(t, "Dr Adams", "adams@hospital.test", models.RoleDoctor)
	doctor := f.addDoctor(t, "adams", docUser.ID)

	req := BookAppointmentRequest{DoctorID: &doctor.ID, AppointmentDateTime: time.Now().Add(time.Hour)}
	if _, err := f.service.Book(context.Background(), docUser.ID, req); apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Errorf("kind = %v, want KindForbidden", apperrors.KindOf(err))
	}
}

func TestUpdateStatusOwnership(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()

	docUser := f.addUser(t, "Dr Adams", "adams@hospital.test", models.RoleDoctor)
	doctor := f.addDoctor(t, "adams", docUser.ID)
	otherDocUser := f.addUser(t, "Dr Brine", "brine@hospital.test", models.RoleDoctor)
	f.addDoctor(t, "brine", otherDocUser.ID)
	patUser := f.addUser(t, "Paula Berg", "paula@hospital.test", models.RolePatient)
	patient := f.addPatient(t, "paula", patUser.ID)

	appointment := &models.Appointment{DoctorID: doctor.ID, PatientID: patient.ID, Status: models.StatusPending, AppointmentDate: time.Now().Add(time.Hour)}
	if err := f.appointments.Create(ctx, appointment); err != nil {
		t.Fatal(err)
	}

	// A foreign doctor is denied and the status is untouched.
	err := f.service.UpdateStatus(ctx, otherDocUser.ID, appointment.ID, models.StatusConfirmed)
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("foreign doctor: kind = %v, want KindForbidden", apperrors.KindOf(err))
	}
	stored, _ := f.appointments.GetByID(ctx, appointment.ID)
	if stored.Status != models.StatusPending {
		t.Errorf("status after denied update = %q, want Pending", stored.Status)
	}

	// An unknown status is rejected before ownership is even considered.
	err = f.service.UpdateStatus(ctx, docUser.ID, appointment.ID, "Rescheduled")
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("unknown status: kind = %v, want KindValidation", apperrors.KindOf(err))
	}

	// The owning doctor succeeds.
	if err := f.service.UpdateStatus(ctx, docUser.ID, appointment.ID, models.StatusConfirmed); err != nil {
		t.Fatalf("owning doctor: %v", err)
	}
	stored, _ = f.appointments.GetByID(ctx, appointment.ID)
	if stored.Status != models.StatusConfirmed {
		t.Errorf("status = %q, want Confirmed", stored.Status)
	}
	if stored.UpdatedAt == nil {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestUpdateDetailsOwnership(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()

	docUser := f.addUser(t, "Dr Adams", "adams@hospital.test", models.RoleDoctor)
	doctor := f.addDoctor(t, "adams", docUser.ID)
	patUser := f.addUser(t, "Paula Berg", "paula@hospital.test", models.RolePatient)
	patient := f.addPatient(t, "paula", patUser.ID)
	otherPatUser := f.addUser(t, "Quinn Oak", "quinn@hospital.test", models.RolePatient)
	f.addPatient(t, "quinn", otherPatUser.ID)

	appointment := &models.Appointment{DoctorID: doctor.ID, PatientID: patient.ID, Status: models.StatusPending, AppointmentDate: time.Now().Add(time.Hour)}
	if err := f.appointments.Create(ctx, appointment); err != nil {
		t.Fatal(err)
	}

	err := f.service.UpdateDetails(ctx, otherPatUser.ID, appointment.ID, UpdateAppointmentRequest{Reason: "hijack"})
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("foreign patient: kind = %v, want KindForbidden", apperrors.KindOf(err))
	}

	newDate := time.Now().Add(72 * time.Hour)
	if err := f.service.UpdateDetails(ctx, patUser.ID, appointment.ID, UpdateAppointmentRequest{Reason: "follow-up", AppointmentDateTime: &newDate}); err != nil {
		t.Fatalf("owning patient: %v", err)
	}
	stored, _ := f.appointments.GetByID(ctx, appointment.ID)
	if stored.Reason != "follow-up" {
		t.Errorf("reason = %q, want follow-up", stored.Reason)
	}
	if !stored.AppointmentDate.Equal(newDate) {
		t.Errorf("date not updated")
	}
}

func TestListScoping(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()

	admin := f.addUser(t, "Root", "root@hospital.test", models.RoleAdmin)
	docUser := f.addUser(t, "Dr Adams", "adams@hospital.test", models.RoleDoctor)
	doctor := f.addDoctor(t, "adams", docUser.ID)
	otherDocUser := f.addUser(t, "Dr Brine", "brine@hospital.test", models.RoleDoctor)
	otherDoctor := f.addDoctor(t, "brine", otherDocUser.ID)
	patUser := f.addUser(t, "Paula Berg", "paula@hospital.test", models.RolePatient)
	patient := f.addPatient(t, "paula", patUser.ID)
	profileless := f.addUser(t, "Nils Frost", "nils@hospital.test", models.RoleDoctor)

	for _, a := range []*models.Appointment{
		{DoctorID: doctor.ID, PatientID: patient.ID, Status: models.StatusPending},
		{DoctorID: otherDoctor.ID, PatientID: patient.ID, Status: models.StatusPending},
	} {
		if err := f.appointments.Create(ctx, a); err != nil {
			t.Fatal(err)
		}
	}

	adminList, err := f.service.List(ctx, admin.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(adminList) != 2 {
		t.Errorf("admin sees %d appointments, want 2", len(adminList))
	}

	docList, err := f.service.List(ctx, docUser.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(docList) != 1 || docList[0].DoctorID != doctor.ID {
		t.Errorf("doctor list = %v, want only own rows", docList)
	}

	patList, err := f.service.List(ctx, patUser.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(patList) != 2 {
		t.Errorf("patient sees %d appointments, want 2", len(patList))
	}

	// A doctor-role user with no doctor row sees an empty list, not everything.
	emptyList, err := f.service.List(ctx, profileless.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(emptyList) != 0 {
		t.Errorf("profileless doctor sees %d appointments, want 0", len(emptyList))
	}
}

func TestDeleteAuthorization(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()

	admin := f.addUser(t, "Root", "root@hospital.test", models.RoleAdmin)
	docUser := f.addUser(t, "Dr Adams", "adams@hospital.test", models.RoleDoctor)
	doctor := f.addDoctor(t, "adams", docUser.ID)
	patUser := f.addUser(t, "Paula Berg", "paula@hospital.test", models.RolePatient)
	patient := f.addPatient(t, "paula", patUser.ID)
	otherPatUser := f.addUser(t, "Quinn Oak", "quinn@hospital.test", models.RolePatient)
	f.addPatient(t, "quinn", otherPatUser.ID)

	appointment := &models.Appointment{DoctorID: doctor.ID, PatientID: patient.ID, Status: models.StatusPending}
	if err := f.appointments.Create(ctx, appointment); err != nil {
		t.Fatal(err)
	}

	if err := f.service.Delete(ctx, otherPatUser.ID, appointment.ID); apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("foreign patient delete: kind = %v, want KindForbidden", apperrors.KindOf(err))
	}
	if err := f.service.Delete(ctx, admin.ID, appointment.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := f.service.Delete(ctx, admin.ID, appointment.ID); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("second delete: kind = %v, want KindNotFound", apperrors.KindOf(err))
	}
}
