package services

import (
	"SmartHospital/models"
	"SmartHospital/repositories"
	"context"
	"time"
)

// In-memory repository fakes used across the service tests.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID int64) (*models.User, error) {
	return r.users[userID], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByRefreshToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range r.users {
		if u.RefreshToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdateRefreshToken(_ context.Context, userID int64, token string, expiry time.Time) error {
	if u, ok := r.users[userID]; ok {
		u.RefreshToken = token
		u.RefreshTokenExpiry = &expiry
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, hashedPassword string) error {
	if u, ok := r.users[userID]; ok {
		u.Password = hashedPassword
	}
	return nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeDoctorRepo struct {
	doctors map[uint]*models.Doctor
	nextID  uint
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uint]*models.Doctor), nextID: 1}
}

func (r *fakeDoctorRepo) Create(_ context.Context, doctor *models.Doctor) error {
	doctor.ID = r.nextID
	r.nextID++
	r.doctors[doctor.ID] = doctor
	return nil
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id uint) (*models.Doctor, error) {
	return r.doctors[id], nil
}

func (r *fakeDoctorRepo) GetByUserID(_ context.Context, userID int64) (*models.Doctor, error) {
	for _, d := range r.doctors {
		if d.UserID != nil && *d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, d := range r.doctors {
		if d.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDoctorRepo) List(_ context.Context, specialization string, available *bool) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range r.doctors {
		if specialization != "" && specialization != "All" && d.Specialization != specialization {
			continue
		}
		if available != nil && d.IsAvailable != *available {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDoctorRepo) Specializations(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.doctors {
		if !seen[d.Specialization] {
			seen[d.Specialization] = true
			out = append(out, d.Specialization)
		}
	}
	return out, nil
}

func (r *fakeDoctorRepo) Update(_ context.Context, doctor *models.Doctor) error {
	r.doctors[doctor.ID] = doctor
	return nil
}

type fakePatientRepo struct {
	patients map[uint]*models.Patient
	nextID   uint
	creates  int
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uint]*models.Patient), nextID: 1}
}

func (r *fakePatientRepo) Create(_ context.Context, patient *models.Patient) error {
	patient.ID = r.nextID
	r.nextID++
	r.patients[patient.ID] = patient
	r.creates++
	return nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id uint) (*models.Patient, error) {
	return r.patients[id], nil
}

func (r *fakePatientRepo) GetByUserID(_ context.Context, userID int64) (*models.Patient, error) {
	for _, p := range r.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, p := range r.patients {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePatientRepo) List(_ context.Context) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePatientRepo) Update(_ context.Context, patient *models.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id uint) error {
	delete(r.patients, id)
	return nil
}

type fakeAppointmentRepo struct {
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uint]*models.Appointment), nextID: 1}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appointment *models.Appointment) error {
	appointment.ID = r.nextID
	r.nextID++
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id uint) (*models.Appointment, error) {
	return r.appointments[id], nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, scope repositories.ListScope) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appointments {
		if scope.DoctorID != nil && a.DoctorID != *scope.DoctorID {
			continue
		}
		if scope.PatientID != nil && a.PatientID != *scope.PatientID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, appointment *models.Appointment) error {
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	if a, ok := r.appointments[id]; ok {
		a.Status = status
		now := time.Now().UTC()
		a.UpdatedAt = &now
	}
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uint) error {
	delete(r.appointments, id)
	return nil
}

type fakeBillRepo struct {
	bills  map[uint]*models.Bill
	nextID uint
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{bills: make(map[uint]*models.Bill), nextID: 1}
}

func (r *fakeBillRepo) Create(_ context.Context, bill *models.Bill) error {
	bill.ID = r.nextID
	r.nextID++
	if bill.DueDate.IsZero() {
		bill.DueDate = time.Now().AddDate(0, 0, 30)
	}
	r.bills[bill.ID] = bill
	return nil
}

func (r *fakeBillRepo) GetByID(_ context.Context, id uint) (*models.Bill, error) {
	return r.bills[id], nil
}

func (r *fakeBillRepo) List(_ context.Context) ([]models.Bill, error) {
	var out []models.Bill
	for _, b := range r.bills {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBillRepo) ListByPatient(_ context.Context, patientID uint) ([]models.Bill, error) {
	var out []models.Bill
	for _, b := range r.bills {
		if b.PatientID == patientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBillRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	if b, ok := r.bills[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *fakeBillRepo) Delete(_ context.Context, id uint) error {
	delete(r.bills, id)
	return nil
}

type fakePaymentRepo struct {
	payments map[uint]*models.Payment
	bills    *fakeBillRepo
	nextID   uint
}

func newFakePaymentRepo(bills *fakeBillRepo) *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uint]*models.Payment), bills: bills, nextID: 1}
}

func (r *fakePaymentRepo) CreateWithBillPaid(_ context.Context, payment *models.Payment) error {
	payment.ID = r.nextID
	r.nextID++
	r.payments[payment.ID] = payment
	if b, ok := r.bills.bills[payment.BillID]; ok {
		b.Status = models.BillPaid
	}
	return nil
}

func (r *fakePaymentRepo) List(_ context.Context) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePaymentRepo) ListByPatient(_ context.Context, patientID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.PatientID == patientID {
			out = append(out, *p)
		}
	}
	return out, nil
}
