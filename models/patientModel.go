package models

import (
	"time"
)

// Doctor model
type Doctor struct {
	ID              uint          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	FullName        string        `gorm:"size:255;not null;column:full_name" json:"full_name"`
	Email           string        `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Phone           string        `gorm:"size:50;column:phone" json:"phone"`
	Specialization  string        `gorm:"size:100;not null;default:General;column:specialization" json:"specialization"`
	Qualification   string        `gorm:"size:255;column:qualification" json:"qualification"`
	ExperienceYears int           `gorm:"column:experience_years" json:"experience_years"`
	Department      string        `gorm:"size:100;column:department" json:"department"`
	Bio             string        `gorm:"type:text;column:bio" json:"bio"`
	IsAvailable     bool          `gorm:"not null;default:true;column:is_available" json:"is_available"`
	AvailableFrom   *time.Time    `gorm:"column:available_from" json:"available_from"`
	AvailableTo     *time.Time    `gorm:"column:available_to" json:"available_to"`
	UserID          *int64        `gorm:"index;column:user_id" json:"user_id"`
	User            *User         `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL;" json:"-"`
	CreatedAt       time.Time     `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Appointments    []Appointment `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Patient model
type Patient struct {
	ID             uint          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	FullName       string        `gorm:"size:255;not null;column:full_name" json:"full_name"`
	Email          string        `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Phone          string        `gorm:"size:50;column:phone" json:"phone"`
	Address        string        `gorm:"size:255;column:address" json:"address"`
	DateOfBirth    *time.Time    `gorm:"column:date_of_birth" json:"date_of_birth"`
	Gender         string        `gorm:"size:20;column:gender" json:"gender"`
	BloodGroup     string        `gorm:"size:10;column:blood_group" json:"blood_group"`
	MedicalHistory string        `gorm:"type:text;column:medical_history" json:"medical_history"`
	UserID         int64         `gorm:"not null;index;column:user_id" json:"user_id"`
	User           *User         `gorm:"foreignKey:UserID;references:ID" json:"-"`
	CreatedAt      time.Time     `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Appointments   []Appointment `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Bills          []Bill        `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// Appointment statuses. The set is closed, the transition graph is not: the
// owning doctor may rewrite any status to any other known status.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

// Appointment model. Doctor and patient references are restrict-on-delete so
// an appointment can never outlive either party.
type Appointment struct {
	ID              uint       `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	DoctorID        uint       `gorm:"not null;index;column:doctor_id" json:"doctor_id"`
	PatientID       uint       `gorm:"not null;index;column:patient_id" json:"patient_id"`
	AppointmentDate time.Time  `gorm:"not null;index;column:appointment_date" json:"appointment_date"`
	Status          string     `gorm:"size:20;not null;default:Pending;check:status IN ('Pending', 'Confirmed', 'Cancelled', 'Completed');column:status" json:"status"`
	Reason          string     `gorm:"type:text;column:reason" json:"reason"`
	Notes           string     `gorm:"type:text;column:notes" json:"notes"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"column:updated_at" json:"updated_at"`
	Doctor          Doctor     `gorm:"foreignKey:DoctorID;references:ID;constraint:OnDelete:RESTRICT;" json:"doctor"`
	Patient         Patient    `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:RESTRICT;" json:"patient"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// Bill statuses. A bill is binary paid/unpaid; amounts are not reconciled
// against payment totals.
const (
	BillUnpaid = "Unpaid"
	BillPaid   = "Paid"
)

// Bill model. Cascades away with its appointment, restricts patient deletion.
type Bill struct {
	ID            uint        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	AppointmentID uint        `gorm:"not null;index;column:appointment_id" json:"appointment_id"`
	PatientID     uint        `gorm:"not null;index;column:patient_id" json:"patient_id"`
	Amount        float64     `gorm:"type:decimal(18,2);not null;column:amount" json:"amount"`
	Status        string      `gorm:"size:20;not null;default:Unpaid;check:status IN ('Unpaid', 'Paid');column:status" json:"status"`
	DueDate       time.Time   `gorm:"not null;column:due_date" json:"due_date"`
	CreatedAt     time.Time   `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Appointment   Appointment `gorm:"foreignKey:AppointmentID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	Patient       Patient     `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:RESTRICT;" json:"-"`
}

func (Bill) TableName() string {
	return "bill"
}

// Payment model. Created inside the same transaction that marks its bill Paid.
type Payment struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BillID      uint      `gorm:"not null;index;column:bill_id" json:"bill_id"`
	PatientID   uint      `gorm:"not null;index;column:patient_id" json:"patient_id"`
	Amount      float64   `gorm:"type:decimal(18,2);not null;column:amount" json:"amount"`
	Method      string    `gorm:"size:50;not null;column:method" json:"method"`
	PaymentDate time.Time `gorm:"not null;column:payment_date" json:"payment_date"`
	Status      string    `gorm:"size:20;not null;column:status" json:"status"`
	Bill        Bill      `gorm:"foreignKey:BillID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	Patient     Patient   `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:RESTRICT;" json:"-"`
}

func (Payment) TableName() string {
	return "payment"
}
