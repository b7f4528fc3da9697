package services

import (
	"SmartHospital/apperrors"
	"SmartHospital/models"
)

// Operation enumerates what a principal can attempt against an appointment.
type Operation int

const (
	OpView Operation = iota
	OpList
	OpBook
	OpUpdateStatus
	OpUpdateDetails
	OpDelete
)

// AppointmentFacts are the ownership facts a decision is made against. They
// are always loaded fresh from the database, never from a previous request.
type AppointmentFacts struct {
	DoctorID  uint
	PatientID uint
}

// ownsAsDoctor reports whether the principal's doctor record owns the row.
func (p *Principal) ownsAsDoctor(facts AppointmentFacts) bool {
	return p.DoctorID != nil && *p.DoctorID == facts.DoctorID
}

// ownsAsPatient reports whether the principal's patient record owns the row.
func (p *Principal) ownsAsPatient(facts AppointmentFacts) bool {
	return p.PatientID != nil && *p.PatientID == facts.PatientID
}

// CanAct is the appointment authorization policy. Roles outside the closed
// set match no rule and are denied.
func CanAct(p *Principal, op Operation, facts AppointmentFacts) bool {
	switch op {
	case OpView, OpList:
		// Visibility is handled by scoping, not denial: every authenticated
		// role may read, but non-admins only see their own rows.
		return p.Role.Valid()
	case OpBook:
		return p.Role == models.RoleAdmin || p.Role == models.RolePatient
	case OpUpdateStatus:
		return p.Role == models.RoleDoctor && p.ownsAsDoctor(facts)
	case OpUpdateDetails:
		return p.Role == models.RolePatient && p.ownsAsPatient(facts)
	case OpDelete:
		if p.Role == models.RoleAdmin {
			return true
		}
		if p.Role == models.RoleDoctor {
			return p.ownsAsDoctor(facts)
		}
		if p.Role == models.RolePatient {
			return p.ownsAsPatient(facts)
		}
		return false
	}
	return false
}

// knownStatuses is the closed appointment status set.
var knownStatuses = map[string]bool{
	models.StatusPending:   true,
	models.StatusConfirmed: true,
	models.StatusCancelled: true,
	models.StatusCompleted: true,
}

// ValidateStatusTransition gates a status rewrite. Any known status may be
// rewritten to any other known status; who may do so is decided by CanAct.
// Kept as its own check so a stricter transition graph stays a table edit.
func ValidateStatusTransition(from, to string) error {
	if !knownStatuses[to] {
		return apperrors.Validation("unknown appointment status: " + to)
	}
	if from != "" && !knownStatuses[from] {
		return apperrors.Validation("appointment has unknown status: " + from)
	}
	return nil
}
