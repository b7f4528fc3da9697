package models

import (
	"time"
)

// Role is the closed set of access levels in the system. Stored as a plain
// string column; anything outside the three constants is rejected at the
// boundary instead of silently granting no access.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleDoctor  Role = "Doctor"
	RolePatient Role = "Patient"
)

// ParseRole maps a raw string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleDoctor, RolePatient:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string {
	return string(r)
}

// User represents a login identity. A Doctor or Patient profile may be linked
// to it via their user_id columns.
type User struct {
	ID                 int64      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	FullName           string     `gorm:"size:255;not null;column:full_name" json:"full_name"`
	Email              string     `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password           string     `gorm:"size:255;not null;column:password" json:"-"`
	Role               Role       `gorm:"size:20;not null;column:role" json:"role"`
	RefreshToken       string     `gorm:"size:64;index;column:refresh_token" json:"-"`
	RefreshTokenExpiry *time.Time `gorm:"column:refresh_token_expiry" json:"-"`
	CreatedAt          time.Time  `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
