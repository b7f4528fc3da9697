package models

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"Admin", RoleAdmin, true},
		{"Doctor", RoleDoctor, true},
		{"Patient", RolePatient, true},
		{"admin", "", false},
		{"Receptionist", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseRole(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleDoctor, RolePatient} {
		if !role.Valid() {
			t.Errorf("expected %q to be valid", role)
		}
	}
	if Role("Nurse").Valid() {
		t.Error("expected unknown role to be invalid")
	}
	if Role("").Valid() {
		t.Error("expected empty role to be invalid")
	}
}
