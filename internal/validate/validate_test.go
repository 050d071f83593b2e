package validate

import (
	"errors"
	"testing"

	"it-library-portal/internal/models"
)

func TestRegistrationAcceptsValidForms(t *testing.T) {
	cases := []struct {
		name       string
		role       models.Role
		identifier string
	}{
		{"student upper", models.RoleStudent, "23481A12K9"},
		{"student lower", models.RoleStudent, "24011a0501"},
		{"student lateral entry", models.RoleStudent, "25995A12AB"},
		{"faculty", models.RoleFaculty, "it_00042"},
		{"faculty upper prefix", models.RoleFaculty, "IT_12345"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Registration(tc.role, "Asha Rao", tc.identifier, "9876543210", "password123")
			if err != nil {
				t.Fatalf("Registration() = %v, want nil", err)
			}
		})
	}
}

func TestRegistrationRejectsBadFields(t *testing.T) {
	cases := []struct {
		name       string
		role       models.Role
		userName   string
		identifier string
		phone      string
		password   string
		wantField  string
	}{
		{"short name", models.RoleStudent, "A", "23481A12K9", "9876543210", "password123", "name"},
		{"old batch year", models.RoleStudent, "Asha Rao", "22481A12K9", "9876543210", "password123", "identifier"},
		{"wrong entry code", models.RoleStudent, "Asha Rao", "23482A12K9", "9876543210", "password123", "identifier"},
		{"roll too short", models.RoleStudent, "Asha Rao", "23481A12K", "9876543210", "password123", "identifier"},
		{"faculty missing digits", models.RoleFaculty, "Asha Rao", "it_001", "9876543210", "password123", "identifier"},
		{"faculty no underscore", models.RoleFaculty, "Asha Rao", "it00001", "9876543210", "password123", "identifier"},
		{"phone starts with 5", models.RoleStudent, "Asha Rao", "23481A12K9", "5876543210", "password123", "phone"},
		{"phone too long", models.RoleStudent, "Asha Rao", "23481A12K9", "98765432100", "password123", "phone"},
		{"short password", models.RoleStudent, "Asha Rao", "23481A12K9", "9876543210", "short", "password"},
		{"librarian role not registrable", models.RoleLibrarian, "Asha Rao", "23481A12K9", "9876543210", "password123", "role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Registration(tc.role, tc.userName, tc.identifier, tc.phone, tc.password)
			var fieldErrs FieldErrors
			if !errors.As(err, &fieldErrs) {
				t.Fatalf("Registration() = %v, want FieldErrors", err)
			}
			if _, ok := fieldErrs[tc.wantField]; !ok {
				t.Fatalf("FieldErrors = %v, want entry for %q", fieldErrs, tc.wantField)
			}
		})
	}
}

func TestRegistrationCollectsAllErrors(t *testing.T) {
	err := Registration(models.RoleStudent, "", "bad", "123", "x")
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("Registration() = %v, want FieldErrors", err)
	}
	for _, field := range []string{"name", "identifier", "phone", "password"} {
		if _, ok := fieldErrs[field]; !ok {
			t.Errorf("FieldErrors missing %q: %v", field, fieldErrs)
		}
	}
}
