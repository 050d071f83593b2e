// Package validate holds the registration form rules. Everything here runs
// before any network call.
package validate

import (
	"regexp"
	"strings"

	"it-library-portal/internal/models"
)

// Format rules for the self-registration form. Roll numbers encode
// year + college code + entry type + branch + serial.
var (
	rollNumberRe = regexp.MustCompile(`(?i)^(23|24|25)\d{2}(1A|5A)\d{2}[A-Z0-9]{2}$`)
	facultyIDRe  = regexp.MustCompile(`(?i)^it_\d{5}$`)
	phoneRe      = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// MinPasswordLength applies at registration. Login does not pre-check
// length; an existing credential is judged by the provider alone.
const MinPasswordLength = 8

// FieldErrors maps field names to messages, surfaced inline per field.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Registration checks the self-registration fields for the given role and
// returns nil when everything passes.
func Registration(role models.Role, name, identifier, phone, password string) error {
	errs := make(FieldErrors)

	name = strings.TrimSpace(name)
	if len(name) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	} else if len(name) > 100 {
		errs["name"] = "Name must be at most 100 characters"
	}

	switch role {
	case models.RoleStudent:
		if !rollNumberRe.MatchString(identifier) {
			errs["identifier"] = "Invalid roll number format (e.g., 23481A12K9)"
		}
	case models.RoleFaculty:
		if !facultyIDRe.MatchString(identifier) {
			errs["identifier"] = "Invalid faculty ID format (e.g., it_00001)"
		}
	default:
		errs["role"] = "Role must be student or faculty"
	}

	if !phoneRe.MatchString(phone) {
		errs["phone"] = "Invalid phone number (10 digits starting with 6-9)"
	}

	if len(password) < MinPasswordLength {
		errs["password"] = "Password must be at least 8 characters"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
