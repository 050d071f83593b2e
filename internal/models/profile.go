package models

import "time"

// Role determines which dashboard and operations an account may use
type Role string

const (
	RoleStudent   Role = "student"
	RoleFaculty   Role = "faculty"
	RoleLibrarian Role = "librarian"
)

// Status is the approval state of an account
type Status string

const (
	StatusPending  Status = "pending"  // Awaiting librarian approval
	StatusActive   Status = "active"   // Approved, may log in
	StatusRejected Status = "rejected" // Rejected by the librarian
)

// Profile represents a user account record, distinct from the Firebase Auth credential
type Profile struct {
	ID              string    `json:"id" firestore:"id"`
	AuthUID         string    `json:"auth_uid" firestore:"auth_uid"` // UID from Firebase Auth
	Name            string    `json:"name" firestore:"name"`
	Role            Role      `json:"role" firestore:"role"`
	RollOrFacultyID string    `json:"roll_or_faculty_id" firestore:"roll_or_faculty_id"` // Uppercased; fixed username for the librarian
	Phone           string    `json:"phone" firestore:"phone"`
	Status          Status    `json:"status" firestore:"status"`
	CreatedAt       time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updated_at"`
}

// IsActive checks whether the account has been approved
func (p *Profile) IsActive() bool {
	return p.Status == StatusActive
}

// IsLibrarian checks whether the account has the librarian role
func (p *Profile) IsLibrarian() bool {
	return p.Role == RoleLibrarian
}
