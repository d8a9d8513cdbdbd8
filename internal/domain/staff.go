package domain

import "time"

// StaffMember models a staff account.
// Email, Phone and CNIC are unique across all records; PasswordHash holds a
// bcrypt digest and must never appear in API responses.
type StaffMember struct {
	ID           string
	Username     string
	Email        string
	Phone        string
	CNIC         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
