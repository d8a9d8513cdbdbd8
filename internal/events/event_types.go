package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffCreated EventType = "staff_created"
	EventStaffUpdated EventType = "staff_updated"
	EventStaffDeleted EventType = "staff_deleted"
	EventStaffLogin   EventType = "staff_login"
)

// Event represents a staff lifecycle event emitted by the service layer.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	StaffID   string      `json:"staff_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StaffCreatedPayload payload.
type StaffCreatedPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// StaffUpdatedPayload payload.
type StaffUpdatedPayload struct {
	ChangedFields []string `json:"changed_fields"`
}

// StaffDeletedPayload payload.
type StaffDeletedPayload struct {
	Email string `json:"email"`
}

// StaffLoginPayload payload.
type StaffLoginPayload struct {
	Email string `json:"email"`
}
