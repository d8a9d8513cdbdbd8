package domain

// RoleInfo is the slice of a role record this service reads from the role
// directory. The directory owns the full record; only id, display name and
// the staff-count limit matter here.
type RoleInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}
