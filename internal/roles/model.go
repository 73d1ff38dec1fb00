package roles

import "time"

// Role groups a set of named permissions assigned to back-office users.
// Permissions maps a capability key ("donors.write", "receipts.send") to
// whether the role grants it.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions map[string]bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Allows reports whether the role grants the given capability.
func (r Role) Allows(capability string) bool {
	return r.Permissions[capability]
}
