package models

import "time"

// Notification types emitted by the core.
const (
	NotificationWelcome         = "welcome"
	NotificationTaskAssigned    = "task_assigned"
	NotificationProjectAssigned = "project_assigned"
)

// Notification is a persisted message for a single user. Notifications are
// never deleted; only the read flag is ever mutated.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}
