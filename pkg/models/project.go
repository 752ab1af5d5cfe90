package models

import "time"

// Project statuses. Status and Progress are always derived from the
// project's task set by the progress aggregator; clients only author the
// initial 0/active pair at creation time.
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
)

// Project groups tasks and members.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Members     []string  `json:"members"`
	Status      string    `json:"status"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasMember reports whether userID is in the member set.
func (p *Project) HasMember(userID string) bool {
	for _, m := range p.Members {
		if m == userID {
			return true
		}
	}
	return false
}
