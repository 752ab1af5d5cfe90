package models

import "time"

// Task statuses.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Subtask is an ordered checklist item within a task.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is a unit of work assigned to a user within a project.
// ID and CreatedAt are immutable after creation.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ProjectID   string    `json:"projectId"`
	AssigneeID  string    `json:"assigneeId"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     string    `json:"dueDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Subtasks    []Subtask `json:"subtasks,omitempty"`
}

// TaskPatch carries the mutable task fields for a partial update.
// Nil pointers mean "leave unchanged".
type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ProjectID   *string    `json:"projectId"`
	AssigneeID  *string    `json:"assigneeId"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *string    `json:"dueDate"`
	Subtasks    *[]Subtask `json:"subtasks"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.ProjectID == nil &&
		p.AssigneeID == nil && p.Status == nil && p.Priority == nil &&
		p.DueDate == nil && p.Subtasks == nil
}
