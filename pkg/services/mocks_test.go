package services

import (
	"context"
	"sync"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/apperrors"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/realtime"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/repositories"
)

// In-memory fakes for the repository interfaces. They mirror the store's
// behavior closely enough for the aggregator and side-effect chain tests:
// point lookups, filter-and-list, field updates, deletes.

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) Insert(ctx context.Context, user *models.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) GetAdmin(ctx context.Context) (*models.User, error) {
	for _, u := range f.users {
		if u.Role == models.RoleAdmin {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) ListNonAdmin(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.Role != models.RoleAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeProjectRepo struct {
	projects []*models.Project
}

func (f *fakeProjectRepo) Insert(ctx context.Context, project *models.Project) error {
	f.projects = append(f.projects, project)
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeProjectRepo) List(ctx context.Context) ([]*models.Project, error) {
	return f.projects, nil
}

func (f *fakeProjectRepo) ListForMember(ctx context.Context, userID string) ([]*models.Project, error) {
	var out []*models.Project
	for _, p := range f.projects {
		if p.HasMember(userID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	for i, p := range f.projects {
		if p.ID == project.ID {
			project.CreatedAt = p.CreatedAt
			f.projects[i] = project
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeProjectRepo) SetDerived(ctx context.Context, id string, progress int, status string) error {
	for _, p := range f.projects {
		if p.ID == id {
			p.Progress = progress
			p.Status = status
			return nil
		}
	}
	// Writes to unknown ids are silently ignored, like the store.
	return nil
}

func (f *fakeProjectRepo) AddMember(ctx context.Context, projectID, userID string) error {
	for _, p := range f.projects {
		if p.ID == projectID && !p.HasMember(userID) {
			p.Members = append(p.Members, userID)
		}
	}
	return nil
}

func (f *fakeProjectRepo) RemoveMemberEverywhere(ctx context.Context, userID string) error {
	for _, p := range f.projects {
		var members []string
		for _, m := range p.Members {
			if m != userID {
				members = append(members, m)
			}
		}
		p.Members = members
	}
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeTaskRepo struct {
	tasks []*models.Task
}

func (f *fakeTaskRepo) Insert(ctx context.Context, task *models.Task) error {
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*models.Task, error) {
	return f.List(ctx, repositories.TaskFilter{ProjectID: projectID})
}

func (f *fakeTaskRepo) List(ctx context.Context, filter repositories.TaskFilter) ([]*models.Task, error) {
	var out []*models.Task
	for _, t := range f.tasks {
		if filter.ProjectID != "" && t.ProjectID != filter.ProjectID {
			continue
		}
		if filter.AssigneeID != "" && t.AssigneeID != filter.AssigneeID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskRepo) ApplyPatch(ctx context.Context, id string, patch *models.TaskPatch) error {
	task, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.ProjectID != nil {
		task.ProjectID = *patch.ProjectID
	}
	if patch.AssigneeID != nil {
		task.AssigneeID = *patch.AssigneeID
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Subtasks != nil {
		task.Subtasks = *patch.Subtasks
	}
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeTaskRepo) DeleteByProject(ctx context.Context, projectID string) error {
	var kept []*models.Task
	for _, t := range f.tasks {
		if t.ProjectID != projectID {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}

func (f *fakeTaskRepo) DeleteByAssignee(ctx context.Context, assigneeID string) error {
	var kept []*models.Task
	for _, t := range f.tasks {
		if t.AssigneeID != assigneeID {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
}

func (f *fakeNotificationRepo) Insert(ctx context.Context, n *models.Notification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) ListForUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	var out []*models.Notification
	for i := len(f.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if f.notifications[i].UserID == userID {
			out = append(out, f.notifications[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	for _, n := range f.notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeSuggestionRepo struct {
	suggestions []*models.Suggestion
}

func (f *fakeSuggestionRepo) InsertBatch(ctx context.Context, suggestions []*models.Suggestion) error {
	f.suggestions = append(f.suggestions, suggestions...)
	return nil
}

// recordingBroadcaster captures broadcast events for verification.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (b *recordingBroadcaster) Broadcast(event realtime.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBroadcaster) Events() []realtime.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]realtime.Event(nil), b.events...)
}

// Compile-time checks that the fakes satisfy the repository interfaces.
var (
	_ repositories.UserRepository         = (*fakeUserRepo)(nil)
	_ repositories.ProjectRepository      = (*fakeProjectRepo)(nil)
	_ repositories.TaskRepository         = (*fakeTaskRepo)(nil)
	_ repositories.NotificationRepository = (*fakeNotificationRepo)(nil)
	_ repositories.SuggestionRepository   = (*fakeSuggestionRepo)(nil)
	_ Broadcaster                         = (*recordingBroadcaster)(nil)
)
