package apperrors

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrEmailTaken       = errors.New("user with this email already exists")
	ErrAdminExists      = errors.New("admin already exists")
	ErrAdminUndeletable = errors.New("cannot delete admin user")
	ErrImmutableField   = errors.New("cannot modify task ID or creation date")
	ErrFilterRequired   = errors.New("at least projectId, userId, assigneeId, or isAdmin flag must be provided")
)
