package core

import "context"

// API is the remote task surface the store talks to.
type API interface {
	GetTask(ctx context.Context, id string) (Task, error)
	ListTasks(ctx context.Context, f TaskFilter) ([]Task, error)
	CreateTask(ctx context.Context, t Task) (Task, error)
	UpdateTask(ctx context.Context, id string, p TaskPatch) (Task, error)
	RemoveTask(ctx context.Context, id string) (DeleteResult, error)
	RemoveTasks(ctx context.Context, ids []string) (DeleteResult, error)
	RemoveAllTasks(ctx context.Context) (DeleteResult, error)
}
