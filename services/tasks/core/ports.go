package core

import "context"

// DB is the storage port the service drives. Implementations return
// ErrTaskNotFound for id-targeted reads and updates that miss; deletes
// report what they actually removed instead of erroring.
type DB interface {
	Ping(ctx context.Context) error

	CreateTask(ctx context.Context, t Task) (Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	ListTasks(ctx context.Context, f ListTasksFilter) ([]Task, error)
	UpdateTask(ctx context.Context, t Task) (Task, error)
	DeleteTask(ctx context.Context, id string) (DeleteResult, error)
	DeleteTasks(ctx context.Context, ids []string) (DeleteResult, error)
	DeleteAllTasks(ctx context.Context) (DeleteResult, error)
}
