package core

import "time"

type TaskState string

const (
	StateTodo  TaskState = "TODO"
	StateDoing TaskState = "DOING"
	StateDone  TaskState = "DONE"

	// StateAll is only meaningful inside a list filter.
	StateAll TaskState = "ALL"
)

func (st TaskState) Valid() bool {
	return st == StateTodo || st == StateDoing || st == StateDone
}

type Task struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	State       TaskState  `db:"state" json:"state"`
	StartedAt   *time.Time `db:"started_at" json:"startedAt,omitempty"`
	TimeSpent   int64      `db:"time_spent" json:"timeSpent"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// Done is a projection of State; it is never stored on its own.
func (t Task) Done() bool { return t.State == StateDone }

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
