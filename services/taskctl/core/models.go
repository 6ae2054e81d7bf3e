package core

import "time"

type TaskState string

const (
	StateTodo  TaskState = "TODO"
	StateDoing TaskState = "DOING"
	StateDone  TaskState = "DONE"
	StateAll   TaskState = "ALL"
)

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Done        bool       `json:"done"`
	State       TaskState  `json:"state"`
	StartedAt   *time.Time `json:"startedAt"`
	TimeSpent   int64      `json:"timeSpent"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TaskPatch struct {
	Title       *string
	Description *string
	Done        *bool
	State       *TaskState
	StartedAt   *time.Time
	TimeSpent   *int64
}

type TaskDraft struct {
	Title       string
	Description string
	State       TaskState
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type SortBy string

const (
	SortByCreatedAt SortBy = "CREATED_AT"
	SortByTitle     SortBy = "TITLE"
	SortByState     SortBy = "STATE"
	SortByDone      SortBy = "DONE"
	SortByTimeSpent SortBy = "TIME_SPENT"
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// TaskFilter mirrors the server's TaskFilterInput; nil/zero fields are
// omitted from the request so the server applies its own defaults.
type TaskFilter struct {
	ShowDoneTasks    *bool
	SortBy           SortBy
	SortDirection    SortDirection
	FilterByState    TaskState
	FilterByTitle    string
	FilterByDateFrom *time.Time
	FilterByDateTo   *time.Time
}
