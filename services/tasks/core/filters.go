package core

import "time"

type SortBy string

const (
	SortByCreatedAt SortBy = "createdAt"
	SortByTitle     SortBy = "title"
	SortByState     SortBy = "state"
	SortByDone      SortBy = "done"
	SortByTimeSpent SortBy = "timeSpent"
)

func (s SortBy) Valid() bool {
	switch s {
	case SortByCreatedAt, SortByTitle, SortByState, SortByDone, SortByTimeSpent:
		return true
	}
	return false
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// ListTasksFilter carries the optional predicate and sort request for
// ListTasks. Zero values mean "not set"; defaults are applied by
// WithDefaults.
type ListTasksFilter struct {
	ShowDoneTasks    *bool         `json:"showDoneTasks"`
	SortBy           SortBy        `json:"sortBy"`
	SortDirection    SortDirection `json:"sortDirection"`
	FilterByState    TaskState     `json:"filterByState"`
	FilterByTitle    string        `json:"filterByTitle"`
	FilterByDateFrom *time.Time    `json:"filterByDateFrom"`
	FilterByDateTo   *time.Time    `json:"filterByDateTo"`
}

func (f ListTasksFilter) WithDefaults() ListTasksFilter {
	if f.ShowDoneTasks == nil {
		show := true
		f.ShowDoneTasks = &show
	}
	if f.SortBy == "" {
		f.SortBy = SortByCreatedAt
	}
	if f.SortDirection == "" {
		f.SortDirection = SortDesc
	}
	if f.FilterByState == "" {
		f.FilterByState = StateAll
	}
	return f
}
