package db

import (
	"fmt"
	"strings"

	"task-tracker/services/tasks/core"
)

const taskColumns = `id, title, COALESCE(description, '') AS description, state, started_at, time_spent, created_at, updated_at`

// buildListQuery turns a filter/sort request into the SELECT for ListTasks.
// Clauses are independent and conjunctive; the sort is a single key with no
// tie-break, so equal rows come back in storage order.
func buildListQuery(f core.ListTasksFilter) (string, []any) {
	var (
		sb   strings.Builder
		args []any
		n    = 1
	)

	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`)

	if f.ShowDoneTasks != nil && !*f.ShowDoneTasks {
		sb.WriteString(fmt.Sprintf(" AND state <> $%d", n))
		args = append(args, string(core.StateDone))
		n++
	}

	if f.FilterByState != "" && f.FilterByState != core.StateAll {
		sb.WriteString(fmt.Sprintf(" AND state = $%d", n))
		args = append(args, string(f.FilterByState))
		n++
	}

	if f.FilterByTitle != "" {
		sb.WriteString(fmt.Sprintf(" AND title ILIKE $%d", n))
		args = append(args, "%"+escapeLike(f.FilterByTitle)+"%")
		n++
	}

	if f.FilterByDateFrom != nil {
		sb.WriteString(fmt.Sprintf(" AND created_at >= $%d", n))
		args = append(args, *f.FilterByDateFrom)
		n++
	}

	if f.FilterByDateTo != nil {
		sb.WriteString(fmt.Sprintf(" AND created_at <= $%d", n))
		args = append(args, *f.FilterByDateTo)
		n++
	}

	sb.WriteString(" ORDER BY " + sortColumn(f.SortBy) + " " + sortOrder(f.SortDirection))

	return sb.String(), args
}

func sortColumn(by core.SortBy) string {
	switch by {
	case core.SortByTitle:
		return "title"
	case core.SortByState:
		return "state"
	case core.SortByDone:
		// done is a projection of state
		return "(state = 'DONE')"
	case core.SortByTimeSpent:
		return "time_spent"
	default:
		return "created_at"
	}
}

func sortOrder(dir core.SortDirection) string {
	if dir == core.SortAsc {
		return "ASC"
	}
	return "DESC"
}

// escapeLike neutralizes LIKE metacharacters so the title filter stays a
// plain substring match.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
