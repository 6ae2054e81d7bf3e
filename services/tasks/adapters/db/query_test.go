package db

import (
	"strings"
	"testing"
	"time"

	"task-tracker/services/tasks/core"
)

func defaults(f core.ListTasksFilter) core.ListTasksFilter {
	return f.WithDefaults()
}

func TestBuildListQuery_NoFilter(t *testing.T) {
	t.Parallel()

	q, args := buildListQuery(defaults(core.ListTasksFilter{}))

	if strings.Contains(q, "AND") {
		t.Fatalf("expected no predicate clauses, got %q", q)
	}
	if !strings.HasSuffix(q, "ORDER BY created_at DESC") {
		t.Fatalf("expected default sort, got %q", q)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuildListQuery_HideDone(t *testing.T) {
	t.Parallel()

	show := false
	q, args := buildListQuery(defaults(core.ListTasksFilter{ShowDoneTasks: &show}))

	if !strings.Contains(q, "state <> $1") {
		t.Fatalf("expected done exclusion clause, got %q", q)
	}
	if len(args) != 1 || args[0] != "DONE" {
		t.Fatalf("expected DONE arg, got %v", args)
	}
}

func TestBuildListQuery_ShowDoneTrueAddsNoClause(t *testing.T) {
	t.Parallel()

	show := true
	q, _ := buildListQuery(defaults(core.ListTasksFilter{ShowDoneTasks: &show}))

	if strings.Contains(q, "state <>") {
		t.Fatalf("showDoneTasks=true must not constrain state, got %q", q)
	}
}

func TestBuildListQuery_StateAndTitle(t *testing.T) {
	t.Parallel()

	q, args := buildListQuery(defaults(core.ListTasksFilter{
		FilterByState: core.StateDoing,
		FilterByTitle: "report",
	}))

	if !strings.Contains(q, "state = $1") {
		t.Fatalf("expected state clause, got %q", q)
	}
	if !strings.Contains(q, "title ILIKE $2") {
		t.Fatalf("expected title clause, got %q", q)
	}
	if len(args) != 2 || args[0] != "DOING" || args[1] != "%report%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildListQuery_TitleEscapesLikeMetacharacters(t *testing.T) {
	t.Parallel()

	q, args := buildListQuery(defaults(core.ListTasksFilter{FilterByTitle: "50%_done"}))

	if !strings.Contains(q, "title ILIKE $1") {
		t.Fatalf("expected title clause, got %q", q)
	}
	if args[0] != `%50\%\_done%` {
		t.Fatalf("expected escaped pattern, got %v", args[0])
	}
}

func TestBuildListQuery_DateRange(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	q, args := buildListQuery(defaults(core.ListTasksFilter{
		FilterByDateFrom: &from,
		FilterByDateTo:   &to,
	}))

	if !strings.Contains(q, "created_at >= $1") || !strings.Contains(q, "created_at <= $2") {
		t.Fatalf("expected inclusive bounds, got %q", q)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %v", args)
	}
}

func TestBuildListQuery_SortColumns(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		by   core.SortBy
		want string
	}{
		{core.SortByCreatedAt, "ORDER BY created_at"},
		{core.SortByTitle, "ORDER BY title"},
		{core.SortByState, "ORDER BY state"},
		{core.SortByDone, "ORDER BY (state = 'DONE')"},
		{core.SortByTimeSpent, "ORDER BY time_spent"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(string(tc.by), func(t *testing.T) {
			t.Parallel()

			q, _ := buildListQuery(defaults(core.ListTasksFilter{
				SortBy:        tc.by,
				SortDirection: core.SortAsc,
			}))
			if !strings.Contains(q, tc.want+" ASC") {
				t.Fatalf("expected %q ascending, got %q", tc.want, q)
			}
		})
	}
}

func TestBuildListQuery_ArgsStayPositional(t *testing.T) {
	t.Parallel()

	show := false
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	q, args := buildListQuery(defaults(core.ListTasksFilter{
		ShowDoneTasks:    &show,
		FilterByState:    core.StateTodo,
		FilterByTitle:    "a",
		FilterByDateFrom: &from,
	}))

	for i := 1; i <= len(args); i++ {
		if !strings.Contains(q, "$"+string(rune('0'+i))) {
			t.Fatalf("expected placeholder $%d in %q", i, q)
		}
	}
}
