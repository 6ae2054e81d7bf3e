package core

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	db  DB
	now func() time.Time
}

func NewService(db DB) *Service {
	return &Service{
		db:  db,
		now: time.Now,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// TaskDraft is the create input. Nil fields take defaults: state TODO,
// timeSpent 0. A done flag without a state resolves to DONE/TODO.
type TaskDraft struct {
	Title       string
	Description string
	Done        *bool
	State       TaskState
	StartedAt   *time.Time
	TimeSpent   *int64
}

// TaskPatch is a field-level partial update; nil means "leave as is".
type TaskPatch struct {
	Title       *string
	Description *string
	Done        *bool
	State       *TaskState
	StartedAt   *time.Time
	TimeSpent   *int64
}

func (p TaskPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.Done == nil &&
		p.State == nil && p.StartedAt == nil && p.TimeSpent == nil
}

func (s *Service) CreateTask(ctx context.Context, d TaskDraft) (Task, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return Task{}, ErrTaskInvalidArgs
	}

	state := d.State
	if state == "" {
		state = StateTodo
		if d.Done != nil && *d.Done {
			state = StateDone
		}
	}
	if !state.Valid() {
		return Task{}, ErrTaskInvalidArgs
	}

	var timeSpent int64
	if d.TimeSpent != nil {
		if *d.TimeSpent < 0 {
			return Task{}, ErrTaskInvalidArgs
		}
		timeSpent = *d.TimeSpent
	}

	t := Task{
		Title:       d.Title,
		Description: strings.TrimSpace(d.Description),
		State:       state,
		StartedAt:   d.StartedAt,
		TimeSpent:   timeSpent,
	}
	s.normalizeTiming(&t)

	return s.db.CreateTask(ctx, t)
}

func (s *Service) GetTask(ctx context.Context, id string) (Task, error) {
	if strings.TrimSpace(id) == "" {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.GetTask(ctx, id)
}

func (s *Service) ListTasks(ctx context.Context, f ListTasksFilter) ([]Task, error) {
	f = f.WithDefaults()
	if !f.SortBy.Valid() || !f.SortDirection.Valid() {
		return nil, ErrTaskInvalidArgs
	}
	if f.FilterByState != StateAll && !f.FilterByState.Valid() {
		return nil, ErrTaskInvalidArgs
	}
	return s.db.ListTasks(ctx, f)
}

func (s *Service) PatchTask(ctx context.Context, id string, p TaskPatch) (Task, error) {
	if strings.TrimSpace(id) == "" || p.empty() {
		return Task{}, ErrTaskInvalidArgs
	}

	cur, err := s.db.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return Task{}, ErrTaskInvalidArgs
		}
		cur.Title = title
	}

	if p.Description != nil {
		cur.Description = strings.TrimSpace(*p.Description)
	}

	switch {
	case p.State != nil:
		if !p.State.Valid() {
			return Task{}, ErrTaskInvalidArgs
		}
		cur.State = *p.State
	case p.Done != nil:
		if *p.Done {
			cur.State = StateDone
		} else if cur.State == StateDone {
			cur.State = StateTodo
		}
	}

	if p.StartedAt != nil {
		cur.StartedAt = p.StartedAt
	}

	if p.TimeSpent != nil {
		if *p.TimeSpent < 0 {
			return Task{}, ErrTaskInvalidArgs
		}
		cur.TimeSpent = *p.TimeSpent
	}

	s.normalizeTiming(&cur)

	return s.db.UpdateTask(ctx, cur)
}

func (s *Service) RemoveTask(ctx context.Context, id string) (DeleteResult, error) {
	if strings.TrimSpace(id) == "" {
		return DeleteResult{}, ErrTaskInvalidArgs
	}
	return s.db.DeleteTask(ctx, id)
}

func (s *Service) RemoveTasks(ctx context.Context, ids []string) (DeleteResult, error) {
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return DeleteResult{}, ErrTaskInvalidArgs
		}
	}
	return s.db.DeleteTasks(ctx, ids)
}

func (s *Service) RemoveAllTasks(ctx context.Context) (DeleteResult, error) {
	return s.db.DeleteAllTasks(ctx)
}

// normalizeTiming keeps the invariant state == DOING <=> startedAt set:
// leaving DOING clears the session start, entering it stamps one if the
// caller did not.
func (s *Service) normalizeTiming(t *Task) {
	if t.State != StateDoing {
		t.StartedAt = nil
		return
	}
	if t.StartedAt == nil {
		now := s.now()
		t.StartedAt = &now
	}
}
