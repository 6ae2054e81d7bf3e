package core

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store holds the client-side task list, the selection set and the active
// filter, and reconciles them with the remote API.
//
// Two policies apply uniformly: every mutation updates the local list
// first and rolls back if persistence fails, and every list refresh
// carries a sequence token so a stale response can never overwrite a
// newer one.
type Store struct {
	mu  sync.Mutex
	api API
	log *slog.Logger
	now func() time.Time

	tasks      []Task
	selected   map[string]struct{}
	filter     TaskFilter
	refreshSeq uint64
}

func NewStore(log *slog.Logger, api API) *Store {
	return &Store{
		api:      api,
		log:      log,
		now:      time.Now,
		selected: make(map[string]struct{}),
	}
}

// Tasks returns a snapshot of the local list.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	return out
}

func (s *Store) Filter() TaskFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[id] = struct{}{}
}

func (s *Store) Deselect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, id)
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
}

// SetFilter replaces the active filter and refreshes the list.
func (s *Store) SetFilter(ctx context.Context, f TaskFilter) error {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Refresh reloads the list under the active filter. The response only
// lands if no newer refresh was issued while it was in flight.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.refreshSeq++
	seq := s.refreshSeq
	filter := s.filter
	s.mu.Unlock()

	items, err := s.api.ListTasks(ctx, filter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.refreshSeq {
		s.log.Debug("discarding stale task list response", "seq", seq, "latest", s.refreshSeq)
		return nil
	}
	s.tasks = items
	return nil
}

// NewTask derives done, startedAt and timeSpent from the requested state
// and appends the server-returned entity.
func (s *Store) NewTask(ctx context.Context, d TaskDraft) (Task, error) {
	state := d.State
	if state == "" {
		state = StateTodo
	}

	t := Task{
		Title:       d.Title,
		Description: d.Description,
		State:       state,
		Done:        state == StateDone,
		TimeSpent:   0,
	}
	if state == StateDoing {
		now := s.now()
		t.StartedAt = &now
	}

	created, err := s.api.CreateTask(ctx, t)
	if err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, created)
	s.mu.Unlock()
	return created, nil
}

// ToggleDone flips completion. Completing a task with a running session
// folds the elapsed whole seconds into timeSpent and closes the session.
func (s *Store) ToggleDone(ctx context.Context, id string) (Task, error) {
	return s.mutate(ctx, id, func(t Task) (Task, TaskPatch) {
		done := !t.Done

		t.Done = done
		if done {
			t.State = StateDone
			if t.StartedAt != nil {
				t.TimeSpent = s.elapsedSeconds(*t.StartedAt)
				t.StartedAt = nil
			}
		} else {
			t.State = StateTodo
		}

		return t, TaskPatch{
			Done:      &done,
			State:     &t.State,
			TimeSpent: &t.TimeSpent,
			StartedAt: t.StartedAt,
		}
	})
}

// ToggleSession opens or closes a timing session. Closing adds the
// elapsed whole seconds to the accumulated time.
func (s *Store) ToggleSession(ctx context.Context, id string, turnedOn bool) (Task, error) {
	return s.mutate(ctx, id, func(t Task) (Task, TaskPatch) {
		if turnedOn {
			now := s.now()
			t.StartedAt = &now
			t.State = StateDoing
		} else {
			if t.StartedAt != nil {
				t.TimeSpent += s.elapsedSeconds(*t.StartedAt)
			}
			t.StartedAt = nil
			t.State = StateTodo
		}

		return t, TaskPatch{
			State:     &t.State,
			TimeSpent: &t.TimeSpent,
			StartedAt: t.StartedAt,
		}
	})
}

// UpdateTask applies a partial patch.
func (s *Store) UpdateTask(ctx context.Context, id string, p TaskPatch) (Task, error) {
	return s.mutate(ctx, id, func(t Task) (Task, TaskPatch) {
		if p.Title != nil {
			t.Title = *p.Title
		}
		if p.Description != nil {
			t.Description = *p.Description
		}
		if p.State != nil {
			t.State = *p.State
			t.Done = *p.State == StateDone
		} else if p.Done != nil {
			t.Done = *p.Done
		}
		if p.TimeSpent != nil {
			t.TimeSpent = *p.TimeSpent
		}
		if p.StartedAt != nil {
			t.StartedAt = p.StartedAt
		}
		return t, p
	})
}

// RemoveSelected deletes the selection set remotely, then drops it from
// the local list and clears the selection.
func (s *Store) RemoveSelected(ctx context.Context) (DeleteResult, error) {
	ids := s.Selected()
	if len(ids) == 0 {
		return DeleteResult{Acknowledged: true}, nil
	}

	res, err := s.api.RemoveTasks(ctx, ids)
	if err != nil {
		return DeleteResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if _, ok := s.selected[t.ID]; !ok {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.selected = make(map[string]struct{})
	return res, nil
}

func (s *Store) RemoveAll(ctx context.Context) (DeleteResult, error) {
	res, err := s.api.RemoveAllTasks(ctx)
	if err != nil {
		return DeleteResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
	s.selected = make(map[string]struct{})
	return res, nil
}

// mutate is the one optimistic-update path: apply the change locally,
// persist it, roll back on failure, reconcile with the server entity on
// success.
func (s *Store) mutate(ctx context.Context, id string, change func(Task) (Task, TaskPatch)) (Task, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return Task{}, ErrNotFound
	}
	prev := s.tasks[idx]
	next, patch := change(prev)
	s.tasks[idx] = next
	s.mu.Unlock()

	updated, err := s.api.UpdateTask(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()

	// the task may have moved or vanished while the call was in flight
	idx = s.indexOf(id)
	if err != nil {
		if idx >= 0 {
			s.tasks[idx] = prev
		}
		return Task{}, err
	}
	if idx >= 0 {
		s.tasks[idx] = updated
	}
	return updated, nil
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) elapsedSeconds(started time.Time) int64 {
	return int64(s.now().Sub(started) / time.Second)
}
