package tests

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"task-tracker/services/tasks/core"
)

// fakeDB mirrors the Postgres adapter's observable behavior in memory,
// including the list predicate and single-key sort.
type fakeDB struct {
	mu sync.RWMutex

	nextID int64
	clock  time.Time

	tasks map[string]core.Task
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		nextID: 1,
		clock:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		tasks:  make(map[string]core.Task),
	}
}

// tick hands out strictly increasing timestamps so createdAt ordering is
// deterministic in tests.
func (db *fakeDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

func cloneTask(t core.Task) core.Task {
	out := t
	if t.StartedAt != nil {
		started := *t.StartedAt
		out.StartedAt = &started
	}
	return out
}

func (db *fakeDB) Ping(context.Context) error {
	return nil
}

func (db *fakeDB) CreateTask(_ context.Context, t core.Task) (core.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return core.Task{}, core.ErrTaskInvalidArgs
	}
	if t.TimeSpent < 0 || !t.State.Valid() {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	t.ID = fmt.Sprintf("task-%04d", db.nextID)
	db.nextID++

	now := db.tick()
	t.CreatedAt = now
	t.UpdatedAt = now

	db.tasks[t.ID] = cloneTask(t)
	return cloneTask(t), nil
}

func (db *fakeDB) GetTask(_ context.Context, id string) (core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (db *fakeDB) ListTasks(_ context.Context, f core.ListTasksFilter) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0, len(db.tasks))
	for _, t := range db.tasks {
		if f.ShowDoneTasks != nil && !*f.ShowDoneTasks && t.Done() {
			continue
		}
		if f.FilterByState != "" && f.FilterByState != core.StateAll && t.State != f.FilterByState {
			continue
		}
		if f.FilterByTitle != "" &&
			!strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.FilterByTitle)) {
			continue
		}
		if f.FilterByDateFrom != nil && t.CreatedAt.Before(*f.FilterByDateFrom) {
			continue
		}
		if f.FilterByDateTo != nil && t.CreatedAt.After(*f.FilterByDateTo) {
			continue
		}
		out = append(out, cloneTask(t))
	}

	sortTasks(out, f.SortBy, f.SortDirection)
	return out, nil
}

func sortTasks(items []core.Task, by core.SortBy, dir core.SortDirection) {
	less := func(a, b core.Task) bool {
		switch by {
		case core.SortByTitle:
			return a.Title < b.Title
		case core.SortByState:
			return a.State < b.State
		case core.SortByDone:
			return !a.Done() && b.Done()
		case core.SortByTimeSpent:
			return a.TimeSpent < b.TimeSpent
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if dir == core.SortAsc {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}

func (db *fakeDB) UpdateTask(_ context.Context, t core.Task) (core.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.ID == "" || t.Title == "" || t.TimeSpent < 0 || !t.State.Valid() {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	current, ok := db.tasks[t.ID]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}

	t.CreatedAt = current.CreatedAt
	t.UpdatedAt = db.tick()

	db.tasks[t.ID] = cloneTask(t)
	return cloneTask(t), nil
}

func (db *fakeDB) DeleteTask(_ context.Context, id string) (core.DeleteResult, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tasks[id]; !ok {
		return core.DeleteResult{Acknowledged: true, DeletedCount: 0}, nil
	}
	delete(db.tasks, id)
	return core.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (db *fakeDB) DeleteTasks(_ context.Context, ids []string) (core.DeleteResult, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var deleted int64
	for _, id := range ids {
		if _, ok := db.tasks[id]; ok {
			delete(db.tasks, id)
			deleted++
		}
	}
	return core.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

func (db *fakeDB) DeleteAllTasks(context.Context) (core.DeleteResult, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	deleted := int64(len(db.tasks))
	db.tasks = make(map[string]core.Task)
	return core.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}
