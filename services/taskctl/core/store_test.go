package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu     sync.Mutex
	nextID int
	tasks  map[string]Task

	updateErr error
	lastPatch TaskPatch
	listFn    func(ctx context.Context, f TaskFilter) ([]Task, error)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 1, tasks: make(map[string]Task)}
}

func (a *fakeAPI) seed(t Task) Task {
	a.mu.Lock()
	defer a.mu.Unlock()

	t.ID = fmt.Sprintf("task-%04d", a.nextID)
	a.nextID++
	a.tasks[t.ID] = t
	return t
}

func (a *fakeAPI) GetTask(_ context.Context, id string) (Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, ok := a.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (a *fakeAPI) ListTasks(ctx context.Context, f TaskFilter) ([]Task, error) {
	if a.listFn != nil {
		return a.listFn(ctx, f)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Task, 0, len(a.tasks))
	for _, t := range a.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (a *fakeAPI) CreateTask(_ context.Context, t Task) (Task, error) {
	return a.seed(t), nil
}

func (a *fakeAPI) UpdateTask(_ context.Context, id string, p TaskPatch) (Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.updateErr != nil {
		return Task{}, a.updateErr
	}

	t, ok := a.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}

	a.lastPatch = p

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
	t.StartedAt = p.StartedAt

	a.tasks[id] = t
	return t, nil
}

func (a *fakeAPI) RemoveTask(_ context.Context, id string) (DeleteResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.tasks[id]; !ok {
		return DeleteResult{Acknowledged: true}, nil
	}
	delete(a.tasks, id)
	return DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (a *fakeAPI) RemoveTasks(_ context.Context, ids []string) (DeleteResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var deleted int64
	for _, id := range ids {
		if _, ok := a.tasks[id]; ok {
			delete(a.tasks, id)
			deleted++
		}
	}
	return DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

func (a *fakeAPI) RemoveAllTasks(context.Context) (DeleteResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	deleted := int64(len(a.tasks))
	a.tasks = make(map[string]Task)
	return DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

var _ API = (*fakeAPI)(nil)

func newTestStore(t *testing.T, api API, now time.Time) *Store {
	t.Helper()

	store := NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)), api)
	store.now = func() time.Time { return now }
	return store
}

func TestStoreToggleDone_ClosesRunningSession(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	started := now.Add(-90*time.Second - 700*time.Millisecond)

	api := newFakeAPI()
	seeded := api.seed(Task{Title: "task", State: StateDoing, StartedAt: &started})

	store := newTestStore(t, api, now)
	require.NoError(t, store.Refresh(context.Background()))

	updated, err := store.ToggleDone(context.Background(), seeded.ID)
	require.NoError(t, err)

	// sub-second remainder is discarded
	assert.Equal(t, int64(90), updated.TimeSpent)
	assert.Nil(t, updated.StartedAt)
	assert.Equal(t, StateDone, updated.State)
	assert.True(t, updated.Done)
}

func TestStoreToggleDone_OffReopensTask(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	api := newFakeAPI()
	seeded := api.seed(Task{Title: "task", State: StateDone, Done: true, TimeSpent: 42})

	store := newTestStore(t, api, now)
	require.NoError(t, store.Refresh(context.Background()))

	updated, err := store.ToggleDone(context.Background(), seeded.ID)
	require.NoError(t, err)

	assert.Equal(t, StateTodo, updated.State)
	assert.False(t, updated.Done)
	assert.Equal(t, int64(42), updated.TimeSpent, "reopening must not touch accumulated time")
}

func TestStoreToggleSession_OnAndOffAccumulates(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	api := newFakeAPI()
	seeded := api.seed(Task{Title: "task", State: StateTodo, TimeSpent: 10})

	store := newTestStore(t, api, now)
	require.NoError(t, store.Refresh(context.Background()))

	running, err := store.ToggleSession(context.Background(), seeded.ID, true)
	require.NoError(t, err)
	require.NotNil(t, running.StartedAt)
	assert.Equal(t, StateDoing, running.State)
	assert.Equal(t, now, *running.StartedAt)

	// 30.9s later the session closes; only whole seconds accrue
	store.now = func() time.Time { return now.Add(30*time.Second + 900*time.Millisecond) }

	stopped, err := store.ToggleSession(context.Background(), seeded.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(40), stopped.TimeSpent)
	assert.Nil(t, stopped.StartedAt)
	assert.Equal(t, StateTodo, stopped.State)
}

func TestStoreNewTask_DerivesFieldsFromState(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	api := newFakeAPI()
	store := newTestStore(t, api, now)

	created, err := store.NewTask(context.Background(), TaskDraft{Title: "in flight", State: StateDoing})
	require.NoError(t, err)

	assert.False(t, created.Done)
	require.NotNil(t, created.StartedAt)
	assert.Equal(t, now, *created.StartedAt)
	assert.Equal(t, int64(0), created.TimeSpent)

	doneTask, err := store.NewTask(context.Background(), TaskDraft{Title: "already done", State: StateDone})
	require.NoError(t, err)
	assert.True(t, doneTask.Done)
	assert.Nil(t, doneTask.StartedAt)

	assert.Len(t, store.Tasks(), 2, "created tasks are appended to the local list")
}

func TestStoreUpdateTask_RollsBackOnFailure(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	api := newFakeAPI()
	seeded := api.seed(Task{Title: "original", State: StateTodo})

	store := newTestStore(t, api, now)
	require.NoError(t, store.Refresh(context.Background()))

	api.updateErr = errors.New("boom")

	title := "changed"
	_, err := store.UpdateTask(context.Background(), seeded.ID, TaskPatch{Title: &title})
	require.Error(t, err)

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "original", tasks[0].Title, "failed update must roll back")
}

func TestStoreRefresh_DiscardsStaleResponse(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	api := newFakeAPI()
	store := newTestStore(t, api, now)

	slowEntered := make(chan struct{})
	release := make(chan struct{})
	calls := 0

	api.listFn = func(context.Context, TaskFilter) ([]Task, error) {
		calls++
		if calls == 1 {
			close(slowEntered)
			<-release
			return []Task{{ID: "old", Title: "stale"}}, nil
		}
		return []Task{{ID: "new", Title: "fresh"}}, nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = store.Refresh(context.Background())
	}()

	<-slowEntered
	require.NoError(t, store.Refresh(context.Background()))
	close(release)
	wg.Wait()

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "new", tasks[0].ID, "older in-flight response must not overwrite newer state")
}

func TestStoreRemoveSelected(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	api := newFakeAPI()
	a := api.seed(Task{Title: "a"})
	b := api.seed(Task{Title: "b"})
	api.seed(Task{Title: "keep"})

	store := newTestStore(t, api, now)
	require.NoError(t, store.Refresh(context.Background()))

	store.Select(a.ID)
	store.Select(b.ID)

	res, err := store.RemoveSelected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.DeletedCount)

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "keep", tasks[0].Title)
	assert.Empty(t, store.Selected())
}

func TestStoreRemoveAll(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	api := newFakeAPI()
	api.seed(Task{Title: "a"})
	api.seed(Task{Title: "b"})

	store := newTestStore(t, api, now)
	require.NoError(t, store.Refresh(context.Background()))
	store.Select(store.Tasks()[0].ID)

	res, err := store.RemoveAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.DeletedCount)
	assert.Empty(t, store.Tasks())
	assert.Empty(t, store.Selected())
}

func TestStoreMutate_UnknownID(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, newFakeAPI(), now)

	_, err := store.ToggleDone(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
