package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"task-tracker/services/tasks/core"
)

type DB struct {
	log  *slog.Logger
	conn *sqlx.DB
}

func New(log *slog.Logger, address string) (*DB, error) {
	db, err := sqlx.Connect("pgx", address)
	if err != nil {
		log.Error("connection problem", "address", address, "error", err)
		return nil, err
	}
	return &DB{log: log, conn: db}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

func (db *DB) CreateTask(ctx context.Context, t core.Task) (core.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	const q = `
		INSERT INTO tasks(id, title, description, state, started_at, time_spent)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		RETURNING ` + taskColumns + `;
	`

	t.ID = uuid.NewString()

	var out core.Task
	err := db.conn.QueryRowxContext(ctx, q, t.ID, t.Title, strings.TrimSpace(t.Description), string(t.State), t.StartedAt, t.TimeSpent).
		StructScan(&out)
	if err != nil {
		if isCheckViolation(err) {
			return core.Task{}, core.ErrTaskInvalidArgs
		}
		return core.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return out, nil
}

func (db *DB) GetTask(ctx context.Context, id string) (core.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1;`

	var t core.Task
	if err := db.conn.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (db *DB) ListTasks(ctx context.Context, f core.ListTasksFilter) ([]core.Task, error) {
	q, args := buildListQuery(f)

	out := []core.Task{}
	if err := db.conn.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (db *DB) UpdateTask(ctx context.Context, t core.Task) (core.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.ID == "" || t.Title == "" {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	const q = `
		UPDATE tasks
		SET title = $2,
		    description = NULLIF($3, ''),
		    state = $4,
		    started_at = $5,
		    time_spent = $6,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + taskColumns + `;
	`

	var out core.Task
	err := db.conn.QueryRowxContext(ctx, q, t.ID, t.Title, strings.TrimSpace(t.Description), string(t.State), t.StartedAt, t.TimeSpent).
		StructScan(&out)
	if err != nil {
		if isCheckViolation(err) {
			return core.Task{}, core.ErrTaskInvalidArgs
		}
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("update task: %w", err)
	}
	return out, nil
}

func (db *DB) DeleteTask(ctx context.Context, id string) (core.DeleteResult, error) {
	const q = `DELETE FROM tasks WHERE id = $1;`

	res, err := db.conn.ExecContext(ctx, q, id)
	if err != nil {
		return core.DeleteResult{}, fmt.Errorf("delete task: %w", err)
	}
	aff, _ := res.RowsAffected()
	return core.DeleteResult{Acknowledged: true, DeletedCount: aff}, nil
}

func (db *DB) DeleteTasks(ctx context.Context, ids []string) (core.DeleteResult, error) {
	if len(ids) == 0 {
		return core.DeleteResult{Acknowledged: true}, nil
	}

	q, args, err := sqlx.In(`DELETE FROM tasks WHERE id IN (?);`, ids)
	if err != nil {
		return core.DeleteResult{}, fmt.Errorf("delete tasks: %w", err)
	}

	res, err := db.conn.ExecContext(ctx, db.conn.Rebind(q), args...)
	if err != nil {
		return core.DeleteResult{}, fmt.Errorf("delete tasks: %w", err)
	}
	aff, _ := res.RowsAffected()
	return core.DeleteResult{Acknowledged: true, DeletedCount: aff}, nil
}

func (db *DB) DeleteAllTasks(ctx context.Context) (core.DeleteResult, error) {
	const q = `DELETE FROM tasks;`

	res, err := db.conn.ExecContext(ctx, q)
	if err != nil {
		return core.DeleteResult{}, fmt.Errorf("delete all tasks: %w", err)
	}
	aff, _ := res.RowsAffected()
	return core.DeleteResult{Acknowledged: true, DeletedCount: aff}, nil
}

// pg helpers

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}
