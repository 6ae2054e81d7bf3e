package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/machinebox/graphql"

	"task-tracker/services/taskctl/core"
)

const taskFields = `
	id
	title
	description
	done
	state
	startedAt
	timeSpent
	createdAt
	updatedAt
`

// Client speaks the task service's GraphQL surface and maps its errors to
// the client sentinels.
type Client struct {
	log *slog.Logger
	gql *graphql.Client
}

func NewClient(endpoint string, timeout time.Duration, log *slog.Logger) *Client {
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		log: log,
		gql: graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
	}
}

func (c *Client) GetTask(ctx context.Context, id string) (core.Task, error) {
	req := graphql.NewRequest(`
		query Task($id: ID!) {
			task(id: $id) {` + taskFields + `}
		}
	`)
	req.Var("id", id)

	var resp struct {
		Task core.Task `json:"task"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return core.Task{}, mapErr(err)
	}
	return resp.Task, nil
}

func (c *Client) ListTasks(ctx context.Context, f core.TaskFilter) ([]core.Task, error) {
	req := graphql.NewRequest(`
		query Tasks($filter: TaskFilterInput) {
			tasks(filter: $filter) {` + taskFields + `}
		}
	`)
	req.Var("filter", filterVars(f))

	var resp struct {
		Tasks []core.Task `json:"tasks"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, mapErr(err)
	}
	return resp.Tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, t core.Task) (core.Task, error) {
	input := map[string]any{
		"title":     t.Title,
		"done":      t.Done,
		"state":     string(t.State),
		"timeSpent": t.TimeSpent,
	}
	if t.Description != "" {
		input["description"] = t.Description
	}
	if t.StartedAt != nil {
		input["startedAt"] = t.StartedAt.Format(time.RFC3339)
	}

	req := graphql.NewRequest(`
		mutation CreateTask($input: TaskInput!) {
			createTask(input: $input) {` + taskFields + `}
		}
	`)
	req.Var("input", input)

	var resp struct {
		CreateTask core.Task `json:"createTask"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return core.Task{}, mapErr(err)
	}
	return resp.CreateTask, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, p core.TaskPatch) (core.Task, error) {
	input := map[string]any{}
	if p.Title != nil {
		input["title"] = *p.Title
	}
	if p.Description != nil {
		input["description"] = *p.Description
	}
	if p.Done != nil {
		input["done"] = *p.Done
	}
	if p.State != nil {
		input["state"] = string(*p.State)
	}
	if p.StartedAt != nil {
		input["startedAt"] = p.StartedAt.Format(time.RFC3339)
	}
	if p.TimeSpent != nil {
		input["timeSpent"] = *p.TimeSpent
	}

	req := graphql.NewRequest(`
		mutation UpdateTask($id: ID!, $input: TaskUpdateInput!) {
			updateTask(id: $id, input: $input) {` + taskFields + `}
		}
	`)
	req.Var("id", id)
	req.Var("input", input)

	var resp struct {
		UpdateTask core.Task `json:"updateTask"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return core.Task{}, mapErr(err)
	}
	return resp.UpdateTask, nil
}

func (c *Client) RemoveTask(ctx context.Context, id string) (core.DeleteResult, error) {
	req := graphql.NewRequest(`
		mutation RemoveTask($id: ID!) {
			removeTask(id: $id) { acknowledged deletedCount }
		}
	`)
	req.Var("id", id)

	var resp struct {
		RemoveTask core.DeleteResult `json:"removeTask"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return core.DeleteResult{}, mapErr(err)
	}
	return resp.RemoveTask, nil
}

func (c *Client) RemoveTasks(ctx context.Context, ids []string) (core.DeleteResult, error) {
	req := graphql.NewRequest(`
		mutation RemoveTasks($ids: [ID!]!) {
			removeTasks(ids: $ids) { acknowledged deletedCount }
		}
	`)
	req.Var("ids", ids)

	var resp struct {
		RemoveTasks core.DeleteResult `json:"removeTasks"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return core.DeleteResult{}, mapErr(err)
	}
	return resp.RemoveTasks, nil
}

func (c *Client) RemoveAllTasks(ctx context.Context) (core.DeleteResult, error) {
	req := graphql.NewRequest(`
		mutation {
			removeAllTasks { acknowledged deletedCount }
		}
	`)

	var resp struct {
		RemoveAllTasks core.DeleteResult `json:"removeAllTasks"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return core.DeleteResult{}, mapErr(err)
	}
	return resp.RemoveAllTasks, nil
}

var _ core.API = (*Client)(nil)

// helpers

func filterVars(f core.TaskFilter) map[string]any {
	vars := map[string]any{}
	if f.ShowDoneTasks != nil {
		vars["showDoneTasks"] = *f.ShowDoneTasks
	}
	if f.SortBy != "" {
		vars["sortBy"] = string(f.SortBy)
	}
	if f.SortDirection != "" {
		vars["sortDirection"] = string(f.SortDirection)
	}
	if f.FilterByState != "" {
		vars["filterByState"] = string(f.FilterByState)
	}
	if f.FilterByTitle != "" {
		vars["filterByTitle"] = f.FilterByTitle
	}
	if f.FilterByDateFrom != nil {
		vars["filterByDateFrom"] = f.FilterByDateFrom.Format(time.RFC3339)
	}
	if f.FilterByDateTo != nil {
		vars["filterByDateTo"] = f.FilterByDateTo.Format(time.RFC3339)
	}
	return vars
}

// mapErr classifies remote failures by the sentinel messages the server
// keeps on the wire; anything transport-level is unavailability.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return core.ErrNotFound
	case strings.Contains(msg, "invalid"):
		return core.ErrBadArguments
	case strings.Contains(msg, "graphql:"):
		return err
	default:
		return core.ErrUnavailable
	}
}
