package graphql

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"task-tracker/services/tasks/core"
)

// Server owns the executable schema and maps GraphQL operations onto the
// core service. Input validation happens here, before the gateway; the
// service re-checks what it must on its own.
type Server struct {
	log     *slog.Logger
	service *core.Service
	schema  graphql.Schema
}

func NewServer(log *slog.Logger, service *core.Service) (*Server, error) {
	s := &Server{log: log, service: service}

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    s.queryType(),
		Mutation: s.mutationType(),
	})
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	s.schema = schema

	return s, nil
}

// Handler serves the schema over HTTP, GraphiQL included.
func (s *Server) Handler() http.Handler {
	return handler.New(&handler.Config{
		Schema:   &s.schema,
		Pretty:   true,
		GraphiQL: true,
	})
}

func (s *Server) queryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"task": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)

					t, err := s.service.GetTask(p.Context, id)
					if err != nil {
						return nil, s.mapErr(err)
					}
					return t, nil
				},
			},
			"tasks": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Args: graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: taskFilterInputType},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					f, err := filterFromArgs(p.Args["filter"])
					if err != nil {
						return nil, err
					}

					items, err := s.service.ListTasks(p.Context, f)
					if err != nil {
						return nil, s.mapErr(err)
					}
					return items, nil
				},
			},
		},
	})
}

func (s *Server) mutationType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createTask": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					draft, err := taskDraftFromArgs(p.Args["input"])
					if err != nil {
						return nil, err
					}

					t, err := s.service.CreateTask(p.Context, draft)
					if err != nil {
						return nil, s.mapErr(err)
					}
					return t, nil
				},
			},
			"updateTask": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskUpdateInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)

					patch, err := taskPatchFromArgs(p.Args["input"])
					if err != nil {
						return nil, err
					}

					t, err := s.service.PatchTask(p.Context, id, patch)
					if err != nil {
						return nil, s.mapErr(err)
					}
					return t, nil
				},
			},
			"removeTask": &graphql.Field{
				Type: graphql.NewNonNull(deleteResponseType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)

					res, err := s.service.RemoveTask(p.Context, id)
					if err != nil {
						return nil, s.mapErr(err)
					}
					return res, nil
				},
			},
			"removeTasks": &graphql.Field{
				Type: graphql.NewNonNull(deleteResponseType),
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ids, err := idsFromArgs(p.Args["ids"])
					if err != nil {
						return nil, err
					}

					res, err := s.service.RemoveTasks(p.Context, ids)
					if err != nil {
						return nil, s.mapErr(err)
					}
					return res, nil
				},
			},
			"removeAllTasks": &graphql.Field{
				Type: graphql.NewNonNull(deleteResponseType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					res, err := s.service.RemoveAllTasks(p.Context)
					if err != nil {
						return nil, s.mapErr(err)
					}
					return res, nil
				},
			},
		},
	})
}

// Argument parsing. graphql-go hands input objects over as generic maps
// with scalars already coerced (time.Time for DateTime, int for Int, the
// enum value strings for enums).

func taskDraftFromArgs(arg interface{}) (core.TaskDraft, error) {
	m, ok := arg.(map[string]interface{})
	if !ok {
		return core.TaskDraft{}, invalidf("empty input")
	}

	var d core.TaskDraft
	d.Title, _ = m["title"].(string)
	d.Description, _ = m["description"].(string)

	if v, ok := m["done"].(bool); ok {
		d.Done = &v
	}
	if v, ok := m["state"].(string); ok {
		d.State = core.TaskState(v)
	}
	if v, ok := m["startedAt"].(time.Time); ok {
		d.StartedAt = &v
	}
	if v, ok := m["timeSpent"].(int); ok {
		if v < 0 {
			return core.TaskDraft{}, invalidf("timeSpent cannot be negative")
		}
		ts := int64(v)
		d.TimeSpent = &ts
	}

	if d.State == core.StateAll {
		return core.TaskDraft{}, invalidf("ALL is not a task state")
	}

	return d, nil
}

func taskPatchFromArgs(arg interface{}) (core.TaskPatch, error) {
	m, ok := arg.(map[string]interface{})
	if !ok {
		return core.TaskPatch{}, invalidf("empty input")
	}

	var p core.TaskPatch

	if v, ok := m["title"].(string); ok {
		p.Title = &v
	}
	if v, ok := m["description"].(string); ok {
		p.Description = &v
	}
	if v, ok := m["done"].(bool); ok {
		p.Done = &v
	}
	if v, ok := m["state"].(string); ok {
		if core.TaskState(v) == core.StateAll {
			return core.TaskPatch{}, invalidf("ALL is not a task state")
		}
		st := core.TaskState(v)
		p.State = &st
	}
	if v, ok := m["startedAt"].(time.Time); ok {
		p.StartedAt = &v
	}
	if v, ok := m["timeSpent"].(int); ok {
		if v < 0 {
			return core.TaskPatch{}, invalidf("timeSpent cannot be negative")
		}
		ts := int64(v)
		p.TimeSpent = &ts
	}

	return p, nil
}

func filterFromArgs(arg interface{}) (core.ListTasksFilter, error) {
	var f core.ListTasksFilter

	m, ok := arg.(map[string]interface{})
	if !ok {
		// absent filter: defaults apply in the service
		return f, nil
	}

	if v, ok := m["showDoneTasks"].(bool); ok {
		f.ShowDoneTasks = &v
	}
	if v, ok := m["sortBy"].(string); ok {
		f.SortBy = core.SortBy(v)
	}
	if v, ok := m["sortDirection"].(string); ok {
		f.SortDirection = core.SortDirection(v)
	}
	if v, ok := m["filterByState"].(string); ok {
		f.FilterByState = core.TaskState(v)
	}
	if v, ok := m["filterByTitle"].(string); ok {
		f.FilterByTitle = v
	}
	if v, ok := m["filterByDateFrom"].(time.Time); ok {
		f.FilterByDateFrom = &v
	}
	if v, ok := m["filterByDateTo"].(time.Time); ok {
		f.FilterByDateTo = &v
	}

	return f, nil
}

func idsFromArgs(arg interface{}) ([]string, error) {
	raw, ok := arg.([]interface{})
	if !ok {
		return nil, invalidf("ids must be a list")
	}

	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		id, ok := v.(string)
		if !ok || id == "" {
			return nil, invalidf("ids must be non-empty strings")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", core.ErrTaskInvalidArgs, fmt.Sprintf(format, args...))
}

// mapErr keeps the sentinel messages on the wire and hides everything
// else behind a generic internal error.
func (s *Server) mapErr(err error) error {
	switch {
	case errors.Is(err, core.ErrTaskInvalidArgs), errors.Is(err, core.ErrTaskNotFound):
		return err
	default:
		s.log.Error("internal error", "error", err)
		return errors.New("internal error")
	}
}
