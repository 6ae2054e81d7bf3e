package graphql

import (
	"github.com/graphql-go/graphql"

	"task-tracker/services/tasks/core"
)

// Wire types of the task API. Enums carry the core string values so the
// parsed argument maps hold values the core package understands directly.

var taskStateEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "TaskState",
	Values: graphql.EnumValueConfigMap{
		"TODO":  &graphql.EnumValueConfig{Value: string(core.StateTodo)},
		"DOING": &graphql.EnumValueConfig{Value: string(core.StateDoing)},
		"DONE":  &graphql.EnumValueConfig{Value: string(core.StateDone)},
		"ALL":   &graphql.EnumValueConfig{Value: string(core.StateAll)},
	},
})

var sortByEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "SortBy",
	Values: graphql.EnumValueConfigMap{
		"CREATED_AT": &graphql.EnumValueConfig{Value: string(core.SortByCreatedAt)},
		"TITLE":      &graphql.EnumValueConfig{Value: string(core.SortByTitle)},
		"STATE":      &graphql.EnumValueConfig{Value: string(core.SortByState)},
		"DONE":       &graphql.EnumValueConfig{Value: string(core.SortByDone)},
		"TIME_SPENT": &graphql.EnumValueConfig{Value: string(core.SortByTimeSpent)},
	},
})

var sortDirectionEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "SortDirection",
	Values: graphql.EnumValueConfigMap{
		"ASC":  &graphql.EnumValueConfig{Value: string(core.SortAsc)},
		"DESC": &graphql.EnumValueConfig{Value: string(core.SortDesc)},
	},
})

var taskType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Task",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(core.Task).ID, nil
			},
		},
		"title": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(core.Task).Title, nil
			},
		},
		"description": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(core.Task).Description, nil
			},
		},
		"done": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(core.Task).Done(), nil
			},
		},
		"state": &graphql.Field{
			Type: graphql.NewNonNull(taskStateEnum),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return string(p.Source.(core.Task).State), nil
			},
		},
		"startedAt": &graphql.Field{
			Type: graphql.DateTime,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				started := p.Source.(core.Task).StartedAt
				if started == nil {
					return nil, nil
				}
				return *started, nil
			},
		},
		"timeSpent": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return int(p.Source.(core.Task).TimeSpent), nil
			},
		},
		"createdAt": &graphql.Field{
			Type: graphql.NewNonNull(graphql.DateTime),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(core.Task).CreatedAt, nil
			},
		},
		"updatedAt": &graphql.Field{
			Type: graphql.NewNonNull(graphql.DateTime),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(core.Task).UpdatedAt, nil
			},
		},
	},
})

var deleteResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DeleteResponse",
	Fields: graphql.Fields{
		"acknowledged": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(core.DeleteResult).Acknowledged, nil
			},
		},
		"deletedCount": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return int(p.Source.(core.DeleteResult).DeletedCount), nil
			},
		},
	},
})

var taskInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TaskInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"done":        &graphql.InputObjectFieldConfig{Type: graphql.Boolean, DefaultValue: false},
		"state":       &graphql.InputObjectFieldConfig{Type: taskStateEnum, DefaultValue: string(core.StateTodo)},
		"startedAt":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"timeSpent":   &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var taskUpdateInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TaskUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"done":        &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"state":       &graphql.InputObjectFieldConfig{Type: taskStateEnum},
		"startedAt":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"timeSpent":   &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var taskFilterInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TaskFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"showDoneTasks":    &graphql.InputObjectFieldConfig{Type: graphql.Boolean, DefaultValue: true},
		"sortBy":           &graphql.InputObjectFieldConfig{Type: sortByEnum, DefaultValue: string(core.SortByCreatedAt)},
		"sortDirection":    &graphql.InputObjectFieldConfig{Type: sortDirectionEnum, DefaultValue: string(core.SortDesc)},
		"filterByState":    &graphql.InputObjectFieldConfig{Type: taskStateEnum, DefaultValue: string(core.StateAll)},
		"filterByTitle":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"filterByDateFrom": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"filterByDateTo":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
	},
})
