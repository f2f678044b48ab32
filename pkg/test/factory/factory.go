package factory

import (
	fab "github.com/Goldziher/fabricator"

	"todolists/internal/core/domain"
)

func NewTodo(customData ...map[string]any) domain.Todo {
	instance := fab.New(domain.Todo{})

	if len(customData) > 0 {
		return instance.Build(customData...)
	}

	return instance.Build()
}

// NewList builds a list with random id and title holding exactly todos.
func NewList(todos ...domain.Todo) domain.List {
	list := fab.New(domain.List{}).Build()
	list.Todos = append([]domain.Todo{}, todos...)

	return list
}
