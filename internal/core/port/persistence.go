package port

import (
	"context"

	"todolists/internal/core/domain"
)

// Persistence is the storage contract shared by the durable and ephemeral
// providers. It performs no title validation: callers validate before
// creating or renaming. Reads never fail; a backend error reads as empty or
// not found. Mutations that match nothing are no-ops and return nil.
type Persistence interface {
	AllLists(ctx context.Context) []domain.List
	FindList(ctx context.Context, id string) (domain.List, bool)
	CreateList(ctx context.Context, title string) error
	UpdateList(ctx context.Context, id string, title string) error
	DeleteList(ctx context.Context, id string) error

	CreateTodo(ctx context.Context, title string, listID string) error
	DeleteTodo(ctx context.Context, todoID string, listID string) error
	UpdateTodoStatus(ctx context.Context, todoID string, listID string, completed bool) error
	MarkAllTodosCompleted(ctx context.Context, listID string) error
}

type TodoListService interface {
	Lists(ctx context.Context) []domain.List
	List(ctx context.Context, id string) (domain.List, error)
	CreateList(ctx context.Context, title string) error
	RenameList(ctx context.Context, id string, title string) error
	DeleteList(ctx context.Context, id string) (string, error)
	CreateTodo(ctx context.Context, listID string, title string) error
	ToggleTodo(ctx context.Context, listID string, todoID string, completed bool) error
	DeleteTodo(ctx context.Context, listID string, todoID string) error
	CompleteAll(ctx context.Context, listID string) error
	Summary(list domain.List) domain.ListSummary
}
