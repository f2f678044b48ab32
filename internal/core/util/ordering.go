package util

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"todolists/internal/core/domain"
)

func IsTodoCompleted(todo domain.Todo) bool {
	return todo.Completed
}

// IsListCompleted is false for a list without todos.
func IsListCompleted(list domain.List) bool {
	return len(list.Todos) > 0 && TodosRemaining(list) == 0
}

func TodosRemaining(list domain.List) int {
	remaining := 0

	for _, todo := range list.Todos {
		if !todo.Completed {
			remaining++
		}
	}

	return remaining
}

// SortByCompletion returns a new slice holding the items that do not satisfy
// completed followed by the ones that do. Each group is ordered by
// case-insensitive title; equal titles keep their input order.
func SortByCompletion[T any](items []T, title func(T) string, completed func(T) bool) []T {
	fold := cases.Fold()

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return strings.Compare(fold.String(title(a)), fold.String(title(b)))
	})

	pending := make([]T, 0, len(sorted))
	done := make([]T, 0, len(sorted))

	for _, item := range sorted {
		if completed(item) {
			done = append(done, item)
		} else {
			pending = append(pending, item)
		}
	}

	return append(pending, done...)
}

func SortLists(lists []domain.List) []domain.List {
	return SortByCompletion(lists, func(l domain.List) string { return l.Title }, IsListCompleted)
}

func SortTodos(todos []domain.Todo) []domain.Todo {
	return SortByCompletion(todos, func(t domain.Todo) string { return t.Title }, IsTodoCompleted)
}
