package util_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"

	"todolists/internal/core/domain"
	"todolists/internal/core/util"
	"todolists/pkg/test/factory"
)

func todo(title string, completed bool) domain.Todo {
	t := domain.NewTodo(title, title)
	t.Completed = completed

	return t
}

func titles(todos []domain.Todo) []string {
	out := make([]string, 0, len(todos))

	for _, t := range todos {
		out = append(out, t.Title)
	}

	return out
}

func TestIsListCompleted(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should be false without todos", func(t *testing.T) {
		Expect(util.IsListCompleted(factory.NewList())).To(BeFalse())
	})

	t.Run("should be false with an incomplete todo", func(t *testing.T) {
		list := factory.NewList(
			factory.NewTodo(map[string]any{"Completed": true}),
			factory.NewTodo(map[string]any{"Completed": false}),
		)

		Expect(util.IsListCompleted(list)).To(BeFalse())
	})

	t.Run("should be true when every todo is completed", func(t *testing.T) {
		list := factory.NewList(
			factory.NewTodo(map[string]any{"Completed": true}),
			factory.NewTodo(map[string]any{"Completed": true}),
		)

		Expect(util.IsListCompleted(list)).To(BeTrue())
	})
}

func TestIsTodoCompleted(t *testing.T) {
	assert.True(t, util.IsTodoCompleted(todo("a", true)))
	assert.False(t, util.IsTodoCompleted(todo("a", false)))
}

func TestTodosRemaining(t *testing.T) {
	list := domain.NewList("1", "Groceries")
	list.Todos = []domain.Todo{todo("a", false), todo("b", true), todo("c", false)}

	assert.Equal(t, 2, util.TodosRemaining(list))
	assert.Equal(t, 0, util.TodosRemaining(domain.NewList("2", "Empty")))
}

func TestSortTodos(t *testing.T) {
	RegisterTestingT(t)

	input := []domain.Todo{
		todo("bread", true),
		todo("Milk", false),
		todo("apples", false),
		todo("Avocado", true),
		todo("cheese", false),
	}

	sorted := util.SortTodos(input)

	Expect(titles(sorted)).To(Equal([]string{"apples", "cheese", "Milk", "Avocado", "bread"}))

	t.Run("should not mutate the input", func(t *testing.T) {
		Expect(titles(input)[0]).To(Equal("bread"))
	})

	t.Run("should be idempotent", func(t *testing.T) {
		Expect(util.SortTodos(sorted)).To(Equal(sorted))
	})
}

func TestSortByCompletion_StableForEqualTitles(t *testing.T) {
	first := domain.Todo{ID: "1", Title: "Milk"}
	second := domain.Todo{ID: "2", Title: "milk"}
	third := domain.Todo{ID: "3", Title: "MILK"}

	sorted := util.SortTodos([]domain.Todo{first, second, third})

	assert.Equal(t, []string{"1", "2", "3"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestSortLists(t *testing.T) {
	done := domain.NewList("1", "Alpha")
	done.Todos = []domain.Todo{todo("x", true)}

	empty := domain.NewList("2", "beta")

	pending := domain.NewList("3", "Gamma")
	pending.Todos = []domain.Todo{todo("y", false)}

	sorted := util.SortLists([]domain.List{done, pending, empty})

	assert.Equal(t, "beta", sorted[0].Title)
	assert.Equal(t, "Gamma", sorted[1].Title)
	assert.Equal(t, "Alpha", sorted[2].Title)
}
