package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewList(t *testing.T) {
	list := NewList("1", "Groceries")

	assert.Equal(t, "Groceries", list.Title)
	assert.NotNil(t, list.Todos)
	assert.Equal(t, 0, list.TodoCount())
}

func TestList_FindTodo(t *testing.T) {
	list := NewList("1", "Groceries")
	list.Todos = append(list.Todos, NewTodo("a", "Milk"), NewTodo("b", "Eggs"))

	t.Run("should return a pointer into the list", func(t *testing.T) {
		todo, ok := list.FindTodo("b")

		assert.True(t, ok)
		todo.MarkCompleted()

		assert.True(t, list.Todos[1].Completed)
	})

	t.Run("should report missing todos", func(t *testing.T) {
		_, ok := list.FindTodo("z")

		assert.False(t, ok)
	})
}

func TestList_RemoveTodo(t *testing.T) {
	list := NewList("1", "Groceries")
	list.Todos = append(list.Todos, NewTodo("a", "Milk"), NewTodo("b", "Eggs"), NewTodo("c", "Bread"))

	assert.True(t, list.RemoveTodo("b"))
	assert.False(t, list.RemoveTodo("b"))
	assert.Equal(t, 2, list.TodoCount())
	assert.Equal(t, "Milk", list.Todos[0].Title)
	assert.Equal(t, "Bread", list.Todos[1].Title)
}
