package test

import (
	"context"

	"github.com/stretchr/testify/suite"

	"todolists/internal/core/domain"
	"todolists/internal/core/port"
	"todolists/internal/core/util"
)

// PersistenceContractSuite holds the behavior every port.Persistence must
// share. Providers run it with suite.Run and a constructor returning a fresh,
// empty store.
type PersistenceContractSuite struct {
	suite.Suite
	NewPersistence func() port.Persistence
	Store          port.Persistence
	ctx            context.Context
}

func (s *PersistenceContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.Store = s.NewPersistence()
}

func (s *PersistenceContractSuite) createList(title string) domain.List {
	s.Require().NoError(s.Store.CreateList(s.ctx, title))

	for _, list := range s.Store.AllLists(s.ctx) {
		if list.Title == title {
			return list
		}
	}

	s.FailNow("list not created", title)
	return domain.List{}
}

func (s *PersistenceContractSuite) createTodos(listID string, titles ...string) domain.List {
	for _, title := range titles {
		s.Require().NoError(s.Store.CreateTodo(s.ctx, title, listID))
	}

	list, ok := s.Store.FindList(s.ctx, listID)
	s.Require().True(ok)

	return list
}

func (s *PersistenceContractSuite) TestAllLists_Empty() {
	lists := s.Store.AllLists(s.ctx)

	s.NotNil(lists)
	s.Empty(lists)
}

func (s *PersistenceContractSuite) TestCreateList_KeepsInsertionOrder() {
	s.createList("Groceries")
	s.createList("Chores")
	s.createList("Books")

	lists := s.Store.AllLists(s.ctx)

	s.Require().Len(lists, 3)
	s.Equal("Groceries", lists[0].Title)
	s.Equal("Chores", lists[1].Title)
	s.Equal("Books", lists[2].Title)

	for _, list := range lists {
		s.NotEmpty(list.ID)
		s.NotNil(list.Todos)
		s.Empty(list.Todos)
	}

	s.NotEqual(lists[0].ID, lists[1].ID)
}

func (s *PersistenceContractSuite) TestFindList() {
	created := s.createList("Groceries")

	found, ok := s.Store.FindList(s.ctx, created.ID)

	s.True(ok)
	s.Equal(created.ID, found.ID)
	s.Equal("Groceries", found.Title)
}

func (s *PersistenceContractSuite) TestFindList_NotFound() {
	s.createList("Groceries")

	for _, id := range []string{"", "999999", "not-an-id", "-1", "01", "+1"} {
		_, ok := s.Store.FindList(s.ctx, id)
		s.False(ok, "id %q", id)
	}
}

func (s *PersistenceContractSuite) TestUpdateList() {
	list := s.createList("Groceries")

	s.Require().NoError(s.Store.UpdateList(s.ctx, list.ID, "Shopping"))

	found, ok := s.Store.FindList(s.ctx, list.ID)
	s.Require().True(ok)
	s.Equal("Shopping", found.Title)
}

func (s *PersistenceContractSuite) TestUpdateList_MissingIsNoOp() {
	s.createList("Groceries")

	s.NoError(s.Store.UpdateList(s.ctx, "999999", "Shopping"))

	lists := s.Store.AllLists(s.ctx)
	s.Require().Len(lists, 1)
	s.Equal("Groceries", lists[0].Title)
}

func (s *PersistenceContractSuite) TestDeleteList_CascadesTodos() {
	list := s.createList("Groceries")
	other := s.createList("Chores")
	s.createTodos(list.ID, "Milk", "Eggs")
	s.createTodos(other.ID, "Dishes")

	s.Require().NoError(s.Store.DeleteList(s.ctx, list.ID))

	_, ok := s.Store.FindList(s.ctx, list.ID)
	s.False(ok)

	lists := s.Store.AllLists(s.ctx)
	s.Require().Len(lists, 1)
	s.Equal("Chores", lists[0].Title)
	s.Require().Len(lists[0].Todos, 1)
	s.Equal("Dishes", lists[0].Todos[0].Title)
}

func (s *PersistenceContractSuite) TestDeleteList_MissingIsNoOp() {
	s.createList("Groceries")

	s.NoError(s.Store.DeleteList(s.ctx, "999999"))
	s.Len(s.Store.AllLists(s.ctx), 1)
}

func (s *PersistenceContractSuite) TestCreateTodo_AppendsIncomplete() {
	list := s.createList("Groceries")

	found := s.createTodos(list.ID, "Milk", "Eggs")

	s.Require().Len(found.Todos, 2)
	s.Equal("Milk", found.Todos[0].Title)
	s.Equal("Eggs", found.Todos[1].Title)
	s.False(found.Todos[0].Completed)
	s.False(found.Todos[1].Completed)
	s.NotEqual(found.Todos[0].ID, found.Todos[1].ID)
}

func (s *PersistenceContractSuite) TestCreateTodo_MissingListIsNoOp() {
	s.createList("Groceries")

	s.NoError(s.Store.CreateTodo(s.ctx, "Milk", "999999"))

	for _, list := range s.Store.AllLists(s.ctx) {
		s.Empty(list.Todos)
	}
}

func (s *PersistenceContractSuite) TestDeleteTodo() {
	list := s.createList("Groceries")
	found := s.createTodos(list.ID, "Milk", "Eggs")

	s.Require().NoError(s.Store.DeleteTodo(s.ctx, found.Todos[0].ID, list.ID))

	after, ok := s.Store.FindList(s.ctx, list.ID)
	s.Require().True(ok)
	s.Require().Len(after.Todos, 1)
	s.Equal("Eggs", after.Todos[0].Title)
}

func (s *PersistenceContractSuite) TestDeleteTodo_RequiresOwningList() {
	list := s.createList("Groceries")
	other := s.createList("Chores")
	found := s.createTodos(list.ID, "Milk")

	s.NoError(s.Store.DeleteTodo(s.ctx, found.Todos[0].ID, other.ID))
	s.NoError(s.Store.DeleteTodo(s.ctx, "999999", list.ID))

	after, ok := s.Store.FindList(s.ctx, list.ID)
	s.Require().True(ok)
	s.Len(after.Todos, 1)
}

func (s *PersistenceContractSuite) TestUpdateTodoStatus() {
	list := s.createList("Groceries")
	found := s.createTodos(list.ID, "Milk", "Eggs")

	s.Require().NoError(s.Store.UpdateTodoStatus(s.ctx, found.Todos[1].ID, list.ID, true))

	after, _ := s.Store.FindList(s.ctx, list.ID)
	s.False(after.Todos[0].Completed)
	s.True(after.Todos[1].Completed)

	s.Require().NoError(s.Store.UpdateTodoStatus(s.ctx, found.Todos[1].ID, list.ID, false))

	after, _ = s.Store.FindList(s.ctx, list.ID)
	s.False(after.Todos[1].Completed)
}

func (s *PersistenceContractSuite) TestUpdateTodoStatus_NotFoundIsNoOp() {
	list := s.createList("Groceries")
	other := s.createList("Chores")
	found := s.createTodos(list.ID, "Milk")

	s.NoError(s.Store.UpdateTodoStatus(s.ctx, found.Todos[0].ID, other.ID, true))
	s.NoError(s.Store.UpdateTodoStatus(s.ctx, "999999", list.ID, true))

	after, _ := s.Store.FindList(s.ctx, list.ID)
	s.False(after.Todos[0].Completed)
}

func (s *PersistenceContractSuite) TestMarkAllTodosCompleted() {
	list := s.createList("Groceries")
	other := s.createList("Chores")
	found := s.createTodos(list.ID, "Milk", "Eggs", "Bread")
	s.createTodos(other.ID, "Dishes")

	s.Require().NoError(s.Store.UpdateTodoStatus(s.ctx, found.Todos[1].ID, list.ID, true))
	s.Require().NoError(s.Store.MarkAllTodosCompleted(s.ctx, list.ID))

	after, _ := s.Store.FindList(s.ctx, list.ID)
	s.Require().Len(after.Todos, 3)

	for _, todo := range after.Todos {
		s.True(todo.Completed, todo.Title)
	}

	untouched, _ := s.Store.FindList(s.ctx, other.ID)
	s.False(untouched.Todos[0].Completed)
}

func (s *PersistenceContractSuite) TestMarkAllTodosCompleted_EmptyOrMissingIsNoOp() {
	list := s.createList("Groceries")

	s.NoError(s.Store.MarkAllTodosCompleted(s.ctx, list.ID))
	s.NoError(s.Store.MarkAllTodosCompleted(s.ctx, "999999"))

	after, ok := s.Store.FindList(s.ctx, list.ID)
	s.True(ok)
	s.Empty(after.Todos)
	s.False(util.IsListCompleted(after))
}

func (s *PersistenceContractSuite) TestScenario_GroceriesMilk() {
	list := s.createList("Groceries")
	found := s.createTodos(list.ID, "Milk")

	s.Equal("Groceries", found.Title)
	s.Require().Len(found.Todos, 1)
	s.Equal("Milk", found.Todos[0].Title)
	s.False(found.Todos[0].Completed)
	s.False(util.IsListCompleted(found))

	s.Require().NoError(s.Store.UpdateTodoStatus(s.ctx, found.Todos[0].ID, list.ID, true))

	after, _ := s.Store.FindList(s.ctx, list.ID)
	s.True(util.IsListCompleted(after))
}

func (s *PersistenceContractSuite) TestScenario_InvalidTitleCreatesNothing() {
	s.createList("Groceries")
	before := len(s.Store.AllLists(s.ctx))

	err := util.ValidateListTitle("", s.Store.AllLists(s.ctx))
	s.ErrorIs(err, util.ErrTitleLength)

	s.Len(s.Store.AllLists(s.ctx), before)
}

func (s *PersistenceContractSuite) TestScenario_DuplicateTitleFailsValidation() {
	s.createList("Groceries")
	s.createList("Chores")

	s.ErrorIs(util.ValidateListTitle("Groceries", s.Store.AllLists(s.ctx)), util.ErrTitleNotUnique)
}
