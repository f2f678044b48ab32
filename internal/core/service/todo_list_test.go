package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"todolists/internal/adapter/database"
	"todolists/internal/adapter/database/memory"
	"todolists/internal/adapter/database/repository"
	"todolists/internal/adapter/session"
	"todolists/internal/core/domain"
	"todolists/internal/core/port"
	"todolists/internal/core/service"
	"todolists/internal/core/util"
	"todolists/pkg/config"
	"todolists/pkg/test"
)

type TodoListServiceTestSuite struct {
	suite.Suite
	NewStorage func(t *testing.T) port.Persistence
	Service    *service.TodoListService
	ctx        context.Context
}

func (s *TodoListServiceTestSuite) SetupTest() {
	RegisterTestingT(s.T())
	s.ctx = context.Background()
	s.Service = service.NewTodoListService(s.NewStorage(s.T()), config.NewNopLogger())
}

func durableStorage(t *testing.T) port.Persistence {
	db := test.InitTestDB()
	t.Cleanup(func() { db.Close() })

	fatal := &test.FatalRecorder{}
	executor := database.NewExecutor(db, config.NewNopLogger(), database.WithFatalHandler(fatal.Handle))

	storage, err := repository.NewPersistence(context.Background(), db, executor, config.NewNopLogger())

	if err != nil {
		t.Fatalf("durable storage: %v", err)
	}

	return storage
}

func ephemeralStorage(t *testing.T) port.Persistence {
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(func() { store.Close() })

	storage, err := memory.NewPersistence(context.Background(), store.Session("visitor"), config.NewNopLogger())

	if err != nil {
		t.Fatalf("ephemeral storage: %v", err)
	}

	return storage
}

func TestTodoListService_Durable(t *testing.T) {
	suite.Run(t, &TodoListServiceTestSuite{NewStorage: durableStorage})
}

func TestTodoListService_Ephemeral(t *testing.T) {
	suite.Run(t, &TodoListServiceTestSuite{NewStorage: ephemeralStorage})
}

func (s *TodoListServiceTestSuite) listID(title string) string {
	for _, list := range s.Service.Lists(s.ctx) {
		if list.Title == title {
			return list.ID
		}
	}

	s.FailNow("list not found", title)
	return ""
}

func (s *TodoListServiceTestSuite) TestLists_Empty() {
	Expect(s.Service.Lists(s.ctx)).To(BeEmpty())
}

func (s *TodoListServiceTestSuite) TestCreateList_TrimsTitle() {
	Expect(s.Service.CreateList(s.ctx, "  Groceries  ")).To(Succeed())

	lists := s.Service.Lists(s.ctx)
	Expect(lists).To(HaveLen(1))
	Expect(lists[0].Title).To(Equal("Groceries"))
}

func (s *TodoListServiceTestSuite) TestCreateList_RejectsInvalidTitles() {
	Expect(s.Service.CreateList(s.ctx, "Groceries")).To(Succeed())

	Expect(s.Service.CreateList(s.ctx, "   ")).To(MatchError(util.ErrTitleLength))
	Expect(s.Service.CreateList(s.ctx, strings.Repeat("a", 101))).To(MatchError(util.ErrTitleLength))
	Expect(s.Service.CreateList(s.ctx, "Groceries")).To(MatchError(util.ErrTitleNotUnique))
	Expect(s.Service.Lists(s.ctx)).To(HaveLen(1))
}

func (s *TodoListServiceTestSuite) TestCreateList_UniquenessIsCaseSensitive() {
	Expect(s.Service.CreateList(s.ctx, "Groceries")).To(Succeed())
	Expect(s.Service.CreateList(s.ctx, "groceries")).To(Succeed())

	Expect(s.Service.Lists(s.ctx)).To(HaveLen(2))
}

func (s *TodoListServiceTestSuite) TestLists_CompletedListsLast() {
	Expect(s.Service.CreateList(s.ctx, "beta")).To(Succeed())
	Expect(s.Service.CreateList(s.ctx, "Alpha")).To(Succeed())
	Expect(s.Service.CreateList(s.ctx, "Gamma")).To(Succeed())

	alpha := s.listID("Alpha")
	Expect(s.Service.CreateTodo(s.ctx, alpha, "one")).To(Succeed())
	Expect(s.Service.CompleteAll(s.ctx, alpha)).To(Succeed())

	var titles []string
	for _, list := range s.Service.Lists(s.ctx) {
		titles = append(titles, list.Title)
	}

	Expect(titles).To(Equal([]string{"beta", "Gamma", "Alpha"}))
}

func (s *TodoListServiceTestSuite) TestList_NotFound() {
	_, err := s.Service.List(s.ctx, "missing")

	Expect(err).To(MatchError(service.ErrListNotFound))
}

func (s *TodoListServiceTestSuite) TestList_SortsTodos() {
	Expect(s.Service.CreateList(s.ctx, "Groceries")).To(Succeed())
	id := s.listID("Groceries")

	for _, title := range []string{"milk", "Bread", "apples"} {
		Expect(s.Service.CreateTodo(s.ctx, id, title)).To(Succeed())
	}

	list, err := s.Service.List(s.ctx, id)
	Expect(err).NotTo(HaveOccurred())

	Expect(s.Service.ToggleTodo(s.ctx, id, list.Todos[0].ID, true)).To(Succeed())

	list, err = s.Service.List(s.ctx, id)
	Expect(err).NotTo(HaveOccurred())
	Expect(list.Todos).To(HaveLen(3))
	Expect(list.Todos[0].Title).To(Equal("Bread"))
	Expect(list.Todos[1].Title).To(Equal("milk"))
	Expect(list.Todos[2].Title).To(Equal("apples"))
	Expect(list.Todos[2].Completed).To(BeTrue())
}

func (s *TodoListServiceTestSuite) TestRenameList() {
	Expect(s.Service.CreateList(s.ctx, "Groceries")).To(Succeed())
	Expect(s.Service.CreateList(s.ctx, "Chores")).To(Succeed())
	id := s.listID("Groceries")

	Expect(s.Service.RenameList(s.ctx, "missing", "Other")).To(MatchError(service.ErrListNotFound))
	Expect(s.Service.RenameList(s.ctx, id, "Chores")).To(MatchError(util.ErrTitleNotUnique))
	Expect(s.Service.RenameList(s.ctx, id, "Groceries")).To(MatchError(util.ErrTitleNotUnique))
	Expect(s.Service.RenameList(s.ctx, id, "")).To(MatchError(util.ErrTitleLength))
	Expect(s.Service.RenameList(s.ctx, id, " Shopping ")).To(Succeed())

	list, err := s.Service.List(s.ctx, id)
	Expect(err).NotTo(HaveOccurred())
	Expect(list.Title).To(Equal("Shopping"))
}

func (s *TodoListServiceTestSuite) TestDeleteList_ReturnsTitle() {
	Expect(s.Service.CreateList(s.ctx, "Groceries")).To(Succeed())
	id := s.listID("Groceries")

	title, err := s.Service.DeleteList(s.ctx, id)
	Expect(err).NotTo(HaveOccurred())
	Expect(title).To(Equal("Groceries"))

	_, err = s.Service.DeleteList(s.ctx, id)
	Expect(err).To(MatchError(service.ErrListNotFound))
}

func (s *TodoListServiceTestSuite) TestCreateTodo() {
	Expect(s.Service.CreateTodo(s.ctx, "missing", "Milk")).To(MatchError(service.ErrListNotFound))

	Expect(s.Service.CreateList(s.ctx, "Groceries")).To(Succeed())
	id := s.listID("Groceries")

	Expect(s.Service.CreateTodo(s.ctx, id, "")).To(MatchError(util.ErrTitleLength))
	Expect(s.Service.CreateTodo(s.ctx, id, " Milk ")).To(Succeed())
	Expect(s.Service.CreateTodo(s.ctx, id, "Milk")).To(Succeed())

	list, _ := s.Service.List(s.ctx, id)
	Expect(list.Todos).To(HaveLen(2))
	Expect(list.Todos[0].Title).To(Equal("Milk"))
}

func (s *TodoListServiceTestSuite) TestToggleAndDeleteTodo_NotFound() {
	Expect(s.Service.CreateList(s.ctx, "Groceries")).To(Succeed())
	id := s.listID("Groceries")

	Expect(s.Service.ToggleTodo(s.ctx, "missing", "1", true)).To(MatchError(service.ErrListNotFound))
	Expect(s.Service.ToggleTodo(s.ctx, id, "missing", true)).To(MatchError(service.ErrTodoNotFound))
	Expect(s.Service.DeleteTodo(s.ctx, "missing", "1")).To(MatchError(service.ErrListNotFound))
	Expect(s.Service.DeleteTodo(s.ctx, id, "missing")).To(MatchError(service.ErrTodoNotFound))
}

func (s *TodoListServiceTestSuite) TestDeleteTodo() {
	Expect(s.Service.CreateList(s.ctx, "Groceries")).To(Succeed())
	id := s.listID("Groceries")
	Expect(s.Service.CreateTodo(s.ctx, id, "Milk")).To(Succeed())

	list, _ := s.Service.List(s.ctx, id)
	Expect(s.Service.DeleteTodo(s.ctx, id, list.Todos[0].ID)).To(Succeed())

	list, _ = s.Service.List(s.ctx, id)
	Expect(list.Todos).To(BeEmpty())
}

func (s *TodoListServiceTestSuite) TestCompleteAllAndSummary() {
	Expect(s.Service.CompleteAll(s.ctx, "missing")).To(MatchError(service.ErrListNotFound))

	Expect(s.Service.CreateList(s.ctx, "Groceries")).To(Succeed())
	id := s.listID("Groceries")

	list, _ := s.Service.List(s.ctx, id)
	Expect(s.Service.Summary(list)).To(Equal(domain.ListSummary{Remaining: 0, Total: 0, Completed: false}))

	Expect(s.Service.CreateTodo(s.ctx, id, "Milk")).To(Succeed())
	Expect(s.Service.CreateTodo(s.ctx, id, "Eggs")).To(Succeed())

	list, _ = s.Service.List(s.ctx, id)
	Expect(s.Service.Summary(list)).To(Equal(domain.ListSummary{Remaining: 2, Total: 2, Completed: false}))

	Expect(s.Service.CompleteAll(s.ctx, id)).To(Succeed())

	list, _ = s.Service.List(s.ctx, id)
	Expect(s.Service.Summary(list)).To(Equal(domain.ListSummary{Remaining: 0, Total: 2, Completed: true}))
}
