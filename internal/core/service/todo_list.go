package service

import (
	"context"
	"errors"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"todolists/internal/core/domain"
	"todolists/internal/core/port"
	"todolists/internal/core/util"
)

var (
	ErrListNotFound = errors.New("the specified list was not found")
	ErrTodoNotFound = errors.New("the specified todo was not found")
)

// TodoListService validates input before handing it to the persistence
// backend. Both backends are driven identically from here.
type TodoListService struct {
	storage port.Persistence
	logger  *otelzap.Logger
}

var _ port.TodoListService = (*TodoListService)(nil)

func NewTodoListService(storage port.Persistence, logger *otelzap.Logger) *TodoListService {
	return &TodoListService{storage: storage, logger: logger}
}

// Lists returns every list, pending lists first.
func (s *TodoListService) Lists(ctx context.Context) []domain.List {
	return util.SortLists(s.storage.AllLists(ctx))
}

// List returns one list with its todos ordered pending first.
func (s *TodoListService) List(ctx context.Context, id string) (domain.List, error) {
	list, ok := s.storage.FindList(ctx, id)

	if !ok {
		return domain.List{}, ErrListNotFound
	}

	list.Todos = util.SortTodos(list.Todos)

	return list, nil
}

func (s *TodoListService) CreateList(ctx context.Context, title string) error {
	title = util.TrimTitle(title)

	if err := util.ValidateListTitle(title, s.storage.AllLists(ctx)); err != nil {
		return err
	}

	if err := s.storage.CreateList(ctx, title); err != nil {
		return err
	}

	s.logger.Ctx(ctx).Info("The list has been created.", zap.String("title", title))

	return nil
}

// RenameList validates against every list, the renamed one included, so
// keeping the current title is rejected as not unique.
func (s *TodoListService) RenameList(ctx context.Context, id string, title string) error {
	if _, ok := s.storage.FindList(ctx, id); !ok {
		return ErrListNotFound
	}

	title = util.TrimTitle(title)

	if err := util.ValidateListTitle(title, s.storage.AllLists(ctx)); err != nil {
		return err
	}

	if err := s.storage.UpdateList(ctx, id, title); err != nil {
		return err
	}

	s.logger.Ctx(ctx).Info("The list title has been updated.", zap.String("list_id", id))

	return nil
}

// DeleteList returns the title of the removed list.
func (s *TodoListService) DeleteList(ctx context.Context, id string) (string, error) {
	list, ok := s.storage.FindList(ctx, id)

	if !ok {
		return "", ErrListNotFound
	}

	if err := s.storage.DeleteList(ctx, id); err != nil {
		return "", err
	}

	s.logger.Ctx(ctx).Info("The list has been deleted.", zap.String("list_id", id))

	return list.Title, nil
}

func (s *TodoListService) CreateTodo(ctx context.Context, listID string, title string) error {
	if _, ok := s.storage.FindList(ctx, listID); !ok {
		return ErrListNotFound
	}

	title = util.TrimTitle(title)

	if err := util.ValidateTodoTitle(title); err != nil {
		return err
	}

	if err := s.storage.CreateTodo(ctx, title, listID); err != nil {
		return err
	}

	s.logger.Ctx(ctx).Info("The todo has been created.", zap.String("list_id", listID))

	return nil
}

func (s *TodoListService) ToggleTodo(ctx context.Context, listID string, todoID string, completed bool) error {
	if _, err := s.findTodo(ctx, listID, todoID); err != nil {
		return err
	}

	if err := s.storage.UpdateTodoStatus(ctx, todoID, listID, completed); err != nil {
		return err
	}

	s.logger.Ctx(ctx).Info("The todo has been updated.",
		zap.String("list_id", listID),
		zap.String("todo_id", todoID),
		zap.Bool("completed", completed))

	return nil
}

func (s *TodoListService) DeleteTodo(ctx context.Context, listID string, todoID string) error {
	if _, err := s.findTodo(ctx, listID, todoID); err != nil {
		return err
	}

	if err := s.storage.DeleteTodo(ctx, todoID, listID); err != nil {
		return err
	}

	s.logger.Ctx(ctx).Info("The todo has been deleted.", zap.String("list_id", listID), zap.String("todo_id", todoID))

	return nil
}

func (s *TodoListService) CompleteAll(ctx context.Context, listID string) error {
	if _, ok := s.storage.FindList(ctx, listID); !ok {
		return ErrListNotFound
	}

	if err := s.storage.MarkAllTodosCompleted(ctx, listID); err != nil {
		return err
	}

	s.logger.Ctx(ctx).Info("The todos have been updated.", zap.String("list_id", listID))

	return nil
}

// Summary reports the counters shown beside a list.
func (s *TodoListService) Summary(list domain.List) domain.ListSummary {
	return domain.ListSummary{
		Remaining: util.TodosRemaining(list),
		Total:     list.TodoCount(),
		Completed: util.IsListCompleted(list),
	}
}

func (s *TodoListService) findTodo(ctx context.Context, listID string, todoID string) (domain.Todo, error) {
	list, ok := s.storage.FindList(ctx, listID)

	if !ok {
		return domain.Todo{}, ErrListNotFound
	}

	todo, ok := list.FindTodo(todoID)

	if !ok {
		return domain.Todo{}, ErrTodoNotFound
	}

	return *todo, nil
}
