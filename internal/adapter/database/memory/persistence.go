package memory

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"todolists/internal/core/domain"
	"todolists/internal/core/port"
	"todolists/pkg/tracing"
)

// ListsKey is the session key holding the encoded list collection.
const ListsKey = "lists"

// Persistence keeps every list of one visitor inside their session. Each
// operation loads the whole collection, changes it in place and writes it
// back. Titles are not validated here.
type Persistence struct {
	session port.Session
	logger  *otelzap.Logger
}

// NewPersistence binds the provider to a session, seeding an empty collection
// when the session has none yet.
func NewPersistence(ctx context.Context, session port.Session, logger *otelzap.Logger) (port.Persistence, error) {
	p := &Persistence{session: session, logger: logger}

	_, err := session.Get(ctx, ListsKey)

	if errors.Is(err, port.ErrSessionKeyNotFound) {
		if err := p.store(ctx, []domain.List{}); err != nil {
			return nil, err
		}

		return p, nil
	}

	if err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Persistence) AllLists(ctx context.Context) []domain.List {
	lists, err := p.load(ctx)

	if err != nil {
		return []domain.List{}
	}

	return lists
}

func (p *Persistence) FindList(ctx context.Context, id string) (domain.List, bool) {
	lists, err := p.load(ctx)

	if err != nil {
		return domain.List{}, false
	}

	if i := indexOf(lists, id); i >= 0 {
		return lists[i], true
	}

	return domain.List{}, false
}

func (p *Persistence) CreateList(ctx context.Context, title string) error {
	return p.mutate(ctx, "CreateList", func(lists []domain.List) []domain.List {
		return append(lists, domain.NewList(uuid.NewString(), title))
	})
}

func (p *Persistence) UpdateList(ctx context.Context, id string, title string) error {
	return p.mutate(ctx, "UpdateList", func(lists []domain.List) []domain.List {
		if i := indexOf(lists, id); i >= 0 {
			lists[i].Title = title
		}

		return lists
	})
}

func (p *Persistence) DeleteList(ctx context.Context, id string) error {
	return p.mutate(ctx, "DeleteList", func(lists []domain.List) []domain.List {
		if i := indexOf(lists, id); i >= 0 {
			return append(lists[:i], lists[i+1:]...)
		}

		return lists
	})
}

func (p *Persistence) CreateTodo(ctx context.Context, title string, listID string) error {
	return p.mutate(ctx, "CreateTodo", func(lists []domain.List) []domain.List {
		if i := indexOf(lists, listID); i >= 0 {
			lists[i].Todos = append(lists[i].Todos, domain.NewTodo(uuid.NewString(), title))
		}

		return lists
	})
}

func (p *Persistence) DeleteTodo(ctx context.Context, todoID string, listID string) error {
	return p.mutate(ctx, "DeleteTodo", func(lists []domain.List) []domain.List {
		if i := indexOf(lists, listID); i >= 0 {
			lists[i].RemoveTodo(todoID)
		}

		return lists
	})
}

func (p *Persistence) UpdateTodoStatus(ctx context.Context, todoID string, listID string, completed bool) error {
	return p.mutate(ctx, "UpdateTodoStatus", func(lists []domain.List) []domain.List {
		if i := indexOf(lists, listID); i >= 0 {
			if todo, ok := lists[i].FindTodo(todoID); ok {
				todo.Completed = completed
			}
		}

		return lists
	})
}

func (p *Persistence) MarkAllTodosCompleted(ctx context.Context, listID string) error {
	return p.mutate(ctx, "MarkAllTodosCompleted", func(lists []domain.List) []domain.List {
		if i := indexOf(lists, listID); i >= 0 {
			for j := range lists[i].Todos {
				lists[i].Todos[j].MarkCompleted()
			}
		}

		return lists
	})
}

func (p *Persistence) mutate(ctx context.Context, operation string, change func([]domain.List) []domain.List) error {
	attrs := []attribute.KeyValue{attribute.String("session.key", ListsKey)}

	return tracing.SpanWrapper(ctx, "session.persistence."+operation, attrs, func(ctx context.Context) error {
		lists, err := p.load(ctx)

		if err != nil {
			return err
		}

		return p.store(ctx, change(lists))
	})
}

func (p *Persistence) load(ctx context.Context) ([]domain.List, error) {
	raw, err := p.session.Get(ctx, ListsKey)

	if errors.Is(err, port.ErrSessionKeyNotFound) {
		return []domain.List{}, nil
	}

	if err != nil {
		p.logger.Ctx(ctx).Error("Error reading lists from session", zap.Error(err))
		return nil, err
	}

	var lists []domain.List

	if err := json.Unmarshal(raw, &lists); err != nil {
		p.logger.Ctx(ctx).Error("Error decoding lists from session", zap.Error(err))
		return nil, err
	}

	if lists == nil {
		lists = []domain.List{}
	}

	for i := range lists {
		if lists[i].Todos == nil {
			lists[i].Todos = []domain.Todo{}
		}
	}

	return lists, nil
}

func (p *Persistence) store(ctx context.Context, lists []domain.List) error {
	raw, err := json.Marshal(lists)

	if err != nil {
		p.logger.Ctx(ctx).Error("Error encoding lists for session", zap.Error(err))
		return err
	}

	if err := p.session.Set(ctx, ListsKey, raw); err != nil {
		p.logger.Ctx(ctx).Error("Error writing lists to session", zap.Error(err))
		return err
	}

	return nil
}

func indexOf(lists []domain.List, id string) int {
	for i := range lists {
		if lists[i].ID == id {
			return i
		}
	}

	return -1
}
