package repository

import (
	"context"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"todolists/internal/adapter/database"
	"todolists/internal/adapter/database/schema"
	"todolists/internal/core/domain"
	"todolists/internal/core/port"
	"todolists/pkg/tracing"
)

// Persistence stores lists and todos in the relational store. Every mutation
// is a single statement; reads issue one query for the lists and one per list
// for its todos. Deleting a list relies on the ON DELETE CASCADE constraint.
type Persistence struct {
	executor *database.Executor
	logger   *otelzap.Logger
}

// NewPersistence bootstraps the schema and returns the durable provider.
func NewPersistence(ctx context.Context, db *database.DB, executor *database.Executor, logger *otelzap.Logger) (port.Persistence, error) {
	if err := schema.Bootstrap(ctx, db.DB, db.Dialect); err != nil {
		return nil, err
	}

	return &Persistence{executor: executor, logger: logger}, nil
}

func (p *Persistence) builder() sq.StatementBuilderType {
	return p.executor.Builder()
}

func (p *Persistence) AllLists(ctx context.Context) []domain.List {
	ctx, span := tracing.CreateChildSpan(ctx, "db.lists.AllLists", []attribute.KeyValue{
		attribute.String("db.table", "lists"),
	})
	defer span.End()

	rows, err := p.executor.Execute(ctx, p.builder().Select("id", "title").From("lists").OrderBy("id"))

	if err != nil {
		tracing.AddSpanError(span, err)
		return []domain.List{}
	}

	lists := make([]domain.List, 0, len(rows))

	for _, row := range rows {
		list, err := p.decodeList(ctx, row)

		if err != nil {
			tracing.AddSpanError(span, err)
			return []domain.List{}
		}

		lists = append(lists, list)
	}

	span.SetAttributes(attribute.Int("lists.count", len(lists)))

	return lists
}

func (p *Persistence) FindList(ctx context.Context, id string) (domain.List, bool) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.lists.FindList", []attribute.KeyValue{
		attribute.String("db.table", "lists"),
		attribute.String("list.id", id),
	})
	defer span.End()

	listID, ok := parseID(id)

	if !ok {
		return domain.List{}, false
	}

	rows, err := p.executor.Execute(ctx, p.builder().
		Select("id", "title").
		From("lists").
		Where(sq.Eq{"id": listID}))

	if err != nil {
		tracing.AddSpanError(span, err)
		return domain.List{}, false
	}

	if len(rows) == 0 {
		return domain.List{}, false
	}

	list, err := p.decodeList(ctx, rows[0])

	if err != nil {
		tracing.AddSpanError(span, err)
		return domain.List{}, false
	}

	return list, true
}

func (p *Persistence) CreateList(ctx context.Context, title string) error {
	return p.mutate(ctx, "CreateList", p.builder().
		Insert("lists").
		Columns("title").
		Values(title))
}

func (p *Persistence) UpdateList(ctx context.Context, id string, title string) error {
	listID, ok := parseID(id)

	if !ok {
		return nil
	}

	return p.mutate(ctx, "UpdateList", p.builder().
		Update("lists").
		Set("title", title).
		Where(sq.Eq{"id": listID}))
}

func (p *Persistence) DeleteList(ctx context.Context, id string) error {
	listID, ok := parseID(id)

	if !ok {
		return nil
	}

	return p.mutate(ctx, "DeleteList", p.builder().
		Delete("lists").
		Where(sq.Eq{"id": listID}))
}

// CreateTodo inserts through a select on lists so that a missing list inserts
// nothing instead of tripping the foreign key.
func (p *Persistence) CreateTodo(ctx context.Context, title string, listID string) error {
	id, ok := parseID(listID)

	if !ok {
		return nil
	}

	owner := sq.Select().
		Column(sq.Expr("CAST(? AS TEXT)", title)).
		Column("id").
		From("lists").
		Where(sq.Eq{"id": id})

	return p.mutate(ctx, "CreateTodo", p.builder().
		Insert("todos").
		Columns("title", "list_id").
		Select(owner))
}

func (p *Persistence) DeleteTodo(ctx context.Context, todoID string, listID string) error {
	tid, ok := parseID(todoID)
	lid, okList := parseID(listID)

	if !ok || !okList {
		return nil
	}

	return p.mutate(ctx, "DeleteTodo", p.builder().
		Delete("todos").
		Where(sq.Eq{"id": tid, "list_id": lid}))
}

func (p *Persistence) UpdateTodoStatus(ctx context.Context, todoID string, listID string, completed bool) error {
	tid, ok := parseID(todoID)
	lid, okList := parseID(listID)

	if !ok || !okList {
		return nil
	}

	return p.mutate(ctx, "UpdateTodoStatus", p.builder().
		Update("todos").
		Set("completed", completed).
		Where(sq.Eq{"id": tid, "list_id": lid}))
}

func (p *Persistence) MarkAllTodosCompleted(ctx context.Context, listID string) error {
	lid, ok := parseID(listID)

	if !ok {
		return nil
	}

	return p.mutate(ctx, "MarkAllTodosCompleted", p.builder().
		Update("todos").
		Set("completed", true).
		Where(sq.Eq{"list_id": lid}))
}

func (p *Persistence) mutate(ctx context.Context, operation string, stmt sq.Sqlizer) error {
	return tracing.SpanWrapper(ctx, "db.persistence."+operation, nil, func(ctx context.Context) error {
		_, err := p.executor.Execute(ctx, stmt)
		return err
	})
}

func (p *Persistence) decodeList(ctx context.Context, row database.Row) (domain.List, error) {
	var list domain.List

	if err := database.DecodeRow(row, &list); err != nil {
		p.logger.Ctx(ctx).Error("Error decoding list row", zap.Error(err))
		return domain.List{}, err
	}

	todos, err := p.todosFor(ctx, list.ID)

	if err != nil {
		return domain.List{}, err
	}

	list.Todos = todos

	return list, nil
}

func (p *Persistence) todosFor(ctx context.Context, listID string) ([]domain.Todo, error) {
	lid, ok := parseID(listID)

	if !ok {
		return []domain.Todo{}, nil
	}

	rows, err := p.executor.Execute(ctx, p.builder().
		Select("id", "title", "completed").
		From("todos").
		Where(sq.Eq{"list_id": lid}).
		OrderBy("id"))

	if err != nil {
		return nil, err
	}

	todos := make([]domain.Todo, 0, len(rows))

	for _, row := range rows {
		var todo domain.Todo

		if err := database.DecodeRow(row, &todo); err != nil {
			p.logger.Ctx(ctx).Error("Error decoding todo row", zap.Error(err))
			return nil, err
		}

		todos = append(todos, todo)
	}

	return todos, nil
}

// parseID reports false for ids this store could never have issued. Only the
// canonical decimal form is accepted, so "01" and "+1" do not alias "1".
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)

	if err != nil || n <= 0 || strconv.FormatInt(n, 10) != id {
		return 0, false
	}

	return n, true
}
