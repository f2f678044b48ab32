package database

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"todolists/pkg/tracing"
)

// Row maps column names to the values the driver returned.
type Row map[string]any

// FatalHandler runs after a connection failure has been logged.
type FatalHandler func(err error)

type Executor struct {
	db      *DB
	logger  *otelzap.Logger
	metrics *Metrics
	onFatal FatalHandler
}

type ExecutorOption func(*Executor)

func WithMetrics(metrics *Metrics) ExecutorOption {
	return func(e *Executor) {
		e.metrics = metrics
	}
}

// WithFatalHandler replaces the default handler, which exits the process.
func WithFatalHandler(handler FatalHandler) ExecutorOption {
	return func(e *Executor) {
		e.onFatal = handler
	}
}

func NewExecutor(db *DB, logger *otelzap.Logger, opts ...ExecutorOption) *Executor {
	e := &Executor{db: db, logger: logger}

	e.onFatal = func(err error) {
		e.logger.Fatal("Database unavailable, exiting", zap.Error(err))
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Executor) Builder() sq.StatementBuilderType {
	return e.db.QueryBuilder
}

// Execute runs one statement on a connection acquired for this call alone and
// released before returning. Select statements return their rows; every other
// statement returns nil rows. Values reach the driver only as bound
// parameters.
func (e *Executor) Execute(ctx context.Context, stmt sq.Sqlizer) ([]Row, error) {
	operation := operationOf(stmt)

	ctx, span := tracing.CreateChildSpan(ctx, "db."+operation, []attribute.KeyValue{
		attribute.String("db.system", e.db.Dialect),
		attribute.String("db.operation", operation),
	})
	defer span.End()

	query, args, err := stmt.ToSql()

	if err != nil {
		err = classify(err)
		tracing.AddSpanError(span, err)
		e.logger.Ctx(ctx).Error("Error building statement", zap.String("operation", operation), zap.Error(err))
		return nil, err
	}

	span.SetAttributes(attribute.String("db.statement", query))

	start := time.Now()
	rows, err := e.run(ctx, operation, query, args)
	duration := time.Since(start)

	if err != nil {
		err = classify(err)
		tracing.AddSpanError(span, err)

		if IsConnectionError(err) {
			e.metrics.Observe(operation, "connection_error", duration)
			e.logger.Ctx(ctx).Error("Database connection failure", zap.String("operation", operation), zap.Error(err))
			e.onFatal(err)

			return nil, err
		}

		e.metrics.Observe(operation, "statement_error", duration)
		e.logger.Ctx(ctx).Error("Statement failed",
			zap.String("operation", operation),
			zap.String("query", query),
			zap.Bool("constraint_violation", IsConstraintViolation(err)),
			zap.Error(err))

		return nil, err
	}

	e.metrics.Observe(operation, "ok", duration)
	span.SetAttributes(attribute.Int("db.rows_returned", len(rows)))

	return rows, nil
}

func (e *Executor) run(ctx context.Context, operation string, query string, args []any) ([]Row, error) {
	conn, err := e.db.Conn(ctx)

	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	defer conn.Close()

	if operation != "select" {
		_, err := conn.ExecContext(ctx, query, args...)
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return ScanRows(rows)
}

func operationOf(stmt sq.Sqlizer) string {
	switch stmt.(type) {
	case sq.SelectBuilder:
		return "select"
	case sq.InsertBuilder:
		return "insert"
	case sq.UpdateBuilder:
		return "update"
	case sq.DeleteBuilder:
		return "delete"
	default:
		return "statement"
	}
}
