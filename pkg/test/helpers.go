package test

import (
	"context"
	"fmt"
	"log"
	"testing"

	"github.com/google/uuid"

	"todolists/internal/adapter/database"
	"todolists/internal/adapter/database/schema"
	"todolists/pkg/config"
)

// MemoryDatabaseConfig points at a private shared-cache in-memory SQLite
// database. Every connection of one pool sees the same data, and the
// database lives as long as the pool keeps a connection open.
func MemoryDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Dialect: config.DialectSQLite,
		Path:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
}

// OpenTestDB opens an empty in-memory database without any schema.
func OpenTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(context.Background(), MemoryDatabaseConfig())

	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}

// InitTestDB opens an in-memory database with the schema applied.
func InitTestDB() *database.DB {
	ctx := context.Background()

	db, err := database.Open(ctx, MemoryDatabaseConfig())

	if err != nil {
		log.Fatal(err)
	}

	if err := schema.Bootstrap(ctx, db.DB, config.DialectSQLite); err != nil {
		log.Fatal(err)
	}

	return db
}

// CleanDB empties the lists and todos tables.
func CleanDB(t *testing.T, db *database.DB) {
	t.Helper()

	for _, table := range []string{"todos", "lists"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// FatalRecorder collects the errors an Executor treats as fatal instead of
// exiting the test binary.
type FatalRecorder struct {
	Errors []error
}

func (r *FatalRecorder) Handle(err error) {
	r.Errors = append(r.Errors, err)
}
