package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testPool: shared connection pool для всех тестов пакета; nil без Docker.
var testPool *pgxpool.Pool

// TestMain поднимает PostgreSQL testcontainer, если ARENA_TEST_POSTGRES=1.
func TestMain(m *testing.M) {
	if os.Getenv("ARENA_TEST_POSTGRES") != "1" {
		os.Exit(m.Run())
	}
	os.Exit(runWithPostgres(m))
}

func runWithPostgres(m *testing.M) int {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Fatalf("starting postgres container: %v", err)
	}
	defer func() {
		_ = container.Terminate(ctx)
	}()

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("getting container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		log.Fatalf("getting container port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connecting to test db: %v", err)
	}
	defer testPool.Close()

	if err := migrate(ctx, testPool); err != nil {
		log.Fatalf("running migrations: %v", err)
	}

	return m.Run()
}

// setupTestDB возвращает shared pool и очищает таблицы.
// Пропускает тест, если PostgreSQL не поднят.
func setupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()
	if testPool == nil {
		tb.Skip("set ARENA_TEST_POSTGRES=1 to run PostgreSQL tests")
	}

	if _, err := testPool.Exec(context.Background(), "TRUNCATE characters CASCADE"); err != nil {
		tb.Logf("cleanup warning: %v", err) // non-fatal
	}
	return testPool
}
