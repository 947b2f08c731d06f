package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"educk/internal/config"
	"educk/internal/database"
	"educk/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB starts a PostgreSQL container and opens a migrated pool on it.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
		RunMigrations:   true,
	}

	pool, err := database.NewPool(ctx, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
	}
}

// SeedUser inserts a user with the given role.
func SeedUser(t *testing.T, pool *pgxpool.Pool, name, role string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO users (id, name, email, role) VALUES ($1, $2, $3, $4)",
		id, name, id.String()+"@educk.test", role,
	)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}
	return id
}

// SeedCourse inserts a course taught by instructorID.
func SeedCourse(t *testing.T, pool *pgxpool.Pool, instructorID uuid.UUID, title, price, discount string, published bool) uuid.UUID {
	t.Helper()

	status := model.CourseStatusDraft
	if published {
		status = model.CourseStatusPublished
	}

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO courses (id, title, short_description, instructor_id, price, discount_price, status, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, title, title+" in depth", instructorID,
		decimal.RequireFromString(price), decimal.RequireFromString(discount),
		status, published,
	)
	if err != nil {
		t.Fatalf("failed to seed course %s: %v", title, err)
	}
	return id
}

// SalesCount reads a course's sales counter.
func SalesCount(t *testing.T, pool *pgxpool.Pool, courseID uuid.UUID) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), "SELECT sales_count FROM courses WHERE id = $1", courseID).Scan(&n); err != nil {
		t.Fatalf("failed to read sales count: %v", err)
	}
	return n
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "cart_items", "enrollments", "course_students", "courses", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
