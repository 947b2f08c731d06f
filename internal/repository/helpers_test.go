package repository

import (
	"context"
	"testing"
	"time"

	"educk/internal/database"
	"educk/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the application schema
// and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedUser inserts a user and returns its ID.
func seedUser(t *testing.T, pool *pgxpool.Pool, name, role string) uuid.UUID {
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, role) VALUES ($1, $2, $3, $4)`,
		id, name, id.String()+"@educk.test", role)
	require.NoError(t, err)
	return id
}

// courseSeed describes a course inserted by seedCourse.
type courseSeed struct {
	Title         string
	Description   string
	Price         string
	DiscountPrice string
	Published     bool
	SalesCount    int
	CreatedAt     time.Time
}

// seedCourse inserts a course taught by instructorID and returns its ID.
func seedCourse(t *testing.T, pool *pgxpool.Pool, instructorID uuid.UUID, c courseSeed) uuid.UUID {
	if c.DiscountPrice == "" {
		c.DiscountPrice = "0"
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	status := model.CourseStatusDraft
	if c.Published {
		status = model.CourseStatusPublished
	}

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO courses (id, title, short_description, instructor_id, price, discount_price,
			status, is_published, sales_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, c.Title, c.Description, instructorID, money(c.Price), money(c.DiscountPrice),
		status, c.Published, c.SalesCount, c.CreatedAt)
	require.NoError(t, err)
	return id
}

func salesCount(t *testing.T, pool *pgxpool.Pool, courseID uuid.UUID) int {
	var n int
	err := pool.QueryRow(context.Background(), `SELECT sales_count FROM courses WHERE id = $1`, courseID).Scan(&n)
	require.NoError(t, err)
	return n
}

func countRows(t *testing.T, pool *pgxpool.Pool, query string, args ...any) int {
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}
