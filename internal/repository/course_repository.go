package repository

import (
	"context"
	"errors"
	"fmt"

	"educk/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const courseColumns = `c.id, c.title, c.short_description, c.instructor_id, c.price,
		c.discount_price, c.status, c.is_published, c.sales_count, c.created_at`

// courseOrderBy maps catalogue sort keys onto fixed ORDER BY clauses.
var courseOrderBy = map[string]string{
	model.SortNewest:    "c.created_at DESC, c.id",
	model.SortOldest:    "c.created_at ASC, c.id",
	model.SortPriceLow:  "c.price ASC, c.id",
	model.SortPriceHigh: "c.price DESC, c.id",
	model.SortPopular:   "c.sales_count DESC, c.created_at DESC, c.id",
}

// courseRepository implements the CourseRepository interface using PostgreSQL.
type courseRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCourseRepository creates a new PostgreSQL-backed course repository.
func NewCourseRepository(pool *pgxpool.Pool, logger zerolog.Logger) CourseRepository {
	return &courseRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "course").Logger(),
	}
}

// List returns one page of published courses and the total match count.
// Search is a literal case-insensitive substring of title or short description.
func (r *courseRepository) List(ctx context.Context, filter model.CourseFilter) ([]model.Course, int, error) {
	orderBy, ok := courseOrderBy[filter.Sort]
	if !ok {
		orderBy = courseOrderBy[model.SortNewest]
	}

	where := `
		WHERE c.is_published
		  AND ($1::text = ''
		       OR strpos(lower(c.title), lower($1::text)) > 0
		       OR strpos(lower(c.short_description), lower($1::text)) > 0)
	`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses c `+where, filter.Search).Scan(&total); err != nil {
		r.logger.Error().Err(err).Str("search", filter.Search).Msg("failed to count courses")
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	query := `SELECT ` + courseColumns + ` FROM courses c ` + where +
		` ORDER BY ` + orderBy + ` LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to query courses")
		return nil, 0, fmt.Errorf("failed to query courses: %w", err)
	}

	courses, err := collectCourses(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read courses")
		return nil, 0, err
	}

	return courses, total, nil
}

// GetByID retrieves a course by ID, published or not.
func (r *courseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.id = $1`

	c, err := scanCourse(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("course_id", id.String()).Msg("course not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("course_id", id.String()).Msg("failed to query course")
		return nil, fmt.Errorf("failed to query course: %w", err)
	}

	return c, nil
}

// RecordSale adds userID to the course's students and counts the sale once.
func (r *courseRepository) RecordSale(ctx context.Context, tx pgx.Tx, courseID, userID uuid.UUID) (bool, error) {
	insert := `
		INSERT INTO course_students (course_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (course_id, user_id) DO NOTHING
	`

	tag, err := tx.Exec(ctx, insert, courseID, userID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("course_id", courseID.String()).
			Str("user_id", userID.String()).
			Msg("failed to add course student")
		return false, fmt.Errorf("failed to add course student: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().
			Str("course_id", courseID.String()).
			Str("user_id", userID.String()).
			Msg("student already recorded, sale not counted")
		return false, nil
	}

	if _, err := tx.Exec(ctx, `UPDATE courses SET sales_count = sales_count + 1 WHERE id = $1`, courseID); err != nil {
		r.logger.Error().Err(err).Str("course_id", courseID.String()).Msg("failed to increment sales count")
		return false, fmt.Errorf("failed to increment sales count: %w", err)
	}

	return true, nil
}

func scanCourse(row pgx.Row) (*model.Course, error) {
	var c model.Course
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.ShortDescription,
		&c.InstructorID,
		&c.Price,
		&c.DiscountPrice,
		&c.Status,
		&c.IsPublished,
		&c.SalesCount,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCourses(rows pgx.Rows) ([]model.Course, error) {
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}
