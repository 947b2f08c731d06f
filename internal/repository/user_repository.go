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

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, name, email, role, created_at
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", id.String()).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// IsEnrolled reports whether the user already owns the course.
func (r *userRepository) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2
		)
	`

	var enrolled bool
	if err := r.pool.QueryRow(ctx, query, userID, courseID).Scan(&enrolled); err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("course_id", courseID.String()).
			Msg("failed to check enrollment")
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}

	return enrolled, nil
}

// Enroll appends courseID to the user's enrolled courses within tx.
func (r *userRepository) Enroll(ctx context.Context, tx pgx.Tx, userID, courseID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO enrollments (user_id, course_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, course_id) DO NOTHING
	`

	tag, err := tx.Exec(ctx, query, userID, courseID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("course_id", courseID.String()).
			Msg("failed to enroll user")
		return false, fmt.Errorf("failed to enroll user: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// EnrolledCourses lists the user's courses, most recent enrollment first.
func (r *userRepository) EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]model.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY e.enrolled_at DESC, c.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query enrolled courses")
		return nil, fmt.Errorf("failed to query enrolled courses: %w", err)
	}

	courses, err := collectCourses(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to read enrolled courses")
		return nil, err
	}

	return courses, nil
}
