package service

import (
	"context"
	"fmt"

	"educk/internal/model"
	"educk/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Catalogue page size bounds.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// courseService implements CourseService.
type courseService struct {
	courses repository.CourseRepository
	users   repository.UserRepository
	logger  zerolog.Logger
}

// NewCourseService creates a new course service.
func NewCourseService(courses repository.CourseRepository, users repository.UserRepository, logger zerolog.Logger) CourseService {
	return &courseService{
		courses: courses,
		users:   users,
		logger:  logger.With().Str("service", "course").Logger(),
	}
}

// List returns one page of published courses.
func (s *courseService) List(ctx context.Context, filter model.CourseFilter) ([]model.Course, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	courses, total, err := s.courses.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list courses")
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	s.logger.Debug().
		Int("count", len(courses)).
		Int("total", total).
		Msg("courses retrieved")

	return courses, total, nil
}

// GetByID retrieves a published course.
func (s *courseService) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", id.String()).Msg("failed to get course")
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil || !course.IsPublished {
		return nil, model.ErrCourseNotFound
	}
	return course, nil
}

// Enrolled lists the courses the user owns.
func (s *courseService) Enrolled(ctx context.Context, userID uuid.UUID) ([]model.Course, error) {
	courses, err := s.users.EnrolledCourses(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list enrolled courses")
		return nil, fmt.Errorf("failed to list enrolled courses: %w", err)
	}
	return courses, nil
}
