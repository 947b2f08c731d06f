package service

import (
	"context"
	"errors"
	"testing"

	"educk/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseService_List_ClampsPaging(t *testing.T) {
	tests := []struct {
		name   string
		in     model.CourseFilter
		expect model.CourseFilter
	}{
		{
			name:   "defaults limit",
			in:     model.CourseFilter{Sort: model.SortNewest},
			expect: model.CourseFilter{Sort: model.SortNewest, Limit: DefaultPageSize},
		},
		{
			name:   "caps limit",
			in:     model.CourseFilter{Limit: 500, Offset: 10},
			expect: model.CourseFilter{Limit: MaxPageSize, Offset: 10},
		},
		{
			name:   "negative offset",
			in:     model.CourseFilter{Search: "go", Limit: 5, Offset: -3},
			expect: model.CourseFilter{Search: "go", Limit: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			courses := new(MockCourseRepository)
			svc := NewCourseService(courses, new(MockUserRepository), zerolog.Nop())

			page := []model.Course{{ID: uuid.New(), Title: "Go Fundamentals", IsPublished: true}}
			courses.On("List", ctx, tt.expect).Return(page, 1, nil)

			got, total, err := svc.List(ctx, tt.in)

			require.NoError(t, err)
			assert.Equal(t, 1, total)
			assert.Equal(t, page, got)
			courses.AssertExpectations(t)
		})
	}
}

func TestCourseService_List_Error(t *testing.T) {
	ctx := context.Background()
	courses := new(MockCourseRepository)
	svc := NewCourseService(courses, new(MockUserRepository), zerolog.Nop())

	courses.On("List", ctx, model.CourseFilter{Limit: DefaultPageSize}).Return(nil, 0, errors.New("boom"))

	_, _, err := svc.List(ctx, model.CourseFilter{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list courses")
}

func TestCourseService_GetByID(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		course    *model.Course
		repoErr   error
		expectErr error
		errMatch  string
	}{
		{name: "published", course: &model.Course{ID: id, IsPublished: true}},
		{name: "missing", expectErr: model.ErrCourseNotFound},
		{name: "unpublished", course: &model.Course{ID: id, Status: model.CourseStatusPending}, expectErr: model.ErrCourseNotFound},
		{name: "storage error", repoErr: errors.New("timeout"), errMatch: "failed to get course"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			courses := new(MockCourseRepository)
			svc := NewCourseService(courses, new(MockUserRepository), zerolog.Nop())

			if tt.course != nil {
				courses.On("GetByID", ctx, id).Return(tt.course, tt.repoErr)
			} else {
				courses.On("GetByID", ctx, id).Return(nil, tt.repoErr)
			}

			got, err := svc.GetByID(ctx, id)

			switch {
			case tt.expectErr != nil:
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, got)
			case tt.errMatch != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMatch)
			default:
				require.NoError(t, err)
				assert.Equal(t, id, got.ID)
			}
		})
	}
}

func TestCourseService_Enrolled(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	svc := NewCourseService(new(MockCourseRepository), users, zerolog.Nop())
	userID := uuid.New()

	owned := []model.Course{{ID: uuid.New(), Title: "SQL Deep Dive"}}
	users.On("EnrolledCourses", ctx, userID).Return(owned, nil)

	got, err := svc.Enrolled(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, owned, got)
	users.AssertExpectations(t)
}
