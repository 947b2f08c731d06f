package handler

import (
	"net/http"

	"educk/internal/model"
	"educk/internal/service"

	"github.com/rs/zerolog"
)

var validSorts = map[string]bool{
	model.SortNewest:    true,
	model.SortOldest:    true,
	model.SortPriceLow:  true,
	model.SortPriceHigh: true,
	model.SortPopular:   true,
}

// CourseHandler handles catalogue HTTP requests.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("handler", "course").Logger(),
	}
}

// List handles GET /courses with search, sort and pagination.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, err := paging(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	sort := r.URL.Query().Get("sort")
	if sort == "" {
		sort = model.SortNewest
	}
	if !validSorts[sort] {
		writeError(w, model.NewDomainError(model.ErrCodeInvalidSort, "unknown sort "+sort), h.logger)
		return
	}

	filter := model.CourseFilter{
		Search: r.URL.Query().Get("search"),
		Sort:   sort,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	courses, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if courses == nil {
		courses = []model.Course{}
	}

	writeJSON(w, http.StatusOK, model.CoursePage{
		Courses:    courses,
		Pagination: model.NewPagination(total, page, limit),
	})
}

// GetByID handles GET /courses/{id}.
func (h *CourseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	course, err := h.service.GetByID(r.Context(), courseID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, course)
}

// Enrolled handles GET /courses/enrolled/me.
func (h *CourseHandler) Enrolled(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	courses, err := h.service.Enrolled(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if courses == nil {
		courses = []model.Course{}
	}

	writeJSON(w, http.StatusOK, courses)
}
