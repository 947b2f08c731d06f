package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"educk/internal/middleware"
	"educk/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Page bounds for paginated listings.
const (
	defaultLimit = 10
	maxLimit     = 100
)

var errInvalidPaging = model.NewDomainError(model.ErrCodeInvalidPaging, "page and limit must be positive integers")

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps err to an HTTP status and writes the standard error body.
// Errors that are not domain errors are logged and reported as 500 without
// their details.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("handler error")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: "internal server error",
		})
		return
	}

	status := statusFor(domainErr.Code)
	logger.Debug().Str("code", domainErr.Code).Int("status", status).Msg("request rejected")
	writeJSON(w, status, model.ErrorResponse{Error: domainErr.Code, Message: domainErr.Message})
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeUserNotFound, model.ErrCodeCourseNotFound, model.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// decodeJSON reads the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}

// pathUUID parses the named path value as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, model.NewDomainError(model.ErrCodeInvalidID, "invalid "+name)
	}
	return id, nil
}

// principal returns the authenticated caller.
func principal(r *http.Request) (model.Principal, error) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		return model.Principal{}, model.ErrUnauthorised
	}
	return p, nil
}

// paging reads 1-based page and limit query parameters.
func paging(r *http.Request) (page, limit int, err error) {
	page, limit = 1, defaultLimit

	if s := r.URL.Query().Get("page"); s != "" {
		page, err = strconv.Atoi(s)
		if err != nil || page < 1 {
			return 0, 0, errInvalidPaging
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil || limit < 1 {
			return 0, 0, errInvalidPaging
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, nil
}
