package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/academy-cache/pkg/cache"
	"github.com/Sternrassler/academy-cache/pkg/interceptor"
)

// HeaderUserID identifies the caller. Authentication happens upstream.
const HeaderUserID = "X-User-Id"

// StatsNamespace is the store namespace for memoized course stats.
const StatsNamespace = "course-stats"

// Handlers exposes the catalog over HTTP.
type Handlers struct {
	catalog  *Catalog
	store    *cache.Store
	statsTTL time.Duration
	logger   zerolog.Logger
}

// NewHandlers creates the catalog handlers. A nil store disables
// memoization. statsTTL <= 0 uses the store default.
func NewHandlers(c *Catalog, store *cache.Store, statsTTL time.Duration, logger zerolog.Logger) *Handlers {
	if store == nil {
		store = cache.Disabled()
	}
	return &Handlers{
		catalog:  c,
		store:    store,
		statsTTL: statsTTL,
		logger:   logger.With().Str("component", "catalog").Logger(),
	}
}

// ListCourses handles GET /api/courses.
func (h *Handlers) ListCourses(r *http.Request) (interceptor.Result, error) {
	return interceptor.OK(h.catalog.Courses()), nil
}

// GetCourse handles GET /api/courses/{courseID}.
func (h *Handlers) GetCourse(r *http.Request) (interceptor.Result, error) {
	course, err := h.catalog.Course(chi.URLParam(r, "courseID"))
	if err != nil {
		return interceptor.Result{}, toHTTPError(err)
	}
	return interceptor.OK(course), nil
}

// CourseStats handles GET /api/courses/{courseID}/stats. Aggregates are
// memoized in the secondary store.
func (h *Handlers) CourseStats(r *http.Request) (interceptor.Result, error) {
	courseID := chi.URLParam(r, "courseID")
	key := StatsKey(courseID)

	stats, err := cache.Memoize(r.Context(), h.store, key, h.statsTTL, func(ctx context.Context) (CourseStats, error) {
		h.logger.Debug().Str("course_id", courseID).Msg("Computing course stats")
		return h.catalog.Stats(courseID)
	})
	if err != nil {
		return interceptor.Result{}, toHTTPError(err)
	}
	return interceptor.OK(stats), nil
}

// MyEnrollments handles GET /api/me/enrollments.
func (h *Handlers) MyEnrollments(r *http.Request) (interceptor.Result, error) {
	userID := r.Header.Get(HeaderUserID)
	if userID == "" {
		return interceptor.Result{}, interceptor.NewError(http.StatusUnauthorized, "missing "+HeaderUserID)
	}
	return interceptor.OK(map[string]any{
		"userId":      userID,
		"enrollments": h.catalog.Enrollments(userID),
	}), nil
}

// Enroll handles POST /api/courses/{courseID}/enrollments. The course's
// memoized stats are invalidated.
func (h *Handlers) Enroll(r *http.Request) (interceptor.Result, error) {
	userID := r.Header.Get(HeaderUserID)
	if userID == "" {
		return interceptor.Result{}, interceptor.NewError(http.StatusUnauthorized, "missing "+HeaderUserID)
	}

	courseID := chi.URLParam(r, "courseID")
	enrollment, err := h.catalog.Enroll(courseID, userID)
	if err != nil {
		return interceptor.Result{}, toHTTPError(err)
	}
	cache.Delete(r.Context(), h.store, StatsKey(courseID))

	h.logger.Info().Str("course_id", courseID).Str("user_id", userID).Msg("User enrolled")
	return interceptor.Result{Status: http.StatusCreated, Body: enrollment}, nil
}

// Instructors handles GET /api/instructors. It writes the response itself;
// cache headers are added by interceptor.Middleware.
func (h *Handlers) Instructors(w http.ResponseWriter, r *http.Request) {
	interceptor.WriteJSON(w, http.StatusOK, h.catalog.Instructors())
}

// StatsKey is the store key of a course's stats.
func StatsKey(courseID string) string {
	return cache.Key{Namespace: StatsNamespace, Name: courseID}.String()
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrCourseNotFound):
		return &interceptor.Error{Status: http.StatusNotFound, Message: "course not found", Err: err}
	case errors.Is(err, ErrAlreadyEnrolled):
		return &interceptor.Error{Status: http.StatusConflict, Message: "already enrolled", Err: err}
	default:
		return err
	}
}
