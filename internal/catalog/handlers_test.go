package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/academy-cache/internal/testutil"
	"github.com/Sternrassler/academy-cache/pkg/cache"
	"github.com/Sternrassler/academy-cache/pkg/interceptor"
	"github.com/Sternrassler/academy-cache/pkg/policy"
)

func newTestRouter(t *testing.T, h *Handlers) http.Handler {
	t.Helper()
	registry := policy.NewRegistry()
	registry.Seal()
	i := interceptor.New(registry, zerolog.Nop())

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/api/courses", i.Handle(http.MethodGet, "/api/courses", h.ListCourses))
	r.Method(http.MethodGet, "/api/courses/{courseID}", i.Handle(http.MethodGet, "/api/courses/{courseID}", h.GetCourse))
	r.Method(http.MethodGet, "/api/courses/{courseID}/stats", i.Handle(http.MethodGet, "/api/courses/{courseID}/stats", h.CourseStats))
	r.Method(http.MethodGet, "/api/me/enrollments", i.Handle(http.MethodGet, "/api/me/enrollments", h.MyEnrollments))
	r.Method(http.MethodPost, "/api/courses/{courseID}/enrollments", i.Handle(http.MethodPost, "/api/courses/{courseID}/enrollments", h.Enroll))
	r.Get("/api/instructors", h.Instructors)
	return r
}

func do(t *testing.T, h http.Handler, method, path, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandlers_Courses(t *testing.T) {
	h := NewHandlers(newSeeded(t), nil, 0, zerolog.Nop())
	router := newTestRouter(t, h)

	w := do(t, router, http.MethodGet, "/api/courses", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list CourseList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 3, list.Total)

	w = do(t, router, http.MethodGet, "/api/courses/go-concurrency", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Concurrency in Go"`)

	w = do(t, router, http.MethodGet, "/api/courses/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"course not found"}`, w.Body.String())
}

func TestHandlers_Enrollments(t *testing.T) {
	h := NewHandlers(newSeeded(t), nil, 0, zerolog.Nop())
	router := newTestRouter(t, h)

	w := do(t, router, http.MethodPost, "/api/courses/go-101/enrollments", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, router, http.MethodPost, "/api/courses/go-101/enrollments", "u1")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"courseId":"go-101"`)

	w = do(t, router, http.MethodPost, "/api/courses/go-101/enrollments", "u1")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, http.MethodPost, "/api/courses/nope/enrollments", "u1")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodGet, "/api/me/enrollments", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, router, http.MethodGet, "/api/me/enrollments", "u1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		UserID      string       `json:"userId"`
		Enrollments []Enrollment `json:"enrollments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "u1", body.UserID)
	require.Len(t, body.Enrollments, 1)
	assert.Equal(t, "go-101", body.Enrollments[0].CourseID)
}

func TestHandlers_StatsMemoized(t *testing.T) {
	c := newSeeded(t)
	mr, store := testutil.NewStore(t, cache.DefaultOptions())
	h := NewHandlers(c, store, 0, zerolog.Nop())
	router := newTestRouter(t, h)

	first := do(t, router, http.MethodGet, "/api/courses/go-101/stats", "")
	require.Equal(t, http.StatusOK, first.Code)
	second := do(t, router, http.MethodGet, "/api/courses/go-101/stats", "")
	require.Equal(t, http.StatusOK, second.Code)

	assert.EqualValues(t, 1, c.StatsComputations())
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.True(t, mr.Exists("academy:course-stats:go-101"))

	// Enrolling invalidates the memoized value.
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/courses/go-101/enrollments", "u1").Code)
	assert.False(t, mr.Exists("academy:course-stats:go-101"))

	third := do(t, router, http.MethodGet, "/api/courses/go-101/stats", "")
	require.Equal(t, http.StatusOK, third.Code)
	assert.Contains(t, third.Body.String(), `"enrollments":1`)
	assert.EqualValues(t, 2, c.StatsComputations())
}

func TestHandlers_StatsFailOpen(t *testing.T) {
	c := newSeeded(t)
	h := NewHandlers(c, testutil.UnreachableStore(t), 0, zerolog.Nop())
	router := newTestRouter(t, h)

	for range 3 {
		w := do(t, router, http.MethodGet, "/api/courses/go-101/stats", "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.EqualValues(t, 3, c.StatsComputations())

	w := do(t, router, http.MethodGet, "/api/courses/nope/stats", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlers_Instructors(t *testing.T) {
	h := NewHandlers(newSeeded(t), nil, 0, zerolog.Nop())

	w := do(t, newTestRouter(t, h), http.MethodGet, "/api/instructors", "")
	require.Equal(t, http.StatusOK, w.Code)

	var instructors []Instructor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &instructors))
	require.Len(t, instructors, 2)
	assert.Equal(t, "ada", instructors[0].ID)
}
