package server

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/Sternrassler/academy-cache/pkg/policy"
)

// Route patterns served by the API.
const (
	PatternCourses     = "/api/courses"
	PatternCourse      = "/api/courses/{courseID}"
	PatternCourseStats = "/api/courses/{courseID}/stats"
	PatternEnrollments = "/api/courses/{courseID}/enrollments"
	PatternInstructors = "/api/instructors"
	PatternMyEnrolled  = "/api/me/enrollments"
)

// RoutePolicy attaches a cache policy to a route.
type RoutePolicy struct {
	Method  string
	Pattern string
	Policy  policy.Policy
}

// DefaultPolicies is the policy table of the academy API. Routes that are
// absent (POST enrollments, health and metrics) get no cache headers.
func DefaultPolicies() []RoutePolicy {
	return []RoutePolicy{
		{http.MethodGet, PatternCourses, policy.MustNew(
			policy.Public(), policy.MaxAge(300), policy.SMaxAge(600), policy.StaleWhileRevalidate(60))},
		{http.MethodGet, PatternCourse, policy.MustNew(
			policy.Public(), policy.MaxAge(60), policy.MustRevalidate())},
		{http.MethodGet, PatternCourseStats, policy.MustNew(
			policy.Private(), policy.MaxAge(30))},
		{http.MethodGet, PatternInstructors, policy.MustNew(
			policy.Public(), policy.MaxAge(3600), policy.Immutable())},
		{http.MethodGet, PatternMyEnrolled, policy.NeverCache()},
	}
}

// buildRegistry registers every entry and seals the registry.
func buildRegistry(entries []RoutePolicy) (*policy.Registry, error) {
	registry := policy.NewRegistry()
	for _, e := range entries {
		if err := registry.Register(e.Method, e.Pattern, e.Policy); err != nil {
			return nil, errors.Wrapf(err, "register policy for %s %s", e.Method, e.Pattern)
		}
	}
	registry.Seal()
	return registry, nil
}
