package policy

import (
	"net/http"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrDuplicateRoute is returned when a route already has a policy.
	ErrDuplicateRoute = errors.New("policy: route already registered")

	// ErrSealed is returned when registering after the registry was sealed.
	ErrSealed = errors.New("policy: registry is sealed")
)

// Route identifies a registered handler by method and router pattern.
type Route struct {
	Method  string
	Pattern string
}

// String returns "METHOD pattern".
func (r Route) String() string {
	return r.Method + " " + r.Pattern
}

func newRoute(method, pattern string) Route {
	return Route{Method: strings.ToUpper(method), Pattern: pattern}
}

// Registry maps routes to their compiled policies.
//
// Registration happens during startup from a single goroutine. After Seal the
// registry is read-only and safe for concurrent lookups without locking.
type Registry struct {
	policies map[Route]*Policy
	sealed   bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{policies: make(map[Route]*Policy)}
}

// Register attaches p to the route. Each route may be registered once.
func (r *Registry) Register(method, pattern string, p Policy) error {
	if r.sealed {
		return errors.Wrapf(ErrSealed, "register %s %s", method, pattern)
	}
	key := newRoute(method, pattern)
	if _, exists := r.policies[key]; exists {
		return errors.Wrapf(ErrDuplicateRoute, "%s", key)
	}
	r.policies[key] = &p
	return nil
}

// Lookup returns the policy attached to the route, if any.
func (r *Registry) Lookup(method, pattern string) (*Policy, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.policies[newRoute(method, pattern)]
	return p, ok
}

// LookupRequest resolves the policy for a request given the matched router
// pattern.
func (r *Registry) LookupRequest(req *http.Request, pattern string) (*Policy, bool) {
	if req == nil {
		return nil, false
	}
	return r.Lookup(req.Method, pattern)
}

// Seal freezes the registry.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Len returns the number of registered routes.
func (r *Registry) Len() int {
	return len(r.policies)
}

// Routes returns all registered routes sorted by pattern then method.
func (r *Registry) Routes() []Route {
	routes := make([]Route, 0, len(r.policies))
	for route := range r.policies {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Pattern != routes[j].Pattern {
			return routes[i].Pattern < routes[j].Pattern
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}
