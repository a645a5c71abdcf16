// Package policy describes per-route HTTP caching policy and renders it as a
// Cache-Control header value.
//
// A Policy is compiled once, when a route is registered, and is read-only
// afterwards. Handlers never build or mutate policies per request.
//
// # Basic Usage
//
//	courses := policy.MustNew(
//		policy.Public(),
//		policy.MaxAge(300),
//		policy.StaleWhileRevalidate(60),
//	)
//	courses.CacheControl() // "public, max-age=300, stale-while-revalidate=60"
//
//	// Routes that must never be stored anywhere
//	enrollments := policy.NeverCache()
//	enrollments.CacheControl() // "no-store"
//
// # Precedence
//
// NoStore wins over every other directive. NoCache wins over everything
// except NoStore. Otherwise directives are emitted in a fixed order:
// visibility, max-age, s-maxage, must-revalidate, immutable,
// stale-while-revalidate.
package policy

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrConflictingVisibility is returned when both Public and Private are set.
	ErrConflictingVisibility = errors.New("policy: public and private are mutually exclusive")

	// ErrNegativeSeconds is returned when a numeric directive is below zero.
	ErrNegativeSeconds = errors.New("policy: seconds must not be negative")
)

// Visibility is the cacheability scope of a response.
type Visibility string

const (
	// VisibilityUnset emits no visibility directive.
	VisibilityUnset Visibility = ""

	// VisibilityPublic allows shared caches to store the response.
	VisibilityPublic Visibility = "public"

	// VisibilityPrivate restricts storage to the client cache.
	VisibilityPrivate Visibility = "private"
)

// seconds is an optional non-negative number of seconds. Zero is a valid,
// set value (max-age=0).
type seconds struct {
	value int
	set   bool
}

// Policy is an immutable cache policy descriptor for one route.
type Policy struct {
	visibility           Visibility
	maxAge               seconds
	sMaxAge              seconds
	mustRevalidate       bool
	noCache              bool
	noStore              bool
	immutable            bool
	staleWhileRevalidate seconds

	header string
}

// Option configures a Policy under construction.
type Option func(*builder)

type builder struct {
	public  bool
	private bool
	p       Policy
	errs    []error
}

func (b *builder) secs(name string, n int) seconds {
	if n < 0 {
		b.errs = append(b.errs, errors.Wrapf(ErrNegativeSeconds, "%s=%d", name, n))
	}
	return seconds{value: n, set: true}
}

// Public marks the response as storable by shared caches.
func Public() Option {
	return func(b *builder) { b.public = true }
}

// Private restricts storage to the requesting client.
func Private() Option {
	return func(b *builder) { b.private = true }
}

// MaxAge sets the client freshness lifetime in seconds.
func MaxAge(n int) Option {
	return func(b *builder) { b.p.maxAge = b.secs("max-age", n) }
}

// SMaxAge sets the shared cache freshness lifetime in seconds.
func SMaxAge(n int) Option {
	return func(b *builder) { b.p.sMaxAge = b.secs("s-maxage", n) }
}

// MustRevalidate forbids serving stale responses without revalidation.
func MustRevalidate() Option {
	return func(b *builder) { b.p.mustRevalidate = true }
}

// NoCache allows storage but requires revalidation on every use.
func NoCache() Option {
	return func(b *builder) { b.p.noCache = true }
}

// NoStore forbids storage entirely.
func NoStore() Option {
	return func(b *builder) { b.p.noStore = true }
}

// Immutable declares the response will not change while fresh.
func Immutable() Option {
	return func(b *builder) { b.p.immutable = true }
}

// StaleWhileRevalidate lets caches serve a stale response for n seconds
// while they refresh it in the background.
func StaleWhileRevalidate(n int) Option {
	return func(b *builder) { b.p.staleWhileRevalidate = b.secs("stale-while-revalidate", n) }
}

// New compiles a Policy from options.
func New(opts ...Option) (Policy, error) {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	if b.public && b.private {
		b.errs = append(b.errs, ErrConflictingVisibility)
	}
	if len(b.errs) > 0 {
		return Policy{}, errors.Join(b.errs...)
	}

	switch {
	case b.public:
		b.p.visibility = VisibilityPublic
	case b.private:
		b.p.visibility = VisibilityPrivate
	}

	b.p.header = Build(b.p)
	return b.p, nil
}

// MustNew is like New but panics on invalid options. Intended for route
// tables built at startup.
func MustNew(opts ...Option) Policy {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// NeverCache is the shorthand for routes whose responses must never be
// cached. It maps to no-store, the stronger of the two disabling directives.
func NeverCache() Policy {
	return MustNew(NoStore())
}

// CacheControl returns the precomputed Cache-Control value. An empty string
// means the header must be omitted.
func (p Policy) CacheControl() string {
	return p.header
}

// Visibility returns the visibility directive.
func (p Policy) Visibility() Visibility { return p.visibility }

// MaxAge returns max-age and whether it is set.
func (p Policy) MaxAge() (int, bool) { return p.maxAge.value, p.maxAge.set }

// SMaxAge returns s-maxage and whether it is set.
func (p Policy) SMaxAge() (int, bool) { return p.sMaxAge.value, p.sMaxAge.set }

// StaleWhileRevalidate returns stale-while-revalidate and whether it is set.
func (p Policy) StaleWhileRevalidate() (int, bool) {
	return p.staleWhileRevalidate.value, p.staleWhileRevalidate.set
}

// MustRevalidate reports whether must-revalidate is set.
func (p Policy) MustRevalidate() bool { return p.mustRevalidate }

// NoCache reports whether no-cache is set.
func (p Policy) NoCache() bool { return p.noCache }

// NoStore reports whether no-store is set.
func (p Policy) NoStore() bool { return p.noStore }

// Immutable reports whether immutable is set.
func (p Policy) Immutable() bool { return p.immutable }
