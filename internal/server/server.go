// Package server wires the academy HTTP API.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/academy-cache/internal/catalog"
	"github.com/Sternrassler/academy-cache/pkg/cache"
	"github.com/Sternrassler/academy-cache/pkg/interceptor"
	"github.com/Sternrassler/academy-cache/pkg/logging"
	"github.com/Sternrassler/academy-cache/pkg/metrics"
	"github.com/Sternrassler/academy-cache/pkg/policy"
)

// Server is the academy API.
type Server struct {
	Router      *chi.Mux
	Registry    *policy.Registry
	Interceptor *interceptor.Interceptor
	Store       *cache.Store

	logger zerolog.Logger
}

// Options configures New.
type Options struct {
	Catalog *catalog.Catalog

	// Store is the secondary cache. Nil means disabled.
	Store *cache.Store

	// Policies overrides DefaultPolicies when non-nil.
	Policies []RoutePolicy

	// StatsTTL is the lifetime of memoized course stats. Zero uses the
	// store default.
	StatsTTL time.Duration

	Logger zerolog.Logger
}

// New builds the router. Policies are registered and sealed before any
// route is mounted.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		opts.Store = cache.Disabled()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.New(nil)
	}
	if opts.Policies == nil {
		opts.Policies = DefaultPolicies()
	}

	registry, err := buildRegistry(opts.Policies)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(logging.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)

	s := &Server{
		Router:      r,
		Registry:    registry,
		Interceptor: interceptor.New(registry, opts.Logger),
		Store:       opts.Store,
		logger:      opts.Logger.With().Str("component", "server").Logger(),
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	h := catalog.NewHandlers(opts.Catalog, opts.Store, opts.StatsTTL, opts.Logger)
	s.handle(http.MethodGet, PatternCourses, h.ListCourses)
	s.handle(http.MethodGet, PatternCourse, h.GetCourse)
	s.handle(http.MethodGet, PatternCourseStats, h.CourseStats)
	s.handle(http.MethodGet, PatternMyEnrolled, h.MyEnrollments)
	s.handle(http.MethodPost, PatternEnrollments, h.Enroll)
	r.With(s.Interceptor.Middleware).Get(PatternInstructors, h.Instructors)

	s.logger.Info().
		Int("policies", registry.Len()).
		Bool("store_enabled", opts.Store.Enabled()).
		Msg("Routes registered")
	for _, route := range registry.Routes() {
		p, _ := registry.Lookup(route.Method, route.Pattern)
		s.logger.Debug().Str("route", route.String()).Str("cache_control", p.CacheControl()).Msg("Route policy")
	}

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) handle(method, pattern string, h interceptor.Handler) {
	s.Router.Method(method, pattern, s.Interceptor.Handle(method, pattern, h))
}
