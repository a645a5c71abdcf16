package policy

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	courses := MustNew(Public(), MaxAge(300))

	if err := r.Register("get", "/api/courses", courses); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, ok := r.Lookup("GET", "/api/courses")
	if !ok {
		t.Fatal("Lookup should find the registered route")
	}
	if got.CacheControl() != "public, max-age=300" {
		t.Errorf("CacheControl() = %q", got.CacheControl())
	}

	if _, ok := r.Lookup("POST", "/api/courses"); ok {
		t.Error("Lookup should be method specific")
	}
	if _, ok := r.Lookup("GET", "/api/courses/{courseID}"); ok {
		t.Error("Lookup should not match other patterns")
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("GET", "/a", NeverCache()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err := r.Register("GET", "/a", MustNew(Public()))
	if !errors.Is(err, ErrDuplicateRoute) {
		t.Errorf("expected ErrDuplicateRoute, got %v", err)
	}
}

func TestRegistry_Sealed(t *testing.T) {
	r := NewRegistry()
	r.Seal()

	if !r.Sealed() {
		t.Fatal("Sealed() should report true")
	}
	if err := r.Register("GET", "/late", NeverCache()); !errors.Is(err, ErrSealed) {
		t.Errorf("expected ErrSealed, got %v", err)
	}
}

func TestRegistry_LookupRequest(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("GET", "/api/courses/{courseID}", MustNew(Public(), MaxAge(60)))

	req := httptest.NewRequest("GET", "/api/courses/42", nil)
	if _, ok := r.LookupRequest(req, "/api/courses/{courseID}"); !ok {
		t.Error("LookupRequest should resolve by pattern")
	}
	if _, ok := r.LookupRequest(nil, "/api/courses/{courseID}"); ok {
		t.Error("LookupRequest with nil request should miss")
	}

	var nilRegistry *Registry
	if _, ok := nilRegistry.Lookup("GET", "/x"); ok {
		t.Error("nil registry should never match")
	}
}

func TestRegistry_Routes(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("GET", "/b", NeverCache())
	_ = r.Register("GET", "/a", NeverCache())
	_ = r.Register("DELETE", "/a", NeverCache())

	routes := r.Routes()
	want := []string{"DELETE /a", "GET /a", "GET /b"}
	if len(routes) != len(want) || r.Len() != len(want) {
		t.Fatalf("Routes() = %v, want %v", routes, want)
	}
	for i, route := range routes {
		if route.String() != want[i] {
			t.Errorf("routes[%d] = %s, want %s", i, route, want[i])
		}
	}
}
