package policy

import (
	"strconv"
	"strings"
)

// Build renders a Policy as a Cache-Control header value.
//
// The result is deterministic: no-store short-circuits everything, no-cache
// short-circuits everything else, and remaining directives are joined with
// ", " in a fixed order. An empty result means no header should be sent.
func Build(p Policy) string {
	if p.noStore {
		return "no-store"
	}
	if p.noCache {
		return "no-cache"
	}

	directives := make([]string, 0, 6)
	if p.visibility != VisibilityUnset {
		directives = append(directives, string(p.visibility))
	}
	if p.maxAge.set {
		directives = append(directives, "max-age="+strconv.Itoa(p.maxAge.value))
	}
	if p.sMaxAge.set {
		directives = append(directives, "s-maxage="+strconv.Itoa(p.sMaxAge.value))
	}
	if p.mustRevalidate {
		directives = append(directives, "must-revalidate")
	}
	if p.immutable {
		directives = append(directives, "immutable")
	}
	if p.staleWhileRevalidate.set {
		directives = append(directives, "stale-while-revalidate="+strconv.Itoa(p.staleWhileRevalidate.value))
	}

	return strings.Join(directives, ", ")
}
