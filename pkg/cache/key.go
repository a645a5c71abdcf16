package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Key identifies a memoized value.
type Key struct {
	// Namespace groups related values (e.g., "course-stats")
	Namespace string

	// Name is the entity identifier (e.g., a course ID)
	Name string

	// Params are additional inputs the value depends on
	Params map[string]string
}

// String generates a deterministic key string.
// Format: namespace:name:param1=val1:param2=val2
//
// Example:
//
//	course-stats:42:window=30d
func (k Key) String() string {
	parts := make([]string, 0, 2+len(k.Params))

	if ns := strings.Trim(k.Namespace, ":"); ns != "" {
		parts = append(parts, ns)
	}
	if name := strings.Trim(k.Name, ":"); name != "" {
		parts = append(parts, name)
	}

	if len(k.Params) > 0 {
		keys := make([]string, 0, len(k.Params))
		for key := range k.Params {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.Params[key]))
		}
	}

	return strings.Join(parts, ":")
}
