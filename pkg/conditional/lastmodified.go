package conditional

import (
	"reflect"
	"time"
)

// Timestamped is implemented by payloads that know when they last changed.
type Timestamped interface {
	LastModified() time.Time
}

var (
	timestampKeys = []string{"updatedAt", "updated_at"}
	timeType      = reflect.TypeOf(time.Time{})
)

// LastModified extracts an update timestamp from body.
//
// Supported shapes, in order: Timestamped, map[string]any with an updatedAt
// or updated_at entry, structs with an exported UpdatedAt field, and slices
// of any of these (the newest element wins). Values may be time.Time,
// *time.Time or an RFC 3339 string. Zero times are ignored.
func LastModified(body any) (time.Time, bool) {
	if body == nil {
		return time.Time{}, false
	}

	rv := reflect.ValueOf(body)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return time.Time{}, false
	}

	if ts, ok := body.(Timestamped); ok {
		return nonZero(ts.LastModified())
	}

	if m, ok := body.(map[string]any); ok {
		for _, key := range timestampKeys {
			if v, found := m[key]; found {
				return parseTimestamp(v)
			}
		}
		return time.Time{}, false
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return time.Time{}, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return newest(rv)
	case reflect.Struct:
	default:
		return time.Time{}, false
	}

	field := rv.FieldByName("UpdatedAt")
	if !field.IsValid() || !field.CanInterface() {
		return time.Time{}, false
	}
	switch {
	case field.Kind() == reflect.String:
		return parseTimestamp(field.String())
	case field.Type() == timeType || field.Type() == reflect.PointerTo(timeType):
		return parseTimestamp(field.Interface())
	default:
		return time.Time{}, false
	}
}

func newest(rv reflect.Value) (time.Time, bool) {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return time.Time{}, false
	}
	var latest time.Time
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if !elem.CanInterface() {
			continue
		}
		if t, ok := LastModified(elem.Interface()); ok && t.After(latest) {
			latest = t
		}
	}
	return nonZero(latest)
}

func parseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return nonZero(t)
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return nonZero(*t)
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return nonZero(parsed)
	default:
		return time.Time{}, false
	}
}

func nonZero(t time.Time) (time.Time, bool) {
	if t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}
