package conditional

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSerialize_Deterministic(t *testing.T) {
	a := map[string]any{"id": 1, "title": "Go", "tags": []string{"x", "y"}}
	b := map[string]any{"tags": []string{"x", "y"}, "title": "Go", "id": 1}

	rawA, err := Serialize(a)
	if err != nil {
		t.Fatalf("Serialize(a) error = %v", err)
	}
	rawB, err := Serialize(b)
	if err != nil {
		t.Fatalf("Serialize(b) error = %v", err)
	}
	if string(rawA) != string(rawB) {
		t.Errorf("serializations differ: %s vs %s", rawA, rawB)
	}
}

func TestSerialize_Passthrough(t *testing.T) {
	tests := []struct {
		name string
		body any
		want string
	}{
		{"bytes", []byte(`{"a":1}`), `{"a":1}`},
		{"raw message", json.RawMessage(`[1,2]`), `[1,2]`},
		{"string", "plain", "plain"},
		{"nil", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.body)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Serialize() = %s, want %s", got, tt.want)
			}
		})
	}
}

type panicky struct{}

func (panicky) MarshalJSON() ([]byte, error) {
	panic("boom")
}

func TestSerialize_Failures(t *testing.T) {
	bodies := map[string]any{
		"channel":  make(chan int),
		"function": func() {},
		"panic":    panicky{},
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := Serialize(body)
			if !errors.Is(err, ErrSerialize) {
				t.Errorf("Serialize() error = %v, want ErrSerialize", err)
			}
		})
	}
}

func TestETag(t *testing.T) {
	one := ETag([]byte(`{"id":1}`))
	again := ETag([]byte(`{"id":1}`))
	two := ETag([]byte(`{"id":2}`))

	if one != again {
		t.Errorf("identical bodies produced %s and %s", one, again)
	}
	if one == two {
		t.Errorf("different bodies produced the same ETag %s", one)
	}
	if !strings.HasPrefix(one, `"`) || !strings.HasSuffix(one, `"`) {
		t.Errorf("ETag %s is not quoted", one)
	}
	if len(one) != 18 {
		t.Errorf("ETag %s has unexpected length %d", one, len(one))
	}
}

func TestComputeETag(t *testing.T) {
	type course struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}

	fromStruct, err := ComputeETag(course{ID: 1, Title: "Go"})
	if err != nil {
		t.Fatalf("ComputeETag() error = %v", err)
	}
	fromMap, err := ComputeETag(map[string]any{"title": "Go", "id": 1})
	if err != nil {
		t.Fatalf("ComputeETag() error = %v", err)
	}
	if fromStruct != fromMap {
		t.Errorf("structurally identical payloads disagree: %s vs %s", fromStruct, fromMap)
	}

	if _, err := ComputeETag(make(chan int)); err == nil {
		t.Error("ComputeETag should fail for channels")
	}
}

func TestMatches(t *testing.T) {
	etag := ETag([]byte("x"))

	tests := []struct {
		name        string
		ifNoneMatch string
		etag        string
		want        bool
	}{
		{"exact", etag, etag, true},
		{"surrounding whitespace", "  " + etag + " ", etag, true},
		{"different", `"other"`, etag, false},
		{"unquoted", strings.Trim(etag, `"`), etag, false},
		{"weak", "W/" + etag, etag, false},
		{"empty header", "", etag, false},
		{"empty etag", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.ifNoneMatch, tt.etag); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.ifNoneMatch, tt.etag, got, tt.want)
			}
		})
	}
}
