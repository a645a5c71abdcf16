package interceptor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/academy-cache/pkg/conditional"
	"github.com/Sternrassler/academy-cache/pkg/policy"
)

func mustEncode(t *testing.T, body any) []byte {
	t.Helper()
	raw, err := conditional.Serialize(body)
	require.NoError(t, err)
	return raw
}

func TestApply_CacheableGet(t *testing.T) {
	p := policy.MustNew(policy.Public(), policy.MaxAge(300))
	body := map[string]any{"id": 1}
	req := httptest.NewRequest(http.MethodGet, "/api/courses/1", nil)

	resp := Apply(req, OK(body), mustEncode(t, body), &p)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "public, max-age=300", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "Accept-Encoding, Accept-Language", resp.Header.Get("Vary"))
	assert.NotEmpty(t, resp.Header.Get("ETag"))
	assert.JSONEq(t, `{"id":1}`, string(resp.Body))
}

func TestApply_NotModified(t *testing.T) {
	p := policy.MustNew(policy.Public(), policy.MaxAge(300))
	body := map[string]any{"id": 1}
	encoded := mustEncode(t, body)

	first := Apply(httptest.NewRequest(http.MethodGet, "/x", nil), OK(body), encoded, &p)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("If-None-Match", first.Header.Get("ETag"))
	res := OK(body)
	res.Header = http.Header{"Content-Type": []string{"application/json"}}

	second := Apply(req, res, encoded, &p)

	assert.Equal(t, http.StatusNotModified, second.Status)
	assert.Nil(t, second.Body)
	assert.Empty(t, second.Header.Get("Content-Type"))
	assert.Equal(t, first.Header.Get("ETag"), second.Header.Get("ETag"))
	assert.Equal(t, "public, max-age=300", second.Header.Get("Cache-Control"))
}

func TestApply_Passthrough(t *testing.T) {
	p := policy.MustNew(policy.Public(), policy.MaxAge(300))
	body := map[string]any{"id": 1}

	tests := []struct {
		name   string
		method string
		status int
		policy *policy.Policy
	}{
		{"post", http.MethodPost, http.StatusOK, &p},
		{"put", http.MethodPut, http.StatusOK, &p},
		{"get not found", http.MethodGet, http.StatusNotFound, &p},
		{"get created", http.MethodGet, http.StatusCreated, &p},
		{"no policy", http.MethodGet, http.StatusOK, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/x", nil)
			resp := Apply(req, Result{Status: tt.status, Body: body}, mustEncode(t, body), tt.policy)

			assert.Equal(t, tt.status, resp.Status)
			assert.Empty(t, resp.Header.Get("Cache-Control"))
			assert.Empty(t, resp.Header.Get("ETag"))
			assert.Empty(t, resp.Header.Get("Vary"))
			assert.NotEmpty(t, resp.Body)
		})
	}
}

func TestApply_EmptyPolicyOmitsCacheControl(t *testing.T) {
	p := policy.MustNew()
	body := []byte(`{"id":1}`)

	resp := Apply(httptest.NewRequest(http.MethodGet, "/x", nil), OK(body), body, &p)

	_, present := resp.Header["Cache-Control"]
	assert.False(t, present, "empty policy must not emit an empty Cache-Control")
	assert.NotEmpty(t, resp.Header.Get("ETag"))
}

func TestApply_DefaultStatusAndHeaderIsolation(t *testing.T) {
	p := policy.NeverCache()
	handlerHeader := http.Header{"X-Course": []string{"go"}}
	body := []byte("hello")

	resp := Apply(httptest.NewRequest(http.MethodGet, "/x", nil), Result{Header: handlerHeader, Body: body}, body, &p)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "go", resp.Header.Get("X-Course"))
	assert.Empty(t, handlerHeader.Get("Cache-Control"), "handler header must not be mutated")
}

func TestApply_LastModifiedFromPayload(t *testing.T) {
	p := policy.MustNew(policy.Private(), policy.MaxAge(60), policy.MustRevalidate())
	body := map[string]any{"id": 7, "updatedAt": "2024-05-01T08:00:00Z"}

	resp := Apply(httptest.NewRequest(http.MethodGet, "/x", nil), OK(body), mustEncode(t, body), &p)

	assert.Equal(t, "private, max-age=60, must-revalidate", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "Wed, 01 May 2024 08:00:00 GMT", resp.Header.Get("Last-Modified"))
}
