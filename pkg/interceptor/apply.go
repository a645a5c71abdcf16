package interceptor

import (
	"net/http"

	"github.com/Sternrassler/academy-cache/pkg/conditional"
	"github.com/Sternrassler/academy-cache/pkg/policy"
)

// HeaderCacheControl is the header carrying the rendered policy.
const HeaderCacheControl = "Cache-Control"

// Apply decides the response for a handler result.
//
// encoded is the serialized form of res.Body and is what gets hashed and
// sent. A nil policy, a non-GET request or a non-200 status leave the result
// untouched. On a validator match the status becomes 304 and the body is
// dropped.
func Apply(r *http.Request, res Result, encoded []byte, p *policy.Policy) Response {
	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}

	resp := Response{
		Status: status,
		Header: cloneHeader(res.Header),
		Body:   encoded,
	}
	if p == nil || r == nil || !conditional.Applies(r.Method, status) {
		return resp
	}

	if cc := p.CacheControl(); cc != "" {
		resp.Header.Set(HeaderCacheControl, cc)
	}

	lastModified, _ := conditional.LastModified(res.Body)
	out := conditional.EvaluateBytes(r.Method, status, encoded, lastModified, r.Header.Get(conditional.HeaderIfNoneMatch))
	for key, values := range out.Header {
		resp.Header[key] = values
	}

	if out.SuppressBody {
		resp.Status = http.StatusNotModified
		resp.Body = nil
		resp.Header.Del("Content-Type")
		resp.Header.Del("Content-Length")
	}

	return resp
}

func cloneHeader(h http.Header) http.Header {
	if h == nil {
		return make(http.Header)
	}
	return h.Clone()
}

// write sends resp. The body is never written for 304.
func write(w http.ResponseWriter, resp Response) error {
	dst := w.Header()
	for key, values := range resp.Header {
		dst[key] = values
	}
	w.WriteHeader(resp.Status)

	if resp.Status == http.StatusNotModified || len(resp.Body) == 0 {
		return nil
	}
	_, err := w.Write(resp.Body)
	return err
}
