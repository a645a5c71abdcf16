package conditional

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

// ErrSerialize wraps payloads that cannot be encoded.
var ErrSerialize = errors.New("conditional: serialize body")

// Serialize encodes body deterministically. []byte, json.RawMessage and
// string bodies are returned unchanged.
func Serialize(body any) (data []byte, err error) {
	switch v := body.(type) {
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	case string:
		return []byte(v), nil
	}

	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = errors.Wrapf(ErrSerialize, "panic: %v", r)
		}
	}()

	data, err = json.Marshal(body)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "json"), ErrSerialize)
	}
	return data, nil
}

// ETag returns the quoted digest of raw.
func ETag(raw []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(raw))
}

// ComputeETag serializes body and returns its ETag.
func ComputeETag(body any) (string, error) {
	raw, err := Serialize(body)
	if err != nil {
		return "", err
	}
	return ETag(raw), nil
}

// Matches reports whether the incoming If-None-Match value is exactly the
// computed ETag.
func Matches(ifNoneMatch, etag string) bool {
	if etag == "" {
		return false
	}
	return strings.TrimSpace(ifNoneMatch) == etag
}
