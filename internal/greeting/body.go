package greeting

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNotObject is reported when the body is valid JSON but not an object.
var ErrNotObject = errors.New("request body is not a JSON object")

// BodyResult is the outcome of parsing a request body as JSON. Exactly one of
// Fields and Err is meaningful: a failed parse is carried as a value so the
// caller decides whether to ignore it.
type BodyResult struct {
	Fields map[string]any
	Err    error
}

// OK reports whether the body parsed into a JSON object.
func (r BodyResult) OK() bool {
	return r.Err == nil
}

// ParseBody decodes body as a single JSON object. Numbers keep their literal
// text (json.Number).
func ParseBody(body []byte) BodyResult {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return BodyResult{Err: fmt.Errorf("failed to parse request body: %w", err)}
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return BodyResult{Err: errors.New("failed to parse request body: trailing data after JSON value")}
	}

	fields, ok := v.(map[string]any)
	if !ok {
		return BodyResult{Err: ErrNotObject}
	}
	return BodyResult{Fields: fields}
}

// Name returns the "name" field rendered as text, and false when the field is
// missing or holds an empty value (null, false, zero, "", [] or {}). Strings
// are returned as-is; any other value is returned as its JSON text.
func (r BodyResult) Name() (string, bool) {
	if !r.OK() {
		return "", false
	}
	v, ok := r.Fields[nameKey]
	if !ok {
		return "", false
	}
	return render(v)
}

func render(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case bool:
		if !val {
			return "", false
		}
		return "true", true
	case json.Number:
		f, err := strconv.ParseFloat(val.String(), 64)
		if err == nil && f == 0 {
			return "", false
		}
		return val.String(), true
	case []any:
		if len(val) == 0 {
			return "", false
		}
		return compact(val)
	case map[string]any:
		if len(val) == 0 {
			return "", false
		}
		return compact(val)
	default:
		return "", false
	}
}

// compact renders v as single-line JSON without HTML escaping, so names
// holding <, > or & come back unchanged.
func compact(v any) (string, bool) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", false
	}
	return strings.TrimSuffix(buf.String(), "\n"), true
}
