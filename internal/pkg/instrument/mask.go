package instrument

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Masked replaces the value of any masked key.
const Masked = "***"

// Masker hides the values of configured keys in log attributes, JSON payloads
// and HTTP headers. Key matching is case-insensitive.
type Masker struct {
	keys map[string]struct{}
}

// NewMasker builds a Masker for the given keys. Blank entries are ignored.
func NewMasker(keys []string) *Masker {
	m := &Masker{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			m.keys[k] = struct{}{}
		}
	}

	return m
}

// Empty reports whether no key is masked.
func (m *Masker) Empty() bool {
	return m == nil || len(m.keys) == 0
}

func (m *Masker) hit(key string) bool {
	_, ok := m.keys[strings.ToLower(key)]
	return ok
}

// Attr masks a log attribute, descending into groups and JSON-looking strings.
func (m *Masker) Attr(a slog.Attr) slog.Attr {
	if m.Empty() {
		return a
	}
	if m.hit(a.Key) {
		return slog.String(a.Key, Masked)
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		out := make([]slog.Attr, len(group))
		for i, ga := range group {
			out[i] = m.Attr(ga)
		}
		a.Value = slog.GroupValue(out...)
	case slog.KindString:
		if s := a.Value.String(); s != "" && (s[0] == '{' || s[0] == '[') {
			if v, ok := m.JSON([]byte(s)); ok {
				if b, err := json.Marshal(v); err == nil {
					a.Value = slog.StringValue(string(b))
				}
			}
		}
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case map[string]any, []any:
			a.Value = slog.AnyValue(m.Value(v))
		case map[string]string:
			conv := make(map[string]any, len(v))
			for k, s := range v {
				conv[k] = s
			}
			a.Value = slog.AnyValue(m.Value(conv))
		case http.Header:
			a.Value = slog.AnyValue(m.Headers(v))
		}
	}

	return a
}

// Value masks decoded JSON data (maps and slices) recursively.
func (m *Masker) Value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if m.hit(k) {
				out[k] = Masked
				continue
			}
			out[k] = m.Value(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = m.Value(inner)
		}
		return out
	default:
		return v
	}
}

// JSON decodes body and masks it. ok is false when body is not JSON.
func (m *Masker) JSON(body []byte) (any, bool) {
	if len(body) == 0 {
		return nil, false
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, false
	}

	return m.Value(v), true
}

// Body renders an HTTP body for logging: masked JSON when possible, the raw
// text otherwise, and a placeholder for binary data.
func (m *Masker) Body(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if v, ok := m.JSON(body); ok {
		return v
	}
	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}

	return string(body)
}

// Headers returns a copy of h with masked header values replaced.
func (m *Masker) Headers(h http.Header) http.Header {
	if m.Empty() {
		return h
	}

	out := h.Clone()
	for k := range out {
		if m.hit(k) {
			out.Set(k, Masked)
		}
	}

	return out
}
