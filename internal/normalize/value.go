// Package normalize converts untyped decoded JSON values into validated
// domain records. Functions here never fail: malformed elements are
// dropped, invalid enums are clamped to documented defaults, and a
// non-array value where an array was expected yields an empty list.
package normalize

import (
	"strconv"
	"strings"
)

// asMap returns v as an object, or nil when v is anything else
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asSlice returns v as an array, or nil when v is anything else
func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// coerceString converts a scalar to its trimmed string form. Numbers are
// accepted because models emit years and versions both quoted and bare.
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// stringField returns the first non-empty string under any of the given
// keys. Key aliases absorb the model's habit of renaming fields.
func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := coerceString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// floatField returns the first parseable non-negative number under any of
// the given keys
func floatField(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch t := m[k].(type) {
		case float64:
			if t >= 0 {
				return t, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && f >= 0 {
				return f, true
			}
		}
	}
	return 0, false
}

// stringList coerces v into a list of non-empty strings. A bare string
// becomes a single-element list; garbage elements are skipped.
func stringList(v any) []string {
	if s := coerceString(v); s != "" {
		return []string{s}
	}
	var out []string
	for _, item := range asSlice(v) {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// listField locates an array either at the top level or under one of the
// given object keys. Models sometimes wrap the requested array in an
// envelope object despite instructions.
func listField(v any, keys ...string) []any {
	if s := asSlice(v); s != nil {
		return s
	}
	m := asMap(v)
	if m == nil {
		return nil
	}
	for _, k := range keys {
		if s := asSlice(m[k]); s != nil {
			return s
		}
	}
	return nil
}
