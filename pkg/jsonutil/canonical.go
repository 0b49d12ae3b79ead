// Package jsonutil provides deterministic JSON encoding for checksums.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// CanonicalMarshal produces deterministic JSON: object keys sorted
// lexicographically, no insignificant whitespace. Two equal values always
// encode to the same bytes, which makes the output safe to hash.
func CanonicalMarshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical marshal: %w", err)
	}
	var buf bytes.Buffer
	if err := canonicalize(&buf, raw); err != nil {
		return nil, fmt.Errorf("canonical marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// canonicalize rewrites one JSON value in canonical form. Objects and
// arrays recurse; scalars pass through compacted, so number literals keep
// the exact form json.Marshal gave them.
func canonicalize(buf *bytes.Buffer, raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty value")
	}

	switch trimmed[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(k) // a plain string cannot fail
			buf.Write(key)
			buf.WriteByte(':')
			if err := canonicalize(buf, obj[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return err
		}
		buf.WriteByte('[')
		for i, item := range arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := canonicalize(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		// string, number, bool or null
		return json.Compact(buf, trimmed)
	}
}
