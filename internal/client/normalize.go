// AngelaMos | 2026
// normalize.go

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NormalizeIDs rewrites every JSON object that carries `_id` but no `id` so
// that `id` holds the same value. Callers only ever read `id`.
func NormalizeIDs(raw []byte) ([]byte, error) {
	if !bytes.Contains(raw, []byte(`"_id"`)) {
		return raw, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("normalize ids: %w", err)
	}

	out, err := json.Marshal(normalize(v))
	if err != nil {
		return nil, fmt.Errorf("normalize ids: %w", err)
	}
	return out, nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		if legacy, ok := t["_id"]; ok {
			if _, has := t["id"]; !has {
				t["id"] = idString(legacy)
			}
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	default:
		return v
	}
}

func idString(v any) any {
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case map[string]any:
		if oid, ok := t["$oid"].(string); ok {
			return oid
		}
	}
	return v
}
