package settings

import (
	"encoding/json"
)

// Object is a JSON object that remembers the order in which its keys were
// first inserted. Zed users hand-order their settings.json, so the rewritten
// file must list keys in the same order the user wrote them.
//
// The zero value is an empty object ready for use.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Len returns the number of keys in the object.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns a copy of the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Get returns the value stored under key and whether the key is present.
func (o *Object) Get(key string) (any, bool) {
	if o == nil || o.values == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set stores value under key. An existing key keeps its position and only
// its value is replaced; a new key is appended after all existing keys.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Equal reports whether a and b are structurally equal document values.
//
// Object key order is significant. Numbers compare by their canonical
// encoded text, so json.Number("1") equals int(1) but not json.Number("1.0").
// Values that cannot be encoded are never equal to anything.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for i, key := range av.keys {
			if bv.keys[i] != key {
				return false
			}
			if !Equal(av.values[key], bv.values[key]) {
				return false
			}
		}
		return true
	}

	if as, ok := asArray(a); ok {
		bs, ok := asArray(b)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	an, ok := numberText(a)
	if !ok {
		return false
	}
	bn, ok := numberText(b)
	return ok && an == bn
}

// asArray normalizes the two slice shapes a document array can take.
func asArray(v any) ([]any, bool) {
	switch vv := v.(type) {
	case []any:
		return vv, true
	case []string:
		out := make([]any, len(vv))
		for i, s := range vv {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// numberText returns the canonical encoded text of a numeric value.
func numberText(v any) (json.Number, bool) {
	s, err := encodeNumber(v)
	if err != nil {
		return "", false
	}
	return json.Number(s), true
}
