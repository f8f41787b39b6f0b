package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

const indentUnit = "  "

// Encode serializes v as strict JSON with two-space indentation, object
// keys in insertion order and a trailing newline. Comments are never
// emitted. HTML-sensitive characters and non-ASCII text are written as-is.
//
// A value with no JSON representation (channels, functions, NaN and so on)
// fails with ErrSerialization.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any, depth int) error {
	switch vv := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(vv))
	case string:
		if !utf8.ValidString(vv) {
			return kindError(ErrSerialization, "string is not valid UTF-8")
		}
		encodeString(buf, vv)
	case *Object:
		return encodeObject(buf, vv, depth)
	case []any:
		return encodeArray(buf, vv, depth)
	case []string:
		arr, _ := asArray(vv)
		return encodeArray(buf, arr, depth)
	default:
		s, err := encodeNumber(v)
		if err != nil {
			return err
		}
		buf.WriteString(s)
	}
	return nil
}

func encodeObject(buf *bytes.Buffer, obj *Object, depth int) error {
	if obj.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}

	buf.WriteByte('{')
	for i, key := range obj.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		newline(buf, depth+1)
		if !utf8.ValidString(key) {
			return kindError(ErrSerialization, "key %q is not valid UTF-8", key)
		}
		encodeString(buf, key)
		buf.WriteString(": ")
		if err := encodeValue(buf, obj.values[key], depth+1); err != nil {
			return fmt.Errorf("%q: %w", key, err)
		}
	}
	newline(buf, depth)
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, arr []any, depth int) error {
	if len(arr) == 0 {
		buf.WriteString("[]")
		return nil
	}

	buf.WriteByte('[')
	for i, item := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		newline(buf, depth+1)
		if err := encodeValue(buf, item, depth+1); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	newline(buf, depth)
	buf.WriteByte(']')
	return nil
}

func newline(buf *bytes.Buffer, depth int) {
	buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		buf.WriteString(indentUnit)
	}
}

// encodeString writes s as a JSON string literal without HTML escaping.
func encodeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}

// encodeNumber returns the JSON text for a numeric Go value.
func encodeNumber(v any) (string, error) {
	switch n := v.(type) {
	case json.Number:
		if !isNumberLiteral(n) {
			return "", kindError(ErrSerialization, "invalid number literal %q", string(n))
		}
		return n.String(), nil
	case int:
		return strconv.FormatInt(int64(n), 10), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float32:
		return encodeFloat(float64(n), 32)
	case float64:
		return encodeFloat(n, 64)
	default:
		return "", kindError(ErrSerialization, "unsupported value of type %T", v)
	}
}

func encodeFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", kindError(ErrSerialization, "unsupported float value %v", f)
	}
	var b []byte
	var err error
	if bits == 32 {
		b, err = json.Marshal(float32(f))
	} else {
		b, err = json.Marshal(f)
	}
	if err != nil {
		return "", kindError(ErrSerialization, "%w", err)
	}
	return string(b), nil
}

// isNumberLiteral reports whether n is a single JSON number token.
func isNumberLiteral(n json.Number) bool {
	if n == "" || (n[0] != '-' && (n[0] < '0' || n[0] > '9')) {
		return false
	}
	return json.Valid([]byte(n))
}
