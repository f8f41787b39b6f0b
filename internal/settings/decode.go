package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
)

// Decode parses a settings document. The text may contain `//` line
// comments and trailing commas; empty or whitespace-only text decodes to an
// empty object, and so does text holding nothing but comments. The
// top-level value must be an object.
func Decode(data []byte) (*Object, error) {
	v, err := DecodeValue(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, &MalformedError{
			Line:   1,
			Column: 1,
			Reason: fmt.Sprintf("top-level value must be an object, got %s", kindName(v)),
		}
	}
	return obj, nil
}

// DecodeValue is like Decode but accepts any top-level value.
func DecodeValue(data []byte) (any, error) {
	// Only blank input counts as an empty document. Comments alone leave
	// nothing for the strict decoder and fail like any other bad syntax.
	if len(bytes.TrimSpace(data)) == 0 {
		return NewObject(), nil
	}
	clean := Preprocess(data)

	dec := json.NewDecoder(bytes.NewReader(clean))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err == nil {
		// Anything after the first value is an error, like json.Unmarshal.
		if _, tokErr := dec.Token(); tokErr != io.EOF {
			err = fmt.Errorf("unexpected data after top-level value")
			if tokErr != nil {
				err = tokErr
			}
		}
	}
	if err != nil {
		return nil, malformed(data, clean, dec.InputOffset(), err)
	}
	return v, nil
}

// decodeValue reads one complete value from dec. Objects are built as
// *Object so key order survives the round trip.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected %q", rune(t))
		}
	default:
		// string, json.Number, bool or nil.
		return t, nil
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// malformed builds a MalformedError positioned in the preprocessed text.
func malformed(raw, clean []byte, offset int64, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.ErrUnexpectedEOF
		offset = int64(len(clean))
	}

	line, col := position(clean, offset)
	merr := &MalformedError{
		Line:   line,
		Column: col,
		Reason: err.Error(),
		Err:    err,
	}

	// tidwall/jsonc understands block comments, which this package does not
	// strip. If it can rescue the text, say so.
	if json.Valid(jsonc.ToJSON(raw)) {
		merr.Hint = "the file uses JSONC syntax beyond line comments and trailing commas, such as /* */ block comments"
	}
	return merr
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}
	prefix := data[:offset]
	line := bytes.Count(prefix, []byte("\n")) + 1
	col := int(offset) - (bytes.LastIndexByte(prefix, '\n') + 1) + 1
	return line, col
}

func kindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case *Object:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
