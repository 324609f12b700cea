// Package wire converts canonical Values to and from their JSON wire form.
//
// Object fields are emitted exactly in stored order. The wire format itself
// does not require ordering, but existing consumers depend on the order
// being stable, which is why Object is backed by an ordered representation
// in the first place.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/hanpama/gqlvalue/internal/value"
)

// maxWireDepth bounds recursion while encoding and decoding.
const maxWireDepth = 512

var errTooDeep = fmt.Errorf("value nests deeper than %d levels", maxWireDepth)

// Marshal renders v as compact JSON. Enum values are emitted as their bare
// name string; Null is the JSON null. Int and Float keep their 32-bit /
// 64-bit precision; NaN and infinities have no JSON form and fail.
func Marshal(v value.Value) ([]byte, error) {
	return appendValue(nil, v, 0)
}

// MarshalIndent renders v as indented JSON with the same ordering
// guarantees as Marshal.
func MarshalIndent(v value.Value) ([]byte, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders v as compact JSON to w.
func Write(w io.Writer, v value.Value) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func appendValue(dst []byte, v value.Value, depth int) ([]byte, error) {
	if depth > maxWireDepth {
		return nil, errTooDeep
	}
	switch v := v.(type) {
	case value.Int:
		return strconv.AppendInt(dst, int64(v), 10), nil
	case value.Float:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("float %v has no wire form", f)
		}
		return strconv.AppendFloat(dst, f, 'g', -1, 64), nil
	case value.Boolean:
		return strconv.AppendBool(dst, bool(v)), nil
	case value.String:
		return appendString(dst, string(v)), nil
	case value.Enum:
		return appendString(dst, string(v)), nil
	case value.List:
		dst = append(dst, '[')
		for i, item := range v {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = appendValue(dst, item, depth+1)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case value.Object:
		dst = append(dst, '{')
		for i, f := range v.Fields() {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, string(f.Name))
			dst = append(dst, ':')
			var err error
			dst, err = appendValue(dst, f.Value, depth+1)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	case value.Null:
		return append(dst, "null"...), nil
	case nil:
		return append(dst, "null"...), nil
	default:
		return nil, fmt.Errorf("unknown value kind %s", v.Kind())
	}
}

func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			if r < 0x20 {
				dst = append(dst, fmt.Sprintf(`\u%04x`, r)...)
			} else {
				dst = append(dst, string(r)...)
			}
		}
	}
	return append(dst, '"')
}
