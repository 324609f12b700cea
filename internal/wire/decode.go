package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/hanpama/gqlvalue/internal/value"
)

// Unmarshal decodes JSON into a canonical Value, preserving object key
// order. Decoding works on the decoder's token stream because Go maps would
// destroy exactly the ordering this package exists to keep.
//
// Integral numbers in the 32-bit range become Int, every other number
// becomes Float. Duplicate object keys and keys that are not valid GraphQL
// names are rejected. JSON cannot express Enum, so enum-valued fields come
// back as String.
func Unmarshal(data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, depth int) (value.Value, error) {
	if depth > maxWireDepth {
		return nil, errTooDeep
	}
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok, depth)
}

func decodeToken(dec *json.Decoder, tok json.Token, depth int) (value.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec, depth)
		case '[':
			return decodeList(dec, depth)
		default:
			return nil, fmt.Errorf("unexpected %q", t)
		}
	case bool:
		return value.Boolean(t), nil
	case string:
		return value.String(t), nil
	case json.Number:
		return decodeNumber(t)
	case nil:
		return value.Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder, depth int) (value.Value, error) {
	var fields []value.ObjectField
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		name, ok := value.MakeName(key)
		if !ok {
			return nil, fmt.Errorf("object key %q is not a valid name", key)
		}
		v, err := decodeValue(dec, depth+1)
		if err != nil {
			return nil, err
		}
		fields = append(fields, value.ObjectField{Name: name, Value: v})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	obj, ok := value.MakeObject(fields)
	if !ok {
		return nil, fmt.Errorf("object has a duplicate key")
	}
	return obj, nil
}

func decodeList(dec *json.Decoder, depth int) (value.Value, error) {
	out := value.List{}
	for dec.More() {
		v, err := decodeValue(dec, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if _, err := dec.Token(); err != nil { // closing bracket
		return nil, err
	}
	return out, nil
}

func decodeNumber(n json.Number) (value.Value, error) {
	if i, err := n.Int64(); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return value.Int(int32(i)), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, err
	}
	return value.Float(f), nil
}
