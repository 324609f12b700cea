// Package marshal is the boundary between native application types and the
// canonical Value form.
//
// The two contracts are asymmetric: marshalling into a Value is total, while
// unmarshalling out of a Value is partial because the Value came from
// external input and may not have the shape the native type requires. All
// unmarshal failures are recoverable error values; nothing on this path
// panics or logs.
package marshal

import (
	"errors"
	"fmt"

	"github.com/hanpama/gqlvalue/internal/language"
	"github.com/hanpama/gqlvalue/internal/value"
)

// Marshaler converts a native type into a canonical Value. Implementations
// must not fail.
type Marshaler interface {
	MarshalValue() value.Value
}

// Unmarshaler populates a native type from a canonical Value, returning a
// *TypeError (or a shape error such as ErrEmptyList) when the value does not
// match.
type Unmarshaler interface {
	UnmarshalValue(value.Value) error
}

// TypeError reports that a Value had the wrong variant for the requested
// native type. Got carries the offending value for diagnostics.
type TypeError struct {
	Want string
	Got  value.Value
}

func (e *TypeError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("expected %s, got nothing", e.Want)
	}
	return fmt.Sprintf("expected %s, got %s value %s",
		e.Want, e.Got.Kind(), language.FormatValue(value.ToAST(e.Got)))
}

// ErrEmptyList reports a list that is well-typed but empty where at least
// one element is required. It is deliberately distinct from *TypeError: the
// value is list-shaped, it just fails a shape constraint.
var ErrEmptyList = errors.New("list must not be empty")

// MarshalBoolean lifts a bool.
func MarshalBoolean(b bool) value.Value { return value.Boolean(b) }

// MarshalInt lifts a 32-bit integer.
func MarshalInt(i int32) value.Value { return value.Int(i) }

// MarshalFloat lifts a 64-bit float.
func MarshalFloat(f float64) value.Value { return value.Float(f) }

// MarshalString lifts raw text.
func MarshalString(s string) value.Value { return value.String(s) }

// MarshalID lifts an ID scalar; IDs travel as strings.
func MarshalID(id string) value.Value { return value.String(id) }

// MarshalEnum lifts an enum value name.
func MarshalEnum(n value.Name) value.Value { return value.Enum(n) }

// MarshalValue is the identity lift.
func MarshalValue(v value.Value) value.Value { return v }

// MarshalList lifts a slice element-wise.
func MarshalList[T any](xs []T, elem func(T) value.Value) value.Value {
	out := make(value.List, len(xs))
	for i, x := range xs {
		out[i] = elem(x)
	}
	return out
}

// MarshalOptional lifts a possibly-absent native value: nil becomes Null,
// anything else is lifted by elem.
func MarshalOptional[T any](p *T, elem func(T) value.Value) value.Value {
	if p == nil {
		return value.Null{}
	}
	return elem(*p)
}

// UnmarshalBoolean expects the Boolean variant.
func UnmarshalBoolean(v value.Value) (bool, error) {
	b, ok := v.(value.Boolean)
	if !ok {
		return false, &TypeError{Want: "Boolean", Got: v}
	}
	return bool(b), nil
}

// UnmarshalInt expects the Int variant.
func UnmarshalInt(v value.Value) (int32, error) {
	i, ok := v.(value.Int)
	if !ok {
		return 0, &TypeError{Want: "Int", Got: v}
	}
	return int32(i), nil
}

// UnmarshalFloat expects the Float variant.
func UnmarshalFloat(v value.Value) (float64, error) {
	f, ok := v.(value.Float)
	if !ok {
		return 0, &TypeError{Want: "Float", Got: v}
	}
	return float64(f), nil
}

// UnmarshalString expects the String variant.
func UnmarshalString(v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", &TypeError{Want: "String", Got: v}
	}
	return string(s), nil
}

// UnmarshalID expects the String variant and returns the ID text.
func UnmarshalID(v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", &TypeError{Want: "ID", Got: v}
	}
	return string(s), nil
}

// UnmarshalEnum expects the Enum variant.
func UnmarshalEnum(v value.Value) (value.Name, error) {
	e, ok := v.(value.Enum)
	if !ok {
		return "", &TypeError{Want: "Enum", Got: v}
	}
	return value.Name(e), nil
}

// UnmarshalValue is the identity: every Value is already a Value.
func UnmarshalValue(v value.Value) (value.Value, error) { return v, nil }

// UnmarshalObject expects the Object variant.
func UnmarshalObject(v value.Value) (value.Object, error) {
	o, ok := value.ToObject(v)
	if !ok {
		return value.Object{}, &TypeError{Want: "Object", Got: v}
	}
	return o, nil
}

// UnmarshalList expects the List variant and converts element-wise,
// stopping at the first failing element.
func UnmarshalList[T any](v value.Value, elem func(value.Value) (T, error)) ([]T, error) {
	l, ok := v.(value.List)
	if !ok {
		return nil, &TypeError{Want: "List", Got: v}
	}
	out := make([]T, 0, len(l))
	for _, item := range l {
		x, err := elem(item)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// UnmarshalNonEmpty is UnmarshalList with at least one element required.
// An empty list fails with ErrEmptyList, not a *TypeError.
func UnmarshalNonEmpty[T any](v value.Value, elem func(value.Value) (T, error)) ([]T, error) {
	l, ok := v.(value.List)
	if !ok {
		return nil, &TypeError{Want: "List", Got: v}
	}
	if len(l) == 0 {
		return nil, ErrEmptyList
	}
	return UnmarshalList[T](l, elem)
}

// UnmarshalOptional treats Null as absence (nil pointer, no error) and any
// other value as present.
func UnmarshalOptional[T any](v value.Value, elem func(value.Value) (T, error)) (*T, error) {
	if _, isNull := v.(value.Null); isNull || v == nil {
		return nil, nil
	}
	x, err := elem(v)
	if err != nil {
		return nil, err
	}
	return &x, nil
}
