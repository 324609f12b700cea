// Package value defines the canonical, variable-free representation of a
// GraphQL literal: a closed sum of scalar, enum, list and object variants
// with structural equality and a total order.
//
// Values are immutable trees. Lists and Objects contain Values and never
// back-references, so copies share structure freely and no operation here
// mutates shared state.
package value

import (
	stdcmp "cmp"
	"strings"
)

// Kind discriminates the Value variants. The declaration order fixes the
// variant rank used by Compare.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindBoolean
	KindString
	KindEnum
	KindList
	KindObject
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBoolean:
		return "Boolean"
	case KindString:
		return "String"
	case KindEnum:
		return "Enum"
	case KindList:
		return "List"
	case KindObject:
		return "Object"
	case KindNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// Value is the canonical GraphQL literal value. It is a closed interface:
// the variants are Int, Float, Boolean, String, Enum, List, Object and Null.
type Value interface {
	Kind() Kind
	isValue()
}

// Int is a 32-bit signed integer literal.
type Int int32

// Float is a 64-bit floating point literal.
type Float float64

// Boolean is a boolean literal.
type Boolean bool

// String is a text scalar, distinct from Enum at the type level.
type String string

// Enum carries a GraphQL enum value name.
type Enum Name

// List is an ordered, possibly empty sequence of Values. Elements are not
// required to share a kind.
type List []Value

// Null is the unit "no value" literal.
type Null struct{}

func (Int) Kind() Kind     { return KindInt }
func (Float) Kind() Kind   { return KindFloat }
func (Boolean) Kind() Kind { return KindBoolean }
func (String) Kind() Kind  { return KindString }
func (Enum) Kind() Kind    { return KindEnum }
func (List) Kind() Kind    { return KindList }
func (Object) Kind() Kind  { return KindObject }
func (Null) Kind() Kind    { return KindNull }

func (Int) isValue()     {}
func (Float) isValue()   {}
func (Boolean) isValue() {}
func (String) isValue()  {}
func (Enum) isValue()    {}
func (List) isValue()    {}
func (Object) isValue()  {}
func (Null) isValue()    {}

// Equal reports structural equality. Object field order participates: two
// Objects with the same fields in different orders are not equal.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// Compare defines a total order over all Values: first by variant rank in
// Kind declaration order, then by payload. Lists and Objects compare
// lexicographically, Objects by their (name, value) pairs in stored order.
func Compare(a, b Value) int {
	if a == nil || b == nil {
		return boolToCmp(a != nil) - boolToCmp(b != nil)
	}
	if c := stdcmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	switch av := a.(type) {
	case Int:
		return stdcmp.Compare(av, b.(Int))
	case Float:
		return stdcmp.Compare(av, b.(Float))
	case Boolean:
		return boolToCmp(bool(av)) - boolToCmp(bool(b.(Boolean)))
	case String:
		return strings.Compare(string(av), string(b.(String)))
	case Enum:
		return strings.Compare(string(av), string(b.(Enum)))
	case List:
		return compareLists(av, b.(List))
	case Object:
		return compareObjects(av, b.(Object))
	case Null:
		return 0
	default:
		return 0
	}
}

func compareLists(a, b List) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return stdcmp.Compare(len(a), len(b))
}

func compareObjects(a, b Object) int {
	af, bf := a.Fields(), b.Fields()
	for i := 0; i < len(af) && i < len(bf); i++ {
		if c := strings.Compare(string(af[i].Name), string(bf[i].Name)); c != 0 {
			return c
		}
		if c := Compare(af[i].Value, bf[i].Value); c != 0 {
			return c
		}
	}
	return stdcmp.Compare(len(af), len(bf))
}

func boolToCmp(b bool) int {
	if b {
		return 1
	}
	return 0
}
