package value

import "github.com/hanpama/gqlvalue/internal/orderedmap"

// ObjectField is a single named field, the construction unit for Object.
type ObjectField struct {
	Name  Name
	Value Value
}

// Object is an immutable mapping from Name to Value. Keys are unique and
// insertion order is preserved: order is observable through Fields, affects
// Equal/Compare and is what the wire serializer emits.
//
// An Object is only ever built whole, by MakeObject, ObjectOf or
// UnionObjects; there is no mutation after construction. The zero Object is
// empty.
type Object struct {
	fields *orderedmap.Map[Name, Value]
}

// MakeObject builds an Object from fields. It reports false without
// producing a partial Object if two fields share a Name.
func MakeObject(fields []ObjectField) (Object, bool) {
	m := orderedmap.New[Name, Value]()
	for _, f := range fields {
		if !m.Set(f.Name, f.Value) {
			return Object{}, false
		}
	}
	return Object{fields: m}, true
}

// ObjectOf is the pair-based entry point: MakeObject over its arguments.
func ObjectOf(fields ...ObjectField) (Object, bool) {
	return MakeObject(fields)
}

// UnionObjects merges objects left to right into one Object. Any key
// occurring in more than one input fails the merge; this keeps the
// uniqueness invariant rather than silently preferring a side.
func UnionObjects(objects ...Object) (Object, bool) {
	ms := make([]*orderedmap.Map[Name, Value], len(objects))
	for i, o := range objects {
		ms[i] = o.fields
	}
	merged, ok := orderedmap.Union(ms...)
	if !ok {
		return Object{}, false
	}
	return Object{fields: merged}, true
}

// ToObject returns the Object payload iff v is the Object variant. Absence
// is the routine answer for every other variant, not an error.
func ToObject(v Value) (Object, bool) {
	o, ok := v.(Object)
	return o, ok
}

// Fields returns the fields in insertion order.
func (o Object) Fields() []ObjectField {
	entries := o.fields.Entries()
	out := make([]ObjectField, len(entries))
	for i, e := range entries {
		out[i] = ObjectField{Name: e.Key, Value: e.Value}
	}
	return out
}

// Get returns the value of the named field.
func (o Object) Get(name Name) (Value, bool) {
	return o.fields.Get(name)
}

// Has reports whether the named field is present.
func (o Object) Has(name Name) bool {
	return o.fields.Has(name)
}

// Len returns the number of fields.
func (o Object) Len() int {
	return o.fields.Len()
}

// Equal reports field-map equality including field order.
func (o Object) Equal(other Object) bool {
	return compareObjects(o, other) == 0
}
