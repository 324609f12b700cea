package protobridge

import (
	"encoding/base64"
	"fmt"
	"math"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/hanpama/gqlvalue/internal/value"
)

// MessageFromObject builds a dynamic message described by desc from an
// Object. Fields are matched by protobuf JSON name; object fields with no
// matching descriptor are skipped, Null fields are left unset. Map fields
// are not supported.
func MessageFromObject(desc protoreflect.MessageDescriptor, o value.Object) (*dynamicpb.Message, error) {
	msg := dynamicpb.NewMessage(desc)
	fields := desc.Fields()
	byName := make(map[string]protoreflect.FieldDescriptor, fields.Len())
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		byName[fd.JSONName()] = fd
		byName[string(fd.Name())] = fd
	}
	for _, f := range o.Fields() {
		fd := byName[string(f.Name)]
		if fd == nil {
			continue
		}
		if _, isNull := f.Value.(value.Null); isNull {
			continue
		}
		if fd.IsMap() {
			return nil, fmt.Errorf("field %s: map fields are not supported", fd.FullName())
		}
		if fd.Cardinality() == protoreflect.Repeated {
			items, ok := f.Value.(value.List)
			if !ok {
				return nil, fmt.Errorf("field %s: expected a list, got %s", fd.FullName(), f.Value.Kind())
			}
			list := msg.Mutable(fd).List()
			for _, item := range items {
				pv, err := fieldValue(fd, item)
				if err != nil {
					return nil, err
				}
				list.Append(pv)
			}
			msg.Set(fd, protoreflect.ValueOfList(list))
			continue
		}
		pv, err := fieldValue(fd, f.Value)
		if err != nil {
			return nil, err
		}
		msg.Set(fd, pv)
	}
	return msg, nil
}

// fieldValue converts one canonical Value to the protobuf value fd expects.
func fieldValue(fd protoreflect.FieldDescriptor, v value.Value) (protoreflect.Value, error) {
	wrong := func() (protoreflect.Value, error) {
		return protoreflect.Value{}, fmt.Errorf("field %s: cannot use %s value for %s field",
			fd.FullName(), v.Kind(), fd.Kind())
	}
	switch fd.Kind() {
	case protoreflect.BoolKind:
		if b, ok := v.(value.Boolean); ok {
			return protoreflect.ValueOfBool(bool(b)), nil
		}
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		if i, ok := v.(value.Int); ok {
			return protoreflect.ValueOfInt32(int32(i)), nil
		}
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		if i, ok := v.(value.Int); ok {
			return protoreflect.ValueOfInt64(int64(i)), nil
		}
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		if i, ok := v.(value.Int); ok && i >= 0 {
			return protoreflect.ValueOfUint32(uint32(i)), nil
		}
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		if i, ok := v.(value.Int); ok && i >= 0 {
			return protoreflect.ValueOfUint64(uint64(i)), nil
		}
	case protoreflect.FloatKind:
		switch n := v.(type) {
		case value.Float:
			return protoreflect.ValueOfFloat32(float32(n)), nil
		case value.Int:
			return protoreflect.ValueOfFloat32(float32(n)), nil
		}
	case protoreflect.DoubleKind:
		switch n := v.(type) {
		case value.Float:
			return protoreflect.ValueOfFloat64(float64(n)), nil
		case value.Int:
			return protoreflect.ValueOfFloat64(float64(n)), nil
		}
	case protoreflect.StringKind:
		switch s := v.(type) {
		case value.String:
			return protoreflect.ValueOfString(string(s)), nil
		case value.Enum:
			return protoreflect.ValueOfString(string(s)), nil
		}
	case protoreflect.BytesKind:
		if s, ok := v.(value.String); ok {
			raw, err := base64.StdEncoding.DecodeString(string(s))
			if err != nil {
				return protoreflect.Value{}, fmt.Errorf("field %s: %w", fd.FullName(), err)
			}
			return protoreflect.ValueOfBytes(raw), nil
		}
	case protoreflect.EnumKind:
		var name string
		switch e := v.(type) {
		case value.Enum:
			name = string(e)
		case value.String:
			name = string(e)
		default:
			return wrong()
		}
		ev := fd.Enum().Values().ByName(protoreflect.Name(name))
		if ev == nil {
			return protoreflect.Value{}, fmt.Errorf("field %s: unknown enum value %q", fd.FullName(), name)
		}
		return protoreflect.ValueOfEnum(ev.Number()), nil
	case protoreflect.MessageKind:
		if o, ok := value.ToObject(v); ok {
			nested, err := MessageFromObject(fd.Message(), o)
			if err != nil {
				return protoreflect.Value{}, err
			}
			return protoreflect.ValueOfMessage(nested), nil
		}
	default:
		return protoreflect.Value{}, fmt.Errorf("field %s: unsupported field kind %s", fd.FullName(), fd.Kind())
	}
	return wrong()
}

// ObjectFromMessage converts a message to an Object, fields in declaration
// order under their protobuf JSON names. Absent optional fields become
// Null. Map fields are not supported.
func ObjectFromMessage(msg protoreflect.Message) (value.Object, error) {
	desc := msg.Descriptor()
	fds := desc.Fields()
	fields := make([]value.ObjectField, 0, fds.Len())
	for i := 0; i < fds.Len(); i++ {
		fd := fds.Get(i)
		if fd.IsMap() {
			return value.Object{}, fmt.Errorf("field %s: map fields are not supported", fd.FullName())
		}
		name, ok := value.MakeName(fd.JSONName())
		if !ok {
			return value.Object{}, fmt.Errorf("field %s: JSON name is not a valid name", fd.FullName())
		}
		var cv value.Value
		switch {
		case fd.HasPresence() && !msg.Has(fd):
			cv = value.Null{}
		case fd.Cardinality() == protoreflect.Repeated:
			lst := msg.Get(fd).List()
			out := make(value.List, 0, lst.Len())
			for j := 0; j < lst.Len(); j++ {
				item, err := valueOfScalar(fd, lst.Get(j))
				if err != nil {
					return value.Object{}, err
				}
				out = append(out, item)
			}
			cv = out
		default:
			var err error
			cv, err = valueOfScalar(fd, msg.Get(fd))
			if err != nil {
				return value.Object{}, err
			}
		}
		fields = append(fields, value.ObjectField{Name: name, Value: cv})
	}
	obj, ok := value.MakeObject(fields)
	if !ok {
		return value.Object{}, fmt.Errorf("message %s has colliding JSON field names", desc.FullName())
	}
	return obj, nil
}

// valueOfScalar converts one protobuf field value to its canonical form.
// 64-bit and unsigned integers must fit int32; bytes travel base64-encoded,
// matching the JSON mapping.
func valueOfScalar(fd protoreflect.FieldDescriptor, v protoreflect.Value) (value.Value, error) {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return value.Boolean(v.Bool()), nil
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return value.Int(int32(v.Int())), nil
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		n := v.Int()
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("field %s: %d does not fit a 32-bit int", fd.FullName(), n)
		}
		return value.Int(int32(n)), nil
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind, protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		n := v.Uint()
		if n > math.MaxInt32 {
			return nil, fmt.Errorf("field %s: %d does not fit a 32-bit int", fd.FullName(), n)
		}
		return value.Int(int32(n)), nil
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		return value.Float(v.Float()), nil
	case protoreflect.StringKind:
		return value.String(v.String()), nil
	case protoreflect.BytesKind:
		return value.String(base64.StdEncoding.EncodeToString(v.Bytes())), nil
	case protoreflect.EnumKind:
		if ev := fd.Enum().Values().ByNumber(v.Enum()); ev != nil {
			if name, ok := value.MakeName(string(ev.Name())); ok {
				return value.Enum(name), nil
			}
		}
		return value.Int(int32(v.Enum())), nil
	case protoreflect.MessageKind:
		return ObjectFromMessage(v.Message())
	default:
		return nil, fmt.Errorf("field %s: unsupported field kind %s", fd.FullName(), fd.Kind())
	}
}
